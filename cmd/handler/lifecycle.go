package handler

import (
	"context"
	"sync"

	"github.com/linecard/ingest/internal/util"
	"github.com/linecard/ingest/pkg/convention/config"
	"github.com/linecard/ingest/pkg/sdk"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"

	"github.com/rs/zerolog/log"
)

var (
	api     sdk.API
	apiOnce sync.Once
	apiErr  error
)

// BeforeAll builds the process-wide AWS clients. Later calls return the first result.
func BeforeAll(ctx context.Context) error {
	apiOnce.Do(func() {
		cfg, err := config.ClientsFromEnv()
		if err != nil {
			apiErr = err
			return
		}

		retryLogger := util.RetryLogger{
			Log: &log.Logger,
		}

		awsConfig, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithLogger(&retryLogger),
			awsconfig.WithClientLogMode(aws.LogRetries))
		if err != nil {
			apiErr = err
			return
		}

		api, apiErr = sdk.Init(ctx, awsConfig, cfg)
	})

	return apiErr
}

// Use installs an already initialized API in place of BeforeAll.
func Use(a sdk.API) {
	apiOnce.Do(func() {})
	api = a
	apiErr = nil
}

// BeforeEach reads configuration for a single invocation.
func BeforeEach(ctx context.Context) (sdk.API, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return sdk.API{}, err
	}

	return api.WithConfig(ctx, cfg)
}
