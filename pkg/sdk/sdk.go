package sdk

import (
	"context"

	// config
	"github.com/linecard/ingest/pkg/convention/config"

	// services
	"github.com/linecard/ingest/pkg/service/identity"
	"github.com/linecard/ingest/pkg/service/table"

	// conventions
	"github.com/linecard/ingest/pkg/convention/ingest"

	// clients
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type Clients struct {
	StsClient    *sts.Client
	DynamoClient *dynamodb.Client
}

type Services struct {
	Table    table.Service
	Identity identity.Service
}

type Conventions struct {
	Ingest ingest.Convention
}

type API struct {
	Conventions
	Services Services
	Config   config.Config
}

func Init(ctx context.Context, awsConfig aws.Config, config config.Config) (API, error) {
	clients, err := InitClients(ctx, awsConfig, config)
	if err != nil {
		return API{}, err
	}

	services, err := InitServices(ctx, clients)
	if err != nil {
		return API{}, err
	}

	conventions, err := InitConventions(ctx, config, services)
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Services:    services,
		Config:      config,
	}, nil
}

// WithConfig rebuilds the conventions around config while keeping the process-wide services.
func (a API) WithConfig(ctx context.Context, config config.Config) (API, error) {
	conventions, err := InitConventions(ctx, config, a.Services)
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Services:    a.Services,
		Config:      config,
	}, nil
}

func InitConventions(ctx context.Context, config config.Config, services Services) (Conventions, error) {
	return Conventions{
		Ingest: ingest.FromServices(config, services.Table),
	}, nil
}

func InitServices(ctx context.Context, clients Clients) (Services, error) {
	return Services{
		Table:    table.FromClients(clients.DynamoClient),
		Identity: identity.FromClients(clients.StsClient),
	}, nil
}

func InitClients(ctx context.Context, awsConfig aws.Config, config config.Config) (Clients, error) {
	return Clients{
		StsClient: sts.NewFromConfig(awsConfig),
		DynamoClient: dynamodb.NewFromConfig(awsConfig, func(o *dynamodb.Options) {
			if config.Dynamo.Endpoint != "" {
				o.BaseEndpoint = aws.String(config.Dynamo.Endpoint)
			}
		}),
	}, nil
}
