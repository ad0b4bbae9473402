package router

import (
	"context"
	"os"

	"github.com/linecard/ingest/cmd/cli/method"
	"github.com/linecard/ingest/cmd/cli/param"
	"github.com/linecard/ingest/pkg/sdk"
)

type Root struct {
	param.GlobalOpts
	Invoke *param.Invoke `arg:"subcommand:invoke" help:"Run one request through the Lambda handler"`
	Serve  *param.Serve  `arg:"subcommand:serve" help:"Serve the ingest handler over local HTTP"`
	Check  *param.Check  `arg:"subcommand:check" help:"Show caller identity and target table"`
}

func (r Root) Route(ctx context.Context, api sdk.API) error {
	switch {
	case r.Invoke != nil:
		return method.Invoke(ctx, r.Invoke, os.Stdin, os.Stdout)

	case r.Serve != nil:
		return method.Serve(ctx, api, r.Serve)

	case r.Check != nil:
		return method.Check(ctx, api, r.Check, os.Stdout)
	}

	return nil
}
