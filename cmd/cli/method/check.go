package method

import (
	"context"
	"fmt"
	"io"

	"github.com/linecard/ingest/cmd/cli/param"
	"github.com/linecard/ingest/cmd/cli/view"
	"github.com/linecard/ingest/pkg/sdk"
)

// Check reports who the CLI is acting as and whether the target table is reachable.
func Check(ctx context.Context, api sdk.API, p *param.Check, stdout io.Writer) error {
	caller, err := api.Services.Identity.Caller(ctx)
	if err != nil {
		return fmt.Errorf("failed to resolve caller identity: %w", err)
	}

	table, err := api.Services.Table.Describe(ctx, api.Config.Table.Name)
	if err != nil {
		return fmt.Errorf("failed to describe table %s: %w", api.Config.Table.Name, err)
	}

	_, err = io.WriteString(stdout, view.CheckView{
		Caller:   caller,
		Table:    table,
		Endpoint: api.Config.Dynamo.Endpoint,
	}.Text())

	return err
}
