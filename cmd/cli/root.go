package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"
	"github.com/linecard/ingest/cmd/cli/router"
	"github.com/linecard/ingest/cmd/handler"
	"github.com/linecard/ingest/internal/tracing"
	"github.com/linecard/ingest/pkg/convention/config"
	"go.opentelemetry.io/otel"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func Invoke(ctx context.Context) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	var root router.Root
	parser := arg.MustParse(&root)

	if parser.Subcommand() == nil {
		parser.WriteHelp(os.Stdout)
		return
	}

	configEnv(root)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, span := otel.Tracer(tracing.Tracer).Start(ctx, "cli")
	defer span.End()

	if err := handler.BeforeAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize SDK")
	}

	api, err := handler.BeforeEach(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	if err := root.Route(ctx, api); err != nil {
		log.Fatal().Err(err).Strs("argv", os.Args).Msgf("failed command")
	}
}

// Take options given to the CLI and export them to their respective environment variables.
func configEnv(root router.Root) {
	if root.GlobalOpts.Table != "" {
		os.Setenv(config.EnvTableName, root.GlobalOpts.Table)
	}

	if root.GlobalOpts.Endpoint != "" {
		os.Setenv(config.EnvDynamoEndpoint, root.GlobalOpts.Endpoint)
	}
}
