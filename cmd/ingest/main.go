package main

import (
	"context"

	"github.com/linecard/ingest/cmd/cli"
	"github.com/linecard/ingest/cmd/handler"
	"github.com/linecard/ingest/internal/tracing"
	"github.com/linecard/ingest/internal/util"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	util.SetLogLevel()
	zerolog.DefaultContextLogger = &log.Logger

	ctx := context.Background()
	tp, shutdown := tracing.InitOtel()
	defer shutdown()

	if util.InLambda() {
		handler.Listen(ctx, tp)
		return
	}

	cli.Invoke(ctx)
}
