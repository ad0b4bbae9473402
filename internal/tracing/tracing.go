package tracing

import (
	"context"
	"os"

	"github.com/linecard/ingest/internal/util"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Tracer is the instrumentation name shared by every span this module starts.
const Tracer = "github.com/linecard/ingest"

const DefaultServiceName = "ingest"

// ServiceName is the deployed function name, or DefaultServiceName outside Lambda.
func ServiceName() string {
	if name := os.Getenv("AWS_LAMBDA_FUNCTION_NAME"); name != "" {
		return name
	}
	return DefaultServiceName
}

// Resource describes this service to trace backends. OTEL_SERVICE_NAME and
// OTEL_RESOURCE_ATTRIBUTES override the defaults.
func Resource(ctx context.Context) *resource.Resource {
	res, err := resource.New(ctx,
		resource.WithTelemetrySDK(),
		resource.WithAttributes(attribute.String("service.name", ServiceName())),
		resource.WithFromEnv(),
	)
	if err != nil {
		log.Warn().Err(err).Msg("incomplete OpenTelemetry resource")
	}

	if res == nil {
		return resource.Default()
	}

	return res
}

// InitOtel initializes OpenTelemetry tracing and returns the tracer provider and shutdown function.
func InitOtel() (tp *sdktrace.TracerProvider, shutdown func()) {
	ctx := context.Background()
	res := Resource(ctx)

	tp = sdktrace.NewTracerProvider(sdktrace.WithResource(res))
	shutdown = func() {
		_ = tp.Shutdown(ctx)
	}

	if util.OtelConfigPresent() {
		log.Info().Msg("initializing OpenTelemetry with OTLP exporter")

		client := otlptracegrpc.NewClient()

		exp, err := otlptrace.New(ctx, client)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create OTLP exporter")
		}

		tp = sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithBatcher(exp))

		shutdown = func() {
			_ = tp.ForceFlush(ctx)
			_ = exp.Shutdown(ctx)
			_ = tp.Shutdown(ctx)
		}
	}

	otel.SetTextMapPropagator(propagation.TraceContext{})
	otel.SetTracerProvider(tp)

	return tp, shutdown
}
