package handler

import (
	"context"

	"github.com/linecard/ingest/internal/tracing"
	"github.com/linecard/ingest/internal/util"
	"github.com/linecard/ingest/pkg/convention/ingest"
	"github.com/rs/zerolog/log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-lambda-go/otellambda"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Listen for events from the AWS Lambda runtime.
func Listen(ctx context.Context, tp *sdktrace.TracerProvider) {
	if err := BeforeAll(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize SDK")
	}

	instrumented := otellambda.InstrumentHandler(Handler,
		otellambda.WithTracerProvider(tp),
		otellambda.WithFlusher(tp),
	)

	lambda.Start(instrumented)
}

// Handler ingests the body of an API Gateway proxy request. Failures are returned
// to the runtime as errors rather than mapped to a response.
func Handler(ctx context.Context, event events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx, span := otel.Tracer(tracing.Tracer).Start(ctx, "handler")
	defer span.End()

	ctx = log.Logger.WithContext(ctx)

	requestId, functionArn := invocation(ctx, event)
	identity := event.RequestContext.Identity

	log.Info().
		Str("request_id", requestId).
		Str("function_arn", util.OrUnknown(functionArn)).
		Str("source_ip", util.OrUnknown(identity.SourceIP)).
		Str("user_agent", util.OrUnknown(identity.UserAgent)).
		Msg("received request")

	span.SetAttributes(
		attribute.String("faas.invocation_id", requestId),
		attribute.String("client.address", identity.SourceIP),
	)

	invocationApi, err := BeforeEach(ctx)
	if err != nil {
		log.Error().Err(err).Str("request_id", requestId).Msg("failed to load configuration")
		span.SetStatus(codes.Error, err.Error())
		return events.APIGatewayProxyResponse{}, err
	}

	rec, err := invocationApi.Ingest.Ingest(ctx, ingest.Request{
		Body:            event.Body,
		IsBase64Encoded: event.IsBase64Encoded,
		Metadata: ingest.Metadata{
			RequestId: requestId,
			SourceIp:  identity.SourceIP,
			UserAgent: identity.UserAgent,
		},
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return events.APIGatewayProxyResponse{}, err
	}

	span.SetAttributes(attribute.String("ingest.record.id", rec.ID))

	return Success(), nil
}

// invocation prefers the Lambda request id and falls back to the API Gateway one.
func invocation(ctx context.Context, event events.APIGatewayProxyRequest) (requestId, functionArn string) {
	requestId = event.RequestContext.RequestID

	if lc, ok := lambdacontext.FromContext(ctx); ok {
		if lc.AwsRequestID != "" {
			requestId = lc.AwsRequestID
		}
		functionArn = lc.InvokedFunctionArn
	}

	return requestId, functionArn
}
