package ingest

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/linecard/ingest/internal/tracing"
	"github.com/linecard/ingest/internal/util"
	"github.com/linecard/ingest/pkg/convention/config"
	"github.com/linecard/ingest/pkg/convention/record"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type TableService interface {
	Put(ctx context.Context, tableName string, item map[string]types.AttributeValue) error
}

// Metadata describes the caller. It is logged and traced, never stored.
type Metadata struct {
	RequestId string
	SourceIp  string
	UserAgent string
}

type Request struct {
	Body            string
	IsBase64Encoded bool
	Metadata        Metadata
}

type Services struct {
	Table TableService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, t TableService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Table: t,
		},
	}
}

// Ingest normalizes req into a record and upserts it. Nothing is written when
// the body cannot be turned into a record.
func (c Convention) Ingest(ctx context.Context, req Request) (record.Record, error) {
	ctx, span := otel.Tracer(tracing.Tracer).Start(ctx, "ingest.Ingest")
	defer span.End()

	logger := zerolog.Ctx(ctx).With().
		Str("request_id", req.Metadata.RequestId).
		Str("source_ip", util.OrUnknown(req.Metadata.SourceIp)).
		Str("user_agent", util.OrUnknown(req.Metadata.UserAgent)).
		Str("table", c.Config.Table.Name).
		Logger()
	ctx = logger.WithContext(ctx)

	span.SetAttributes(
		attribute.String("ingest.table", c.Config.Table.Name),
		attribute.String("ingest.request_id", req.Metadata.RequestId),
	)

	rec, err := Normalize(ctx, req)
	if err != nil {
		return record.Record{}, fail(ctx, span, err)
	}

	span.SetAttributes(attribute.String("ingest.record.id", rec.ID))

	if err := c.Service.Table.Put(ctx, c.Config.Table.Name, rec.Attributes()); err != nil {
		return record.Record{}, fail(ctx, span, fmt.Errorf("%w: %w", record.ErrStoreUnavailable, err))
	}

	logger.Info().Str("id", rec.ID).Msg("successfully inserted item")

	return rec, nil
}

// Normalize builds the record carried by req, or the default record when req has no body.
func Normalize(ctx context.Context, req Request) (record.Record, error) {
	logger := zerolog.Ctx(ctx)

	body, err := req.Payload()
	if err != nil {
		return record.Record{}, err
	}

	if len(body) == 0 {
		rec := record.Default()
		logger.Info().Str("id", rec.ID).Msg("received request without payload, using default data")
		return rec, nil
	}

	rec, err := record.Decode(body)
	if err != nil {
		return record.Record{}, err
	}

	logger.Info().Str("id", rec.ID).Msg("processing item")

	return rec, nil
}

// Payload returns the raw body bytes, decoding base64 when the invoker flagged it.
func (r Request) Payload() ([]byte, error) {
	if !r.IsBase64Encoded {
		return []byte(r.Body), nil
	}

	body, err := base64.StdEncoding.DecodeString(r.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: body is not valid base64: %w", record.ErrMalformedInput, err)
	}

	return body, nil
}

func fail(ctx context.Context, span trace.Span, err error) error {
	zerolog.Ctx(ctx).Error().
		Err(err).
		Str("kind", record.Kind(err)).
		Msg("failed to ingest record")

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())

	return err
}
