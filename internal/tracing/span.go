package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Run executes fn inside a span named name. A nil tracer runs fn untraced.
// Errors are recorded on the span and returned unchanged.
func Run(ctx context.Context, tracer trace.Tracer, name string, fn func(ctx context.Context) error, attrs ...attribute.KeyValue) error {
	if tracer == nil {
		return fn(ctx)
	}

	ctx, span := tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
	defer span.End()

	err := fn(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		span.SetAttributes(
			attribute.String(AttrErrorMessage, err.Error()),
			attribute.String(AttrErrorType, fmt.Sprintf("%T", err)),
		)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	return err
}
