// Package tracing is the span helper used by the signup workflow and its
// collaborators. Without a registered TracerProvider the global no-op
// provider is in effect and every call is inert.
package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "resqx"

// Start opens a span named spanName under whatever span ctx carries.
// Callers end it with span.End(), usually deferred.
//
//	ctx, span := tracing.Start(ctx, "signup.register",
//	    attribute.Int("resqx.list_id", listID),
//	)
//	defer span.End()
func Start(ctx context.Context, spanName string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, spanName, trace.WithAttributes(attrs...))
}

// Fail records err on span and marks it errored. A nil err is a no-op.
func Fail(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
