package server

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the instrumentation name of the commit tracer.
const TracerName = "github.com/vango-dev/sortable/pkg/server"

func newTracer(tp trace.TracerProvider) trace.Tracer {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return tp.Tracer(TracerName)
}

// traceReorder records a span for one committed reorder.
func traceReorder(ctx context.Context, tracer trace.Tracer, sessionID string, source, target int, insertBefore bool, length int) {
	_, span := tracer.Start(ctx, "sortable.reorder",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("sortable.session_id", sessionID),
			attribute.Int("sortable.source", source),
			attribute.Int("sortable.target", target),
			attribute.Bool("sortable.insert_before", insertBefore),
			attribute.Int("sortable.length", length),
		),
	)
	span.End()
}
