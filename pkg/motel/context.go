// Package motel carries the request-scoped otel Tracer through
// context.Context, mirroring pkg/mlog's logger propagation.
package motel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type contextKey struct{}

// NewTracerFromContext returns the Tracer installed on ctx, falling back
// to the global default tracer named "default" so call sites never need
// a nil check.
func NewTracerFromContext(ctx context.Context) trace.Tracer {
	if t, ok := ctx.Value(contextKey{}).(trace.Tracer); ok {
		return t
	}

	return otel.Tracer("default")
}

// ContextWithTracer returns a context carrying tracer for retrieval via
// NewTracerFromContext.
func ContextWithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, contextKey{}, tracer)
}
