package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	apiTracer = otel.Tracer("scouting-platform/internal/interfaces/httpapi")
	noopSpan  trace.Span = noop.Span{}
)

// tracedSpanPrefixes are the span names worth a child span: handlers, and
// the two auth middlewares since Firebase key fetches and API key checks
// show up in request latency.
var tracedSpanPrefixes = []string{
	"httpapi.Handler.",
	"httpapi.RequireAuth",
	"httpapi.RequireAPIKey",
}

// startSpan only opens children of the otelhttp request span. Requests that
// were not traced, such as /healthz, get a no-op span.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	return apiTracer.Start(ctx, name)
}

func shouldCreateHTTPAPISpan(name string) bool {
	for _, prefix := range tracedSpanPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}
