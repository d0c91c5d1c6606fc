// Package errorscope bridges instrumentation to the error-reporting
// backend's scope so that reported errors carry GraphQL details and
// correlate with the active trace.
package errorscope

import (
	"context"
	"strings"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TraceContextKey names the scope context holding the trace identifiers.
	TraceContextKey = "opentelemetry"
	// TraceIDTag is the scope tag holding the trace id.
	TraceIDTag = "otel.trace_id"
	// SpanIDTag is the scope tag holding the span id.
	SpanIDTag = "otel.span_id"

	idWidth = 32
)

// Scope is the subset of an error-reporting scope used by instrumentation.
type Scope interface {
	SetTag(key, value string)
	SetContext(key string, value map[string]interface{})
	CaptureMessage(message string)
}

// Provider returns the scope for a request.
type Provider func(ctx context.Context) Scope

// FromContext returns a scope backed by the sentry hub attached to ctx, or
// by the current hub when ctx has none.
func FromContext(ctx context.Context) Scope {
	if ctx != nil {
		if hub := sentry.GetHubFromContext(ctx); hub != nil {
			return NewSentryScope(hub)
		}
	}
	return NewSentryScope(sentry.CurrentHub())
}

// SetTraceContext copies the trace and span identifiers active in ctx into
// scope, both as tags and as the "opentelemetry" context.
func SetTraceContext(ctx context.Context, scope Scope) {
	if scope == nil {
		return
	}
	sc := trace.SpanContextFromContext(ctx)
	traceID := pad(sc.TraceID().String())
	spanID := pad(sc.SpanID().String())
	scope.SetContext(TraceContextKey, map[string]interface{}{
		"trace_id": traceID,
		"span_id":  spanID,
	})
	scope.SetTag(TraceIDTag, traceID)
	scope.SetTag(SpanIDTag, spanID)
}

func pad(id string) string {
	if len(id) >= idWidth {
		return id
	}
	return strings.Repeat("0", idWidth-len(id)) + id
}
