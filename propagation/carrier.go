// Package propagation extracts the parent trace context of an inbound
// request from the W3C traceparent and tracestate headers.
package propagation

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	otelpropagation "go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	TraceParentHeader = "traceparent"
	TraceStateHeader  = "tracestate"
)

var headerNames = [...]string{TraceParentHeader, TraceStateHeader}

// Carrier holds only the trace propagation headers present on a request.
// Keys are exact, lower-case header names.
type Carrier map[string]string

var _ otelpropagation.TextMapCarrier = Carrier(nil)

// FromHeader builds a Carrier from header, reading only traceparent and
// tracestate. Values are copied verbatim.
func FromHeader(header http.Header) Carrier {
	ret := Carrier{}
	for _, name := range headerNames {
		if value, ok := lookup(header, name); ok {
			ret[name] = value
		}
	}
	return ret
}

// FromRequest builds a Carrier from the request headers.
func FromRequest(request *http.Request) Carrier {
	if request == nil {
		return Carrier{}
	}
	return FromHeader(request.Header)
}

// lookup checks the raw key first, then the canonical form used by net/http
// for inbound requests.
func lookup(header http.Header, name string) (string, bool) {
	if values, ok := header[name]; ok && len(values) > 0 {
		return values[0], true
	}
	if values, ok := header[http.CanonicalHeaderKey(name)]; ok && len(values) > 0 {
		return values[0], true
	}
	return "", false
}

// Get returns the header value or empty string.
func (c Carrier) Get(key string) string {
	return c[key]
}

// Set stores value when key is one of the propagation headers.
func (c Carrier) Set(key, value string) {
	for _, name := range headerNames {
		if name == key {
			c[key] = value
			return
		}
	}
}

// Keys lists the present headers in fixed order.
func (c Carrier) Keys() []string {
	keys := make([]string, 0, len(headerNames))
	for _, name := range headerNames {
		if _, ok := c[name]; ok {
			keys = append(keys, name)
		}
	}
	return keys
}

// Extract returns ctx carrying the remote parent span context decoded by the
// global propagator. Missing or malformed headers leave ctx without a parent.
func (c Carrier) Extract(ctx context.Context) context.Context {
	return c.ExtractWith(ctx, otel.GetTextMapPropagator())
}

// ExtractWith extracts using the supplied propagator.
func (c Carrier) ExtractWith(ctx context.Context, propagator otelpropagation.TextMapPropagator) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	if propagator == nil || len(c) == 0 {
		return ctx
	}
	return propagator.Extract(ctx, c)
}

// Parent returns the extracted remote span context; it is invalid when the
// request carries no usable parent.
func (c Carrier) Parent(ctx context.Context) trace.SpanContext {
	return trace.SpanContextFromContext(c.Extract(ctx))
}
