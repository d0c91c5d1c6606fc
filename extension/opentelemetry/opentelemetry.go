// Package opentelemetry provides an extension recording an OpenTelemetry
// span for every phase of a GraphQL request and for every non-introspection
// field resolution.
package opentelemetry

import (
	"context"

	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/model"
	"github.com/viant/gqlotel/redact"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	KeySource     = attribute.Key("graphql.source")
	KeyVariables  = attribute.Key("graphql.variables")
	KeyParentType = attribute.Key("graphql.parentType")
	KeyReturnType = attribute.Key("graphql.returnType")
	KeyError      = attribute.Key("graphql.error")
	KeyComplexity = attribute.Key("graphql.complexity")
	KeyDepth      = attribute.Key("graphql.depth")
)

// Factory creates tracing extensions sharing one tracer.
type Factory struct {
	tracer trace.Tracer
}

// New creates a tracing extension factory.
func New(tracer trace.Tracer) *Factory {
	return &Factory{tracer: tracer}
}

// Create returns a new extension
func (f *Factory) Create() extension.Extension {
	return &Extension{tracer: f.tracer}
}

// Extension opens and ends spans around every phase. Every span is ended
// exactly once by a deferred call, whichever way the continuation returns.
type Extension struct {
	tracer trace.Tracer
}

func (e *Extension) start(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return e.tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindServer), trace.WithAttributes(attrs...))
}

func (e *Extension) Request(ctx context.Context, ectx *extension.Context, next extension.NextRequest) *model.Response {
	ctx, span := e.start(ctx, "request")
	defer span.End()
	return next.Run(ctx, ectx)
}

// Subscribe covers the whole stream with a single span. The span starts when
// the stream is first iterated and ends once it is exhausted or the consumer
// stops iterating.
func (e *Extension) Subscribe(ctx context.Context, ectx *extension.Context, stream extension.Stream, next extension.NextSubscribe) extension.Stream {
	return func(yield func(*model.Response) bool) {
		spanCtx, span := e.start(ctx, "subscribe")
		defer span.End()
		for resp := range next.Run(spanCtx, ectx, stream) {
			if !yield(resp) {
				return
			}
		}
	}
}

func (e *Extension) ParseQuery(ctx context.Context, ectx *extension.Context, query string, variables model.Variables, next extension.NextParseQuery) (model.Document, error) {
	ctx, span := e.start(ctx, "parse", KeyVariables.String(redact.Variables(variables)))
	defer span.End()
	doc, err := next.Run(ctx, ectx, query, variables)
	if err == nil {
		span.SetAttributes(KeySource.String(stringify(ectx, doc, variables)))
	}
	return doc, err
}

func (e *Extension) Validation(ctx context.Context, ectx *extension.Context, next extension.NextValidation) (*model.ValidationResult, error) {
	ctx, span := e.start(ctx, "validation")
	defer span.End()
	result, err := next.Run(ctx, ectx)
	if err == nil && result != nil {
		span.SetAttributes(
			KeyComplexity.Int64(int64(result.Complexity)),
			KeyDepth.Int64(int64(result.Depth)),
		)
	}
	return result, err
}

func (e *Extension) Execute(ctx context.Context, ectx *extension.Context, operationName string, next extension.NextExecute) *model.Response {
	ctx, span := e.start(ctx, "execute")
	defer span.End()
	return next.Run(ctx, ectx, operationName)
}

// Resolve opens a span named after the field path unless the field is an
// introspection field. A resolution error is recorded as an "error" event on
// the span active in the resolve context: the field span when one was
// created, otherwise the nearest enclosing span threaded in by the engine.
func (e *Extension) Resolve(ctx context.Context, ectx *extension.Context, info *model.ResolveInfo, next extension.NextResolve) (model.Value, error) {
	if info != nil && !info.IsForIntrospection {
		var span trace.Span
		ctx, span = e.start(ctx, info.Path.String(),
			KeyParentType.String(info.ParentType),
			KeyReturnType.String(info.ReturnType),
		)
		defer span.End()
	}
	value, err := next.Run(ctx, ectx, info)
	if err != nil {
		trace.SpanFromContext(ctx).AddEvent("error", trace.WithAttributes(KeyError.String(err.Error())))
	}
	return value, err
}

// stringify never lets an engine rendering failure escape into the request.
func stringify(ectx *extension.Context, doc model.Document, variables model.Variables) (source string) {
	defer func() {
		if r := recover(); r != nil {
			source = ""
		}
	}()
	return ectx.StringifyDocument(doc, variables)
}
