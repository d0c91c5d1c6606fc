package extension

import (
	"context"
	"iter"

	"github.com/viant/gqlotel/model"
)

// Stream is a lazy sequence of subscription responses. The consumer cancels
// it by stopping the iteration.
type Stream = iter.Seq[*model.Response]

// Extension instruments the phases of a single request.
type Extension interface {
	// Request wraps the whole request.
	Request(ctx context.Context, ectx *Context, next NextRequest) *model.Response

	// Subscribe wraps a subscription response stream.
	Subscribe(ctx context.Context, ectx *Context, stream Stream, next NextSubscribe) Stream

	// ParseQuery wraps parsing of the query document.
	ParseQuery(ctx context.Context, ectx *Context, query string, variables model.Variables, next NextParseQuery) (model.Document, error)

	// Validation wraps document validation.
	Validation(ctx context.Context, ectx *Context, next NextValidation) (*model.ValidationResult, error)

	// Execute wraps operation execution.
	Execute(ctx context.Context, ectx *Context, operationName string, next NextExecute) *model.Response

	// Resolve wraps a single field resolution. It may run concurrently with
	// sibling fields.
	Resolve(ctx context.Context, ectx *Context, info *model.ResolveInfo, next NextResolve) (model.Value, error)
}

// Factory creates a fresh Extension for every request.
type Factory interface {
	Create() Extension
}

// FactoryFunc adapts a function to Factory.
type FactoryFunc func() Extension

// Create calls f.
func (f FactoryFunc) Create() Extension {
	return f()
}

// Base implements every phase as a plain passthrough. Embed it to override
// only the phases of interest.
type Base struct{}

func (Base) Request(ctx context.Context, ectx *Context, next NextRequest) *model.Response {
	return next.Run(ctx, ectx)
}

func (Base) Subscribe(ctx context.Context, ectx *Context, stream Stream, next NextSubscribe) Stream {
	return next.Run(ctx, ectx, stream)
}

func (Base) ParseQuery(ctx context.Context, ectx *Context, query string, variables model.Variables, next NextParseQuery) (model.Document, error) {
	return next.Run(ctx, ectx, query, variables)
}

func (Base) Validation(ctx context.Context, ectx *Context, next NextValidation) (*model.ValidationResult, error) {
	return next.Run(ctx, ectx)
}

func (Base) Execute(ctx context.Context, ectx *Context, operationName string, next NextExecute) *model.Response {
	return next.Run(ctx, ectx, operationName)
}

func (Base) Resolve(ctx context.Context, ectx *Context, info *model.ResolveInfo, next NextResolve) (model.Value, error) {
	return next.Run(ctx, ectx, info)
}
