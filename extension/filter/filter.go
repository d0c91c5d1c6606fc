// Package filter provides a decorator that bypasses a wrapped extension for
// selected field resolutions while delegating every other phase to it.
package filter

import (
	"context"

	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/model"
	"github.com/viant/gqlotel/policy"
)

// Predicate returns true for resolutions that must skip the wrapped extension.
type Predicate func(info *model.ResolveInfo) bool

// Factory creates filter extensions; the predicate and the inner factory are
// shared across requests, the inner extension is created per request.
type Factory struct {
	inner   extension.Factory
	exclude Predicate
}

// New wraps inner so that resolutions matching exclude bypass it.
func New(inner extension.Factory, exclude Predicate) *Factory {
	return &Factory{inner: inner, exclude: exclude}
}

// Create returns a filter around a fresh inner extension.
func (f *Factory) Create() extension.Extension {
	var inner extension.Extension = extension.Base{}
	if f.inner != nil {
		if created := f.inner.Create(); created != nil {
			inner = created
		}
	}
	return &Extension{inner: inner, exclude: f.exclude}
}

// Extension delegates to inner except for excluded resolutions.
type Extension struct {
	inner   extension.Extension
	exclude Predicate
}

func (e *Extension) Request(ctx context.Context, ectx *extension.Context, next extension.NextRequest) *model.Response {
	return e.inner.Request(ctx, ectx, next)
}

func (e *Extension) Subscribe(ctx context.Context, ectx *extension.Context, stream extension.Stream, next extension.NextSubscribe) extension.Stream {
	return e.inner.Subscribe(ctx, ectx, stream, next)
}

func (e *Extension) ParseQuery(ctx context.Context, ectx *extension.Context, query string, variables model.Variables, next extension.NextParseQuery) (model.Document, error) {
	return e.inner.ParseQuery(ctx, ectx, query, variables, next)
}

func (e *Extension) Validation(ctx context.Context, ectx *extension.Context, next extension.NextValidation) (*model.ValidationResult, error) {
	return e.inner.Validation(ctx, ectx, next)
}

func (e *Extension) Execute(ctx context.Context, ectx *extension.Context, operationName string, next extension.NextExecute) *model.Response {
	return e.inner.Execute(ctx, ectx, operationName, next)
}

// Resolve bypasses the inner extension when the predicate or a policy bound
// to ctx with policy.WithPolicy excludes the field.
func (e *Extension) Resolve(ctx context.Context, ectx *extension.Context, info *model.ResolveInfo, next extension.NextResolve) (model.Value, error) {
	if e.excluded(ctx, info) {
		return next.Run(ctx, ectx, info)
	}
	return e.inner.Resolve(ctx, ectx, info, next)
}

func (e *Extension) excluded(ctx context.Context, info *model.ResolveInfo) bool {
	if e.exclude != nil && e.exclude(info) {
		return true
	}
	if p := policy.FromContext(ctx); !p.IsEmpty() {
		return !p.IsInstrumented(info)
	}
	return false
}
