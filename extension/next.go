package extension

import (
	"context"

	"github.com/viant/gqlotel/model"
)

type (
	// RequestFunc is the engine's request processing.
	RequestFunc func(ctx context.Context, ectx *Context) *model.Response
	// SubscribeFunc is the engine's subscription stream transformation.
	SubscribeFunc func(ctx context.Context, ectx *Context, stream Stream) Stream
	// ParseQueryFunc is the engine's parser.
	ParseQueryFunc func(ctx context.Context, ectx *Context, query string, variables model.Variables) (model.Document, error)
	// ValidationFunc is the engine's validator.
	ValidationFunc func(ctx context.Context, ectx *Context) (*model.ValidationResult, error)
	// ExecuteFunc is the engine's executor.
	ExecuteFunc func(ctx context.Context, ectx *Context, operationName string) *model.Response
	// ResolveFunc is the engine's field resolver.
	ResolveFunc func(ctx context.Context, ectx *Context, info *model.ResolveInfo) (model.Value, error)
)

// NextRequest is the remainder of the chain for the request phase.
type NextRequest struct {
	chain []Extension
	run   RequestFunc
}

// Run invokes the next extension or, at the end of the chain, the engine.
func (n NextRequest) Run(ctx context.Context, ectx *Context) *model.Response {
	if len(n.chain) > 0 {
		return n.chain[0].Request(ctx, ectx, NextRequest{chain: n.chain[1:], run: n.run})
	}
	return n.run(ctx, ectx)
}

// NextSubscribe is the remainder of the chain for the subscribe phase.
type NextSubscribe struct {
	chain []Extension
	run   SubscribeFunc
}

// Run invokes the next extension or, at the end of the chain, the engine.
func (n NextSubscribe) Run(ctx context.Context, ectx *Context, stream Stream) Stream {
	if len(n.chain) > 0 {
		return n.chain[0].Subscribe(ctx, ectx, stream, NextSubscribe{chain: n.chain[1:], run: n.run})
	}
	return n.run(ctx, ectx, stream)
}

// NextParseQuery is the remainder of the chain for the parse phase.
type NextParseQuery struct {
	chain []Extension
	run   ParseQueryFunc
}

// Run invokes the next extension or, at the end of the chain, the engine.
func (n NextParseQuery) Run(ctx context.Context, ectx *Context, query string, variables model.Variables) (model.Document, error) {
	if len(n.chain) > 0 {
		return n.chain[0].ParseQuery(ctx, ectx, query, variables, NextParseQuery{chain: n.chain[1:], run: n.run})
	}
	return n.run(ctx, ectx, query, variables)
}

// NextValidation is the remainder of the chain for the validation phase.
type NextValidation struct {
	chain []Extension
	run   ValidationFunc
}

// Run invokes the next extension or, at the end of the chain, the engine.
func (n NextValidation) Run(ctx context.Context, ectx *Context) (*model.ValidationResult, error) {
	if len(n.chain) > 0 {
		return n.chain[0].Validation(ctx, ectx, NextValidation{chain: n.chain[1:], run: n.run})
	}
	return n.run(ctx, ectx)
}

// NextExecute is the remainder of the chain for the execute phase.
type NextExecute struct {
	chain []Extension
	run   ExecuteFunc
}

// Run invokes the next extension or, at the end of the chain, the engine.
func (n NextExecute) Run(ctx context.Context, ectx *Context, operationName string) *model.Response {
	if len(n.chain) > 0 {
		return n.chain[0].Execute(ctx, ectx, operationName, NextExecute{chain: n.chain[1:], run: n.run})
	}
	return n.run(ctx, ectx, operationName)
}

// NextResolve is the remainder of the chain for the resolve phase.
type NextResolve struct {
	chain []Extension
	run   ResolveFunc
}

// Run invokes the next extension or, at the end of the chain, the engine.
func (n NextResolve) Run(ctx context.Context, ectx *Context, info *model.ResolveInfo) (model.Value, error) {
	if len(n.chain) > 0 {
		return n.chain[0].Resolve(ctx, ectx, info, NextResolve{chain: n.chain[1:], run: n.run})
	}
	return n.run(ctx, ectx, info)
}
