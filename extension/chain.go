package extension

import (
	"context"

	"github.com/viant/gqlotel/model"
)

// Chain is the ordered set of extensions created for a single request.
// Pre-continuation work runs in chain order, post-continuation work in
// reverse order.  A Chain is immutable and safe for concurrent Resolve calls.
type Chain struct {
	ectx       *Context
	extensions []Extension
}

// NewChain creates one extension per factory, preserving order. Nil
// factories and nil extensions are skipped.
func NewChain(ectx *Context, factories ...Factory) *Chain {
	if ectx == nil {
		ectx = &Context{}
	}
	extensions := make([]Extension, 0, len(factories))
	for _, factory := range factories {
		if factory == nil {
			continue
		}
		if ext := factory.Create(); ext != nil {
			extensions = append(extensions, ext)
		}
	}
	return &Chain{ectx: ectx, extensions: extensions}
}

// Context returns the request context shared by all extensions.
func (c *Chain) Context() *Context {
	return c.ectx
}

// Len returns number of extensions
func (c *Chain) Len() int {
	return len(c.extensions)
}

func (c *Chain) Request(ctx context.Context, run RequestFunc) *model.Response {
	return NextRequest{chain: c.extensions, run: run}.Run(ctx, c.ectx)
}

func (c *Chain) Subscribe(ctx context.Context, stream Stream, run SubscribeFunc) Stream {
	return NextSubscribe{chain: c.extensions, run: run}.Run(ctx, c.ectx, stream)
}

func (c *Chain) ParseQuery(ctx context.Context, query string, variables model.Variables, run ParseQueryFunc) (model.Document, error) {
	return NextParseQuery{chain: c.extensions, run: run}.Run(ctx, c.ectx, query, variables)
}

func (c *Chain) Validation(ctx context.Context, run ValidationFunc) (*model.ValidationResult, error) {
	return NextValidation{chain: c.extensions, run: run}.Run(ctx, c.ectx)
}

func (c *Chain) Execute(ctx context.Context, operationName string, run ExecuteFunc) *model.Response {
	return NextExecute{chain: c.extensions, run: run}.Run(ctx, c.ectx, operationName)
}

func (c *Chain) Resolve(ctx context.Context, info *model.ResolveInfo, run ResolveFunc) (model.Value, error) {
	return NextResolve{chain: c.extensions, run: run}.Run(ctx, c.ectx, info)
}
