package progress

import (
	"context"

	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/model"
)

// Factory creates extensions tracking field resolution progress.
type Factory struct {
	onChange func(Progress)
}

// NewFactory creates a factory; onChange receives every snapshot including
// the final one, for which Done reports true.
func NewFactory(onChange func(Progress)) *Factory {
	return &Factory{onChange: onChange}
}

func (f *Factory) Create() extension.Extension {
	return &Extension{onChange: f.onChange}
}

// Extension attaches a tracker to the request and counts resolutions.
type Extension struct {
	extension.Base
	onChange func(Progress)
}

func (e *Extension) Request(ctx context.Context, ectx *extension.Context, next extension.NextRequest) *model.Response {
	requestID := ""
	if ectx != nil {
		requestID = ectx.RequestID
	}
	ctx, tracker := WithNewTracker(ctx, requestID, e.onChange)
	defer tracker.Finish()
	return next.Run(ctx, ectx)
}

func (e *Extension) Execute(ctx context.Context, ectx *extension.Context, operationName string, next extension.NextExecute) *model.Response {
	if tracker, ok := FromContext(ctx); ok {
		tracker.SetOperation(operationName)
	}
	return next.Run(ctx, ectx, operationName)
}

func (e *Extension) Resolve(ctx context.Context, ectx *extension.Context, info *model.ResolveInfo, next extension.NextResolve) (model.Value, error) {
	tracker, ok := FromContext(ctx)
	if !ok {
		return next.Run(ctx, ectx, info)
	}
	start := Delta{Total: 1, Running: 1}
	if info != nil && info.IsForIntrospection {
		start.Introspection = 1
	}
	tracker.Update(start)
	done := Delta{Running: -1, Completed: 1}
	defer func() {
		tracker.Update(done)
	}()
	value, err := next.Run(ctx, ectx, info)
	if err != nil {
		done = Delta{Running: -1, Failed: 1}
	}
	return value, err
}
