// Package sentry provides an extension reporting GraphQL execution errors to
// the error-reporting scope and to the structured log.
package sentry

import (
	"context"

	"github.com/viant/gqlotel/errorscope"
	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/logging"
	"github.com/viant/gqlotel/model"
	"go.uber.org/zap"
)

const (
	// ContextKey names the scope context holding error paths and messages.
	ContextKey = "graphql"
	// DefaultMessage is reported when the first error carries no message.
	DefaultMessage = "GraphqlError"
)

// Factory creates error reporting extensions.
type Factory struct {
	scope   errorscope.Provider
	logger  *zap.Logger
	capture bool
}

// New creates a factory. By default the scope comes from the sentry hub in
// the request context and logging is disabled.
func New(options ...Option) *Factory {
	ret := &Factory{scope: errorscope.FromContext, logger: zap.NewNop()}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// Create returns a new extension
func (f *Factory) Create() extension.Extension {
	ret := &Extension{scope: f.scope, logger: f.logger, capture: f.capture}
	if ret.scope == nil {
		ret.scope = errorscope.FromContext
	}
	if ret.logger == nil {
		ret.logger = zap.NewNop()
	}
	return ret
}

// Extension observes execute results; it never alters the response.
type Extension struct {
	extension.Base
	scope   errorscope.Provider
	logger  *zap.Logger
	capture bool
}

func (e *Extension) Execute(ctx context.Context, ectx *extension.Context, operationName string, next extension.NextExecute) *model.Response {
	var scope errorscope.Scope
	e.safely(func() {
		scope = e.scope(ctx)
		errorscope.SetTraceContext(ctx, scope)
	})
	resp := next.Run(ctx, ectx, operationName)
	if resp.IsErr() {
		e.safely(func() {
			requestID := ""
			if ectx != nil {
				requestID = ectx.RequestID
			}
			e.report(scope, resp, logging.ForRequest(e.logger, requestID, operationName))
		})
	}
	return resp
}

func (e *Extension) report(scope errorscope.Scope, resp *model.Response, logger *zap.Logger) {
	var message *string
	paths := []string{}
	messages := []string{}
	for _, err := range resp.Errors {
		if err == nil {
			continue
		}
		if len(err.Path) > 0 {
			paths = append(paths, err.Path.String())
			messages = append(messages, err.Message)
		}
		if message == nil {
			message = &err.Message
		}
	}
	if scope != nil {
		scope.SetContext(ContextKey, map[string]interface{}{
			"path":   paths,
			"errors": messages,
		})
	}
	text := DefaultMessage
	if message != nil && *message != "" {
		text = *message
	}
	logger.Error(text, zap.Strings("path", paths))
	if e.capture && scope != nil {
		scope.CaptureMessage(text)
	}
}

// safely swallows instrumentation faults so they never reach the request.
func (e *Extension) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("error reporting failed", zap.Any("panic", r))
		}
	}()
	fn()
}
