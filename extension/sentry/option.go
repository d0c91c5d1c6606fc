package sentry

import (
	"github.com/viant/gqlotel/errorscope"
	"go.uber.org/zap"
)

// Option customises the factory
type Option func(f *Factory)

// WithScope sets the scope provider
func WithScope(provider errorscope.Provider) Option {
	return func(f *Factory) {
		if provider != nil {
			f.scope = provider
		}
	}
}

// WithLogger sets the log sink for error messages
func WithLogger(logger *zap.Logger) Option {
	return func(f *Factory) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithCapture also captures the representative message as an error event.
func WithCapture(capture bool) Option {
	return func(f *Factory) {
		f.capture = capture
	}
}
