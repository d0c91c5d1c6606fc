package gqlotel

import (
	"github.com/getsentry/sentry-go"
	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/progress"
	"github.com/viant/gqlotel/tracing"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Option customises a Service
type Option func(s *Service)

// WithConfig sets the configuration; nil keeps DefaultConfig.
func WithConfig(cfg *Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithLogger sets the logger used for error reporting.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithTracer sets the tracer directly, bypassing provider setup.
func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) { s.tracer = tracer }
}

// WithProvider uses an already initialised provider. The service shuts it
// down together with itself.
func WithProvider(provider *tracing.Provider) Option {
	return func(s *Service) { s.provider = provider }
}

// WithTracingExporter configures tracing with a custom SpanExporter, for
// example an in-memory exporter or a vendor specific one.
func WithTracingExporter(exporter sdktrace.SpanExporter, options ...tracing.Option) Option {
	return func(s *Service) {
		s.exporter = exporter
		s.tracingOptions = append(s.tracingOptions, options...)
	}
}

// WithHub sets the sentry hub; a clone is bound to every request.
func WithHub(hub *sentry.Hub) Option {
	return func(s *Service) { s.hub = hub }
}

// WithStringifier sets the document stringifier used for graphql.source.
func WithStringifier(fn extension.StringifyFunc) Option {
	return func(s *Service) { s.stringify = fn }
}

// WithExtensions appends factories after the built-in ones.
func WithExtensions(factories ...extension.Factory) Option {
	return func(s *Service) {
		s.extensions = append(s.extensions, factories...)
	}
}

// WithProgress tracks field resolution counters for every request.
func WithProgress(onChange func(progress.Progress)) Option {
	return func(s *Service) { s.onProgress = onChange }
}
