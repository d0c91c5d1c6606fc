package gqlotel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/viant/gqlotel/extension"
	"github.com/viant/gqlotel/extension/filter"
	"github.com/viant/gqlotel/extension/opentelemetry"
	esentry "github.com/viant/gqlotel/extension/sentry"
	"github.com/viant/gqlotel/internal/idgen"
	"github.com/viant/gqlotel/logging"
	"github.com/viant/gqlotel/policy"
	"github.com/viant/gqlotel/progress"
	"github.com/viant/gqlotel/tracing"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

const defaultFlushTimeout = 2 * time.Second

// Service wires the instrumentation extensions for a GraphQL engine.
type Service struct {
	config         *Config
	logger         *zap.Logger
	provider       *tracing.Provider
	exporter       sdktrace.SpanExporter
	tracingOptions []tracing.Option
	tracer         trace.Tracer
	hub            *sentry.Hub
	policy         *policy.Policy
	stringify      extension.StringifyFunc
	extensions     []extension.Factory
	onProgress     func(progress.Progress)
	factories      []extension.Factory
}

func (s *Service) init(ctx context.Context, options []Option) error {
	for _, option := range options {
		option(s)
	}
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if err := s.config.Validate(); err != nil {
		return err
	}
	if err := s.ensureLogger(); err != nil {
		return err
	}
	if err := s.ensureTracer(ctx); err != nil {
		return err
	}
	if err := s.ensureHub(); err != nil {
		return err
	}
	s.policy = policy.FromConfig(&s.config.Filter)
	s.factories = s.buildFactories()
	return nil
}

func (s *Service) ensureLogger() error {
	if s.logger != nil {
		return nil
	}
	logger, err := logging.New(s.config.Logging, logging.Service(s.config.Tracing.ServiceName))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	s.logger = logger
	return nil
}

func (s *Service) ensureTracer(ctx context.Context) error {
	if s.tracer != nil {
		return nil
	}
	cfg := s.config.Tracing
	options := s.tracingOptions
	if cfg.SampleRatio > 0 {
		options = append([]tracing.Option{tracing.WithSampleRatio(cfg.SampleRatio)}, options...)
	}
	if s.provider == nil {
		var err error
		switch {
		case s.exporter != nil:
			s.provider, err = tracing.InitWithExporter(cfg.ServiceName, cfg.ServiceVersion, s.exporter, options...)
		case cfg.Exporter == ExporterOTLP:
			s.provider, err = tracing.InitOTLP(ctx, cfg.ServiceName, cfg.ServiceVersion, cfg.Endpoint, options...)
		case cfg.Exporter == ExporterStdout:
			s.provider, err = tracing.Init(cfg.ServiceName, cfg.ServiceVersion, cfg.OutputURL, options...)
		}
		if err != nil {
			return err
		}
		if s.provider != nil {
			tracing.Install(s.provider)
		}
	}
	if s.provider != nil {
		s.tracer = s.provider.GraphQLTracer()
		return nil
	}
	s.tracer = otel.Tracer(tracing.TracerName)
	return nil
}

func (s *Service) ensureHub() error {
	if s.hub != nil || s.config.Sentry.DSN == "" {
		return nil
	}
	client, err := sentry.NewClient(sentry.ClientOptions{
		Dsn:         s.config.Sentry.DSN,
		Environment: s.config.Sentry.Environment,
		Release:     s.config.Tracing.ServiceVersion,
	})
	if err != nil {
		return fmt.Errorf("failed to create sentry client: %w", err)
	}
	s.hub = sentry.NewHub(client, sentry.NewScope())
	return nil
}

// buildFactories orders error reporting before tracing so that the trace
// context is read while the request span is active. Tracing is always
// filtered so that a policy bound to the request context applies.
func (s *Service) buildFactories() []extension.Factory {
	var ret []extension.Factory
	if s.hub != nil {
		ret = append(ret, esentry.New(
			esentry.WithLogger(s.logger),
			esentry.WithCapture(s.config.Sentry.Capture)))
	}
	ret = append(ret, filter.New(opentelemetry.New(s.tracer), filter.FromPolicy(s.policy)))
	if s.onProgress != nil {
		ret = append(ret, progress.NewFactory(s.onProgress))
	}
	return append(ret, s.extensions...)
}

// Factories returns the ordered extension factories.
func (s *Service) Factories() []extension.Factory {
	return s.factories
}

// Config returns the effective configuration.
func (s *Service) Config() *Config {
	return s.config
}

// Logger returns the service logger.
func (s *Service) Logger() *zap.Logger {
	return s.logger
}

// Tracer returns the GraphQL tracer.
func (s *Service) Tracer() trace.Tracer {
	return s.tracer
}

// NewChain creates the per-request extension chain. The returned context
// carries a request-scoped sentry hub. A per-request policy can be added
// with policy.WithPolicy on top of the configured one.
func (s *Service) NewChain(ctx context.Context) (context.Context, *extension.Chain) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.hub != nil {
		ctx = sentry.SetHubOnContext(ctx, s.hub.Clone())
	}
	ectx := extension.NewContext(idgen.New(), s.stringify)
	return ctx, extension.NewChain(ectx, s.factories...)
}

// Shutdown flushes pending error reports and spans.
func (s *Service) Shutdown(ctx context.Context) error {
	var errs []error
	if s.hub != nil {
		timeout := defaultFlushTimeout
		if deadline, ok := ctx.Deadline(); ok {
			timeout = time.Until(deadline)
		}
		if !s.hub.Flush(timeout) {
			errs = append(errs, fmt.Errorf("failed to flush error reports within %v", timeout))
		}
	}
	if s.provider != nil {
		if err := s.provider.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	_ = s.logger.Sync()
	return errors.Join(errs...)
}

// New creates a service.
func New(options ...Option) (*Service, error) {
	return NewWithContext(context.Background(), options...)
}

// NewWithContext creates a service; ctx bounds exporter connection setup.
func NewWithContext(ctx context.Context, options ...Option) (*Service, error) {
	ret := &Service{}
	if err := ret.init(ctx, options); err != nil {
		return nil, err
	}
	return ret, nil
}

// NewFromConfig creates a service from cfg.
func NewFromConfig(cfg *Config, options ...Option) (*Service, error) {
	return New(append([]Option{WithConfig(cfg)}, options...)...)
}
