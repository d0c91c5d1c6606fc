package tracing

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const (
	// TracerName is the instrumentation scope used for GraphQL spans.
	TracerName = "graphql"

	exportTimeout       = 5 * time.Second
	maxEventsPerSpan    = 32
	maxAttributesPerEvt = 16
)

// Provider owns an SDK tracer provider together with an optional trace
// dump that is uploaded to OutputURL on shutdown.
type Provider struct {
	*sdktrace.TracerProvider
	fs        afs.Service
	outputURL string
	dump      *bytes.Buffer
	closeOnce sync.Once
	closeErr  error
}

// Init configures a provider with the stdout exporter. If outputURL is empty
// spans are written to os.Stdout; otherwise they are buffered and uploaded to
// outputURL (any afs supported location) when the provider shuts down.
func Init(serviceName, serviceVersion, outputURL string, options ...Option) (*Provider, error) {
	var w io.Writer = os.Stdout
	ret := &Provider{outputURL: outputURL}
	if outputURL != "" {
		ret.dump = &bytes.Buffer{}
		ret.fs = afs.New()
		w = ret.dump
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout exporter: %w", err)
	}
	if err = ret.init(serviceName, serviceVersion, sdktrace.NewSimpleSpanProcessor(exporter), options); err != nil {
		return nil, err
	}
	return ret, nil
}

// InitOTLP configures a provider exporting over OTLP/gRPC to endpoint
// (host:port or http(s)://host:port) with a batching span processor.
func InitOTLP(ctx context.Context, serviceName, serviceVersion, endpoint string, options ...Option) (*Provider, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("otlp endpoint was empty")
	}
	exporterOptions := []otlptracegrpc.Option{otlptracegrpc.WithTimeout(exportTimeout)}
	host, insecure := parseEndpoint(endpoint)
	exporterOptions = append(exporterOptions, otlptracegrpc.WithEndpoint(host))
	if insecure {
		exporterOptions = append(exporterOptions, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, exporterOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create otlp exporter: %w", err)
	}
	ret := &Provider{}
	if err = ret.init(serviceName, serviceVersion, sdktrace.NewBatchSpanProcessor(exporter), options); err != nil {
		return nil, err
	}
	return ret, nil
}

// InitWithExporter configures a provider with the supplied exporter. This
// allows any exporter supported by the OpenTelemetry SDK, including the
// in-memory one used by tests.
func InitWithExporter(serviceName, serviceVersion string, exporter sdktrace.SpanExporter, options ...Option) (*Provider, error) {
	if exporter == nil {
		return nil, fmt.Errorf("exporter was nil")
	}
	ret := &Provider{}
	if err := ret.init(serviceName, serviceVersion, sdktrace.NewSimpleSpanProcessor(exporter), options); err != nil {
		return nil, err
	}
	return ret, nil
}

func (p *Provider) init(serviceName, serviceVersion string, processor sdktrace.SpanProcessor, options []Option) error {
	opts := newOptions(options)
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			attribute.String("service.name", serviceName),
			attribute.String("service.version", serviceVersion),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create resource: %w", err)
	}
	limits := sdktrace.NewSpanLimits()
	limits.EventCountLimit = maxEventsPerSpan
	limits.AttributePerEventCountLimit = maxAttributesPerEvt

	p.TracerProvider = sdktrace.NewTracerProvider(
		sdktrace.WithSpanProcessor(processor),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(opts.sampler()),
		sdktrace.WithRawSpanLimits(limits),
	)
	return nil
}

// GraphQLTracer returns the tracer used by the GraphQL extensions.
func (p *Provider) GraphQLTracer() trace.Tracer {
	return p.Tracer(TracerName)
}

// Shutdown flushes pending spans, stops the provider and uploads the trace
// dump if one was configured. Only the first call has effect.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p == nil || p.TracerProvider == nil {
		return nil
	}
	p.closeOnce.Do(func() {
		var errs []error
		if err := p.TracerProvider.ForceFlush(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to flush spans: %w", err))
		}
		if err := p.TracerProvider.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("failed to shutdown provider: %w", err))
		}
		if p.outputURL != "" {
			if err := p.fs.Upload(ctx, p.outputURL, file.DefaultFileOsMode, bytes.NewReader(p.dump.Bytes())); err != nil {
				errs = append(errs, fmt.Errorf("failed to upload traces to %s: %w", p.outputURL, err))
			}
		}
		p.closeErr = errors.Join(errs...)
	})
	return p.closeErr
}

var installOnce sync.Once

// Install registers p as the global tracer provider and the W3C trace
// context propagator as the global propagator. The first call wins.
func Install(p *Provider) {
	if p == nil || p.TracerProvider == nil {
		return
	}
	installOnce.Do(func() {
		otel.SetTextMapPropagator(propagation.TraceContext{})
		otel.SetTracerProvider(p.TracerProvider)
	})
}

func parseEndpoint(endpoint string) (string, bool) {
	if !strings.Contains(endpoint, "://") {
		return endpoint, true
	}
	u, err := url.Parse(endpoint)
	if err != nil || u.Host == "" {
		return endpoint, true
	}
	return u.Host, u.Scheme != "https"
}
