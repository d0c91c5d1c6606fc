package gqlotel

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"github.com/viant/gqlotel/logging"
	"github.com/viant/gqlotel/policy"
	"gopkg.in/yaml.v3"
)

const (
	// ExporterNone leaves tracing to the globally installed provider.
	ExporterNone = "none"
	// ExporterStdout writes spans as JSON to stdout or OutputURL.
	ExporterStdout = "stdout"
	// ExporterOTLP ships spans over OTLP/gRPC to Endpoint.
	ExporterOTLP = "otlp"

	defaultServiceName = "not-set"
)

// Config is a serialisable representation of the instrumentation setup. It
// can be populated from YAML, JSON or environment variables. The zero-value
// is completed by DefaultConfig.
type Config struct {
	Tracing TracingConfig  `json:"tracing" yaml:"tracing"`
	Sentry  SentryConfig   `json:"sentry" yaml:"sentry"`
	Logging logging.Config `json:"logging" yaml:"logging"`
	Filter  policy.Config  `json:"filter" yaml:"filter"`
}

// TracingConfig selects and parameterises the span exporter.
type TracingConfig struct {
	ServiceName    string  `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string  `json:"serviceVersion,omitempty" yaml:"serviceVersion,omitempty"`
	Exporter       string  `json:"exporter" yaml:"exporter"`
	Endpoint       string  `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	OutputURL      string  `json:"outputURL,omitempty" yaml:"outputURL,omitempty"`
	SampleRatio    float64 `json:"sampleRatio,omitempty" yaml:"sampleRatio,omitempty"`
}

// SentryConfig enables error reporting when DSN is set.
type SentryConfig struct {
	DSN         string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	Environment string `json:"environment,omitempty" yaml:"environment,omitempty"`
	Capture     bool   `json:"capture,omitempty" yaml:"capture,omitempty"`
}

// environment mirrors the variables read by LoadEnv.
type environment struct {
	Exporter    string `envconfig:"OTEL_EXPORTER"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME"`
	Hostname    string `envconfig:"HOSTNAME"`
	SentryDSN   string `envconfig:"SENTRY_DSN"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogDev      bool   `envconfig:"LOG_DEV" default:"false"`
}

// DefaultConfig returns a Config with the stdout exporter and info logging.
func DefaultConfig() *Config {
	return &Config{
		Tracing: TracingConfig{
			ServiceName: defaultServiceName,
			Exporter:    ExporterStdout,
			SampleRatio: 1,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Validate returns aggregated error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	var errs []error
	switch c.Tracing.Exporter {
	case "", ExporterNone, ExporterStdout:
	case ExporterOTLP:
		if c.Tracing.Endpoint == "" {
			errs = append(errs, fmt.Errorf("tracing.endpoint is required for %v exporter", ExporterOTLP))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported tracing.exporter: %v", c.Tracing.Exporter))
	}
	if r := c.Tracing.SampleRatio; r < 0 || r > 1 {
		errs = append(errs, fmt.Errorf("tracing.sampleRatio must be within [0,1]: %v", r))
	}
	return errors.Join(errs...)
}

// LoadConfig reads a YAML (or JSON) document on top of DefaultConfig.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %v: %w", path, err)
	}
	cfg := DefaultConfig()
	if err = yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %v: %w", path, err)
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadEnv builds a Config from the process environment. OTEL_EXPORTER holds
// the OTLP endpoint; when unset spans go to stdout. The service name falls
// back to HOSTNAME, then to "not-set".
func LoadEnv() (*Config, error) {
	var env environment
	if err := envconfig.Process("", &env); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg := DefaultConfig()
	if endpoint := strings.TrimSpace(env.Exporter); endpoint != "" {
		cfg.Tracing.Exporter = ExporterOTLP
		cfg.Tracing.Endpoint = endpoint
	}
	switch {
	case env.ServiceName != "":
		cfg.Tracing.ServiceName = env.ServiceName
	case env.Hostname != "":
		cfg.Tracing.ServiceName = env.Hostname
	}
	cfg.Sentry.DSN = env.SentryDSN
	cfg.Logging.Level = env.LogLevel
	cfg.Logging.Development = env.LogDev
	return cfg, cfg.Validate()
}
