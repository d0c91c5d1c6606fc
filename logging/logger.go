// Package logging builds the zap logger used to report GraphQL failures and
// scopes it to a service and a request.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// ServiceKey holds the traced service name.
	ServiceKey = "service"
	// RequestIDKey holds the per-request identifier assigned by the chain.
	RequestIDKey = "request_id"
	// OperationKey holds the executed GraphQL operation name.
	OperationKey = "operation"
)

// Config defines logger configuration.
type Config struct {
	Level       string   `json:"level" yaml:"level"`
	Development bool     `json:"development" yaml:"development"`
	OutputPaths []string `json:"outputPaths,omitempty" yaml:"outputPaths,omitempty"`
}

// DefaultConfig logs info and above as JSON to stdout.
func DefaultConfig() Config {
	return Config{Level: zapcore.InfoLevel.String(), OutputPaths: []string{"stdout"}}
}

// New creates a logger named "graphql". Development mode switches to a
// console encoder with stack traces on warnings.
func New(cfg Config, fields ...zap.Field) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
	}
	zapCfg := zap.NewProductionConfig()
	if cfg.Development {
		zapCfg = zap.NewDevelopmentConfig()
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if len(cfg.OutputPaths) > 0 {
		zapCfg.OutputPaths = cfg.OutputPaths
	}
	logger, err := zapCfg.Build(zap.Fields(fields...))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger.Named("graphql"), nil
}

// NewDefault creates a logger with default configuration, falling back to a no-op logger.
func NewDefault() *zap.Logger {
	logger, err := New(DefaultConfig())
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

// Service annotates log entries with the service name.
func Service(name string) zap.Field {
	return zap.String(ServiceKey, name)
}

// ForRequest returns a child logger tagged with the request id and, when
// known, the operation name. A nil logger yields a no-op one.
func ForRequest(logger *zap.Logger, requestID, operation string) *zap.Logger {
	if logger == nil {
		return zap.NewNop()
	}
	var fields []zap.Field
	if requestID != "" {
		fields = append(fields, zap.String(RequestIDKey, requestID))
	}
	if operation != "" {
		fields = append(fields, zap.String(OperationKey, operation))
	}
	if len(fields) == 0 {
		return logger
	}
	return logger.With(fields...)
}
