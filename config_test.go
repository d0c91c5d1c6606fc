package gqlotel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(c *Config)
		hasErr bool
	}{
		{name: "default", mutate: func(c *Config) {}},
		{name: "none exporter", mutate: func(c *Config) { c.Tracing.Exporter = ExporterNone }},
		{name: "otlp without endpoint", mutate: func(c *Config) { c.Tracing.Exporter = ExporterOTLP }, hasErr: true},
		{name: "otlp with endpoint", mutate: func(c *Config) {
			c.Tracing.Exporter = ExporterOTLP
			c.Tracing.Endpoint = "localhost:4317"
		}},
		{name: "unknown exporter", mutate: func(c *Config) { c.Tracing.Exporter = "zipkin" }, hasErr: true},
		{name: "ratio out of range", mutate: func(c *Config) { c.Tracing.SampleRatio = 1.5 }, hasErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.hasErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
	var nilConfig *Config
	assert.NoError(t, nilConfig.Validate())
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	location := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(location, []byte(`
tracing:
  serviceName: catalog
  exporter: otlp
  endpoint: http://collector:4317
sentry:
  dsn: http://public@example.com/1
  capture: true
logging:
  level: debug
filter:
  block:
    - Query.health
  skipListItems: true
`), 0o644))

	cfg, err := LoadConfig(location)
	require.NoError(t, err)
	assert.Equal(t, "catalog", cfg.Tracing.ServiceName)
	assert.Equal(t, ExporterOTLP, cfg.Tracing.Exporter)
	assert.Equal(t, "http://collector:4317", cfg.Tracing.Endpoint)
	assert.EqualValues(t, 1, cfg.Tracing.SampleRatio)
	assert.Equal(t, "http://public@example.com/1", cfg.Sentry.DSN)
	assert.True(t, cfg.Sentry.Capture)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, []string{"Query.health"}, cfg.Filter.BlockList)
	assert.True(t, cfg.Filter.SkipListItems)

	_, err = LoadConfig(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("tracing:\n  exporter: otlp\n"), 0o644))
	_, err = LoadConfig(invalid)
	assert.Error(t, err)
}

func TestLoadEnv(t *testing.T) {
	testCases := []struct {
		name         string
		env          map[string]string
		expectName   string
		expectExport string
		expectURL    string
	}{
		{
			name:         "defaults",
			env:          map[string]string{"OTEL_EXPORTER": "", "OTEL_SERVICE_NAME": "", "HOSTNAME": ""},
			expectName:   defaultServiceName,
			expectExport: ExporterStdout,
		},
		{
			name:         "otlp with service name",
			env:          map[string]string{"OTEL_EXPORTER": "http://collector:4317", "OTEL_SERVICE_NAME": "catalog", "HOSTNAME": "pod-1"},
			expectName:   "catalog",
			expectExport: ExporterOTLP,
			expectURL:    "http://collector:4317",
		},
		{
			name:         "hostname fallback",
			env:          map[string]string{"OTEL_EXPORTER": "", "OTEL_SERVICE_NAME": "", "HOSTNAME": "pod-1"},
			expectName:   "pod-1",
			expectExport: ExporterStdout,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			t.Setenv("SENTRY_DSN", "http://public@example.com/1")
			t.Setenv("LOG_LEVEL", "warn")
			cfg, err := LoadEnv()
			require.NoError(t, err)
			assert.Equal(t, tc.expectName, cfg.Tracing.ServiceName)
			assert.Equal(t, tc.expectExport, cfg.Tracing.Exporter)
			assert.Equal(t, tc.expectURL, cfg.Tracing.Endpoint)
			assert.Equal(t, "http://public@example.com/1", cfg.Sentry.DSN)
			assert.Equal(t, "warn", cfg.Logging.Level)
		})
	}
}
