package tracing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTracingFile(t *testing.T) {
	fname := filepath.Join(t.TempDir(), "span_test.txt")

	provider, err := Init("gqlotel", "0.0.1", fname)
	require.NoError(t, err)

	_, span := provider.GraphQLTracer().Start(context.Background(), "test")
	span.End()
	require.NoError(t, provider.Shutdown(context.Background()))
	assert.NoError(t, provider.Shutdown(context.Background()))

	data, err := os.ReadFile(fname)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Name":"test"`)
}

func TestInitWithExporter(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider, err := InitWithExporter("gqlotel", "0.0.1", exporter, WithSampleRatio(1))
	require.NoError(t, err)

	_, span := provider.GraphQLTracer().Start(context.Background(), "request")
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "request", spans[0].Name)
	assert.Equal(t, TracerName, spans[0].InstrumentationLibrary.Name)

	_, err = InitWithExporter("gqlotel", "0.0.1", nil)
	assert.Error(t, err)
}

func TestSampler(t *testing.T) {
	type testCase struct {
		name     string
		options  []Option
		expected string
	}
	testCases := []testCase{
		{name: "default", expected: "AlwaysOnSampler"},
		{name: "full ratio", options: []Option{WithSampleRatio(1)}, expected: "AlwaysOnSampler"},
		{name: "partial ratio", options: []Option{WithSampleRatio(0.5)}, expected: "ParentBased{root:TraceIDRatioBased{0.5}"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Contains(t, newOptions(tc.options).sampler().Description(), tc.expected)
		})
	}
}

func TestParseEndpoint(t *testing.T) {
	host, insecure := parseEndpoint("collector:4317")
	assert.Equal(t, "collector:4317", host)
	assert.True(t, insecure)

	host, insecure = parseEndpoint("https://collector.example.com:4317")
	assert.Equal(t, "collector.example.com:4317", host)
	assert.False(t, insecure)
}
