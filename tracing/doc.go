// Package tracing configures the OpenTelemetry tracer provider used by the
// GraphQL extensions.  It is kept separate from the extensions so that
// applications bringing their own provider do not pull in any exporter.
package tracing
