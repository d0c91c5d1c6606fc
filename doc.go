// Package gqlotel instruments a GraphQL query engine with OpenTelemetry
// spans, W3C trace-context propagation, credential redaction and error
// reporting.
//
// The engine owns parsing, validation and execution; gqlotel only observes.
// End-users typically build a Service once and create a chain per request:
//
//	srv, _ := gqlotel.New(gqlotel.WithConfig(cfg))
//	ctx, chain := srv.NewChain(ctx)
//	resp := chain.Request(ctx, engine.Request)
package gqlotel
