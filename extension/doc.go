// Package extension defines the phase-hook contract shared by every
// instrumentation unit and the Chain that composes them around the query
// engine.
//
// A request passes through six phases: request, subscribe, parse,
// validation, execute and resolve (once per field).  For every phase an
// Extension receives a continuation (Next*) representing the rest of the
// chain followed by the engine's own work.  An extension must call Run on
// the continuation exactly once, unless it deliberately short-circuits, and
// must return the continuation's result unchanged.
//
//	chain := extension.NewChain(ectx, sentry.New(), opentelemetry.New(tracer))
//	resp := chain.Execute(ctx, "", engine.Execute)
//
// Extensions are created per request by a Factory, so per-request state never
// leaks between requests.
package extension
