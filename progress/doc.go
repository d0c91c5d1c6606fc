// Package progress keeps per-request field resolution counters (total,
// running, completed, failed) for a single GraphQL request.  The tracker
// lives in the request context so that concurrently resolving fields can
// update it without a global registry.
package progress
