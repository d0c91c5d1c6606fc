// Package model contains the engine-facing representation of a GraphQL
// request as seen by instrumentation: input values and variables, field
// resolution descriptors, validation results and responses.
//
// The query engine owns and produces these values; extensions only read
// them.  Nothing in this package parses or executes queries.
package model
