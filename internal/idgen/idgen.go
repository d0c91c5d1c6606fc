// Package idgen generates request identifiers.
package idgen

import "github.com/google/uuid"

// NewFunc generates an identifier; replace it in tests for determinism.
var NewFunc = newRequestID

// New returns a new request identifier.
func New() string { return NewFunc() }

// newRequestID prefers time ordered v7 identifiers so request ids sort by
// arrival, falling back to random v4.
func newRequestID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
