package extension

import (
	"fmt"

	"github.com/viant/gqlotel/model"
)

// StringifyFunc renders a parsed document, typically with variables inlined.
type StringifyFunc func(doc model.Document, variables model.Variables) string

// Context carries per-request engine state visible to extensions.
type Context struct {
	RequestID string
	stringify StringifyFunc
}

// NewContext creates a request context. stringify may be nil.
func NewContext(requestID string, stringify StringifyFunc) *Context {
	return &Context{RequestID: requestID, stringify: stringify}
}

// StringifyDocument renders doc using the engine supplied function.
func (c *Context) StringifyDocument(doc model.Document, variables model.Variables) string {
	if c != nil && c.stringify != nil {
		return c.stringify(doc, variables)
	}
	if doc == nil {
		return ""
	}
	if s, ok := doc.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", doc)
}
