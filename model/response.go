package model

import "strings"

// Document is the engine-owned result of parsing a query.
type Document interface{}

// ValidationResult carries the measurements computed while validating a document.
type ValidationResult struct {
	Complexity int
	Depth      int
}

// ServerError is a single error reported in a response.
type ServerError struct {
	Message string
	Path    Path
}

func (e *ServerError) Error() string {
	return e.Message
}

// Errors is a list of server errors usable as a single error.
type Errors []*ServerError

func (e Errors) Error() string {
	messages := make([]string, 0, len(e))
	for _, err := range e {
		if err != nil {
			messages = append(messages, err.Message)
		}
	}
	return strings.Join(messages, "; ")
}

// Response is the result of executing a request.
type Response struct {
	Data   interface{}
	Errors []*ServerError
}

// IsErr reports whether the response carries errors.
func (r *Response) IsErr() bool {
	return r != nil && len(r.Errors) > 0
}

// ErrorResponse wraps err into a response.
func ErrorResponse(err error) *Response {
	if list, ok := err.(Errors); ok {
		return &Response{Errors: list}
	}
	if serverErr, ok := err.(*ServerError); ok {
		return &Response{Errors: []*ServerError{serverErr}}
	}
	return &Response{Errors: []*ServerError{{Message: err.Error()}}}
}
