package model

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/bytedance/sonic"
)

// Value represents a GraphQL input value. It is one of Null, Boolean,
// String, Number, Enum, Object, List or Binary.
type Value interface {
	isValue()
}

// Null is the GraphQL null value.
type Null struct{}

// Boolean is a GraphQL boolean value.
type Boolean bool

// String is a GraphQL string value.
type String string

// Number keeps the textual form of a numeric literal so that no precision
// is lost when the value is reported.
type Number string

// Enum holds the symbolic name of an enum value.
type Enum string

// Binary holds raw upload bytes.
type Binary []byte

// List is an ordered sequence of values.
type List []Value

// Field is a single named entry of an Object.
type Field struct {
	Name  string
	Value Value
}

// Object is an ordered name to value mapping.
type Object []Field

// Variables are the request variables supplied alongside a query.
type Variables Object

func (Null) isValue()    {}
func (Boolean) isValue() {}
func (String) isValue()  {}
func (Number) isValue()  {}
func (Enum) isValue()    {}
func (Binary) isValue()  {}
func (List) isValue()    {}
func (Object) isValue()  {}

// Int returns a Number for an integer.
func Int(v int64) Number {
	return Number(strconv.FormatInt(v, 10))
}

// Float returns a Number for a float using the shortest exact representation.
func Float(v float64) Number {
	return Number(strconv.FormatFloat(v, 'g', -1, 64))
}

// Get returns the value for the first field with the supplied name.
func (o Object) Get(name string) (Value, bool) {
	for _, field := range o {
		if field.Name == name {
			return field.Value, true
		}
	}
	return nil, false
}

// Get returns the variable value with the supplied name.
func (v Variables) Get(name string) (Value, bool) {
	return Object(v).Get(name)
}

var decoder = sonic.Config{UseNumber: true}.Froze()

// ParseVariables decodes a JSON object into Variables. Numbers keep their
// literal form and keys are ordered as produced by the decoder.
func ParseVariables(data []byte) (Variables, error) {
	if len(data) == 0 {
		return Variables{}, nil
	}
	var decoded map[string]interface{}
	if err := decoder.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("failed to decode variables: %w", err)
	}
	obj, _ := ValueOf(decoded).(Object)
	return Variables(obj), nil
}

// ValueOf converts a decoded JSON-like Go value into a Value.
func ValueOf(v interface{}) Value {
	switch actual := v.(type) {
	case nil:
		return Null{}
	case Value:
		return actual
	case bool:
		return Boolean(actual)
	case string:
		return String(actual)
	case json.Number:
		return Number(actual)
	case int:
		return Int(int64(actual))
	case int64:
		return Int(actual)
	case float64:
		return Float(actual)
	case []byte:
		return Binary(actual)
	case []interface{}:
		list := make(List, 0, len(actual))
		for _, item := range actual {
			list = append(list, ValueOf(item))
		}
		return list
	case map[string]interface{}:
		keys := sortedKeys(actual)
		obj := make(Object, 0, len(actual))
		for _, k := range keys {
			obj = append(obj, Field{Name: k, Value: ValueOf(actual[k])})
		}
		return obj
	}
	return String(fmt.Sprintf("%v", v))
}
