// Package redact masks credential-like fields of GraphQL variables before
// they are recorded as span attributes.
package redact

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/viant/gqlotel/model"
)

const (
	// Placeholder replaces the value of every credential-like key.
	Placeholder = "<secret>"
	// SerializationFailure is returned when the redacted value cannot be encoded.
	SerializationFailure = "failed to serialize variables"
)

// encoder sorts object keys and leaves '<' and '>' unescaped. Invalid UTF-8
// is replaced with U+FFFD.
var encoder = sonic.Config{SortMapKeys: true, ValidateString: true}.Froze()

// marshal is replaced in tests to simulate encoder faults.
var marshal = encoder.Marshal

var credentialKeys = []string{
	"token",
	"password",
	"secret",
	"key",
	"apiKey",
	"authToken",
	"accessToken",
	"refreshToken",
	"credential",
	"credentials",
}

// IsCredential reports whether key equals or contains (case-sensitive) any credential keyword.
func IsCredential(key string) bool {
	for _, candidate := range credentialKeys {
		if key == candidate || strings.Contains(key, candidate) {
			return true
		}
	}
	return false
}

// Variables returns redacted variables encoded as JSON with sorted keys.
// It never fails; on error SerializationFailure is returned.
func Variables(variables model.Variables) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = SerializationFailure
		}
	}()
	data, err := marshal(object(model.Object(variables)))
	if err != nil {
		return SerializationFailure
	}
	return string(data)
}

// Value returns a JSON-like redacted copy of value built from nil, bool,
// string, json.Number, []interface{} and map[string]interface{}.
func Value(value model.Value) interface{} {
	switch actual := value.(type) {
	case nil, model.Null:
		return nil
	case model.Boolean:
		return bool(actual)
	case model.String:
		return string(actual)
	case model.Number:
		return number(actual)
	case model.Enum:
		return string(actual)
	case model.Binary:
		return fmt.Sprintf("<binary len=%d>", len(actual))
	case model.List:
		list := make([]interface{}, 0, len(actual))
		for _, item := range actual {
			list = append(list, Value(item))
		}
		return list
	case model.Object:
		return object(actual)
	}
	return nil
}

func object(obj model.Object) map[string]interface{} {
	result := make(map[string]interface{}, len(obj))
	for _, field := range obj {
		if IsCredential(field.Name) {
			result[field.Name] = Placeholder
			continue
		}
		result[field.Name] = Value(field.Value)
	}
	return result
}

// number keeps a valid JSON numeric literal as is, anything else, including
// literals padded with whitespace, is reported as string.
func number(n model.Number) interface{} {
	literal := string(n)
	if literal == "" || strings.TrimSpace(literal) != literal {
		return literal
	}
	if c := literal[0]; c != '-' && (c < '0' || c > '9') {
		return literal
	}
	if !json.Valid([]byte(literal)) {
		return literal
	}
	return json.Number(literal)
}
