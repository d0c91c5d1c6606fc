package redact

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/gqlotel/model"
)

func TestIsCredential(t *testing.T) {
	type testCase struct {
		key      string
		expected bool
	}
	testCases := []testCase{
		{key: "token", expected: true},
		{key: "password", expected: true},
		{key: "userPassword", expected: false},
		{key: "apiKey", expected: true},
		{key: "monkey", expected: true},
		{key: "clientSecretValue", expected: false},
		{key: "my_secret", expected: true},
		{key: "credentials", expected: true},
		{key: "Token", expected: false},
		{key: "name", expected: false},
	}
	for _, tc := range testCases {
		t.Run(tc.key, func(t *testing.T) {
			assert.Equal(t, tc.expected, IsCredential(tc.key))
		})
	}
}

func TestVariables_Redacted(t *testing.T) {
	type testCase struct {
		name      string
		variables model.Variables
		expected  string
	}
	testCases := []testCase{
		{
			name:      "empty",
			variables: model.Variables{},
			expected:  `{}`,
		},
		{
			name: "top level credentials of any type",
			variables: model.Variables{
				{Name: "password", Value: model.String("hunter2")},
				{Name: "accessToken", Value: model.Object{{Name: "v", Value: model.Int(1)}}},
				{Name: "apiKey", Value: model.Null{}},
				{Name: "user", Value: model.String("bob")},
			},
			expected: `{"accessToken":"<secret>","apiKey":"<secret>","password":"<secret>","user":"bob"}`,
		},
		{
			name: "nested objects and lists",
			variables: model.Variables{
				{Name: "input", Value: model.Object{
					{Name: "login", Value: model.String("bob")},
					{Name: "auth", Value: model.List{
						model.Object{{Name: "refreshToken", Value: model.String("x")}, {Name: "kind", Value: model.Enum("BEARER")}},
					}},
				}},
			},
			expected: `{"input":{"auth":[{"kind":"BEARER","refreshToken":"<secret>"}],"login":"bob"}}`,
		},
		{
			name: "leaf rules",
			variables: model.Variables{
				{Name: "file", Value: model.Binary([]byte{1, 2, 3})},
				{Name: "flag", Value: model.Boolean(true)},
				{Name: "big", Value: model.Number("12345678901234567890123")},
				{Name: "price", Value: model.Number("1.50")},
				{Name: "nothing", Value: model.Null{}},
			},
			expected: `{"big":12345678901234567890123,"file":"<binary len=3>","flag":true,"nothing":null,"price":1.50}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Variables(tc.variables)
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestVariables_IdentityWithoutCredentials(t *testing.T) {
	variables := model.Variables{
		{Name: "id", Value: model.Int(42)},
		{Name: "tags", Value: model.List{model.String("a"), model.String("b")}},
		{Name: "filter", Value: model.Object{{Name: "active", Value: model.Boolean(false)}, {Name: "ratio", Value: model.Float(0.25)}}},
	}
	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(Variables(variables)), &decoded))
	assert.Equal(t, map[string]interface{}{
		"id":     float64(42),
		"tags":   []interface{}{"a", "b"},
		"filter": map[string]interface{}{"active": false, "ratio": 0.25},
	}, decoded)
}

func TestValue(t *testing.T) {
	assert.Nil(t, Value(nil))
	assert.Equal(t, "RED", Value(model.Enum("RED")))
	assert.Equal(t, json.Number("-3e5"), Value(model.Number("-3e5")))
	assert.Equal(t, "NaN", Value(model.Number("NaN")))
	assert.Equal(t, "1 ", Value(model.Number("1 ")))
	assert.Equal(t, "\n1", Value(model.Number("\n1")))
	assert.Equal(t, map[string]interface{}{"secretCode": Placeholder}, Value(model.Object{{Name: "secretCode", Value: model.Int(7)}}))
}

func TestVariables_NumberLiterals(t *testing.T) {
	type testCase struct {
		name     string
		number   model.Number
		expected string
	}
	testCases := []testCase{
		{name: "integer", number: model.Number("1"), expected: `{"n":1,"user":"bob"}`},
		{name: "trailing space", number: model.Number("1 "), expected: `{"n":"1 ","user":"bob"}`},
		{name: "trailing newline", number: model.Number("1\n"), expected: `{"n":"1\n","user":"bob"}`},
		{name: "leading tab", number: model.Number("\t2"), expected: `{"n":"\t2","user":"bob"}`},
		{name: "leading zero", number: model.Number("01"), expected: `{"n":"01","user":"bob"}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			actual := Variables(model.Variables{
				{Name: "n", Value: tc.number},
				{Name: "user", Value: model.String("bob")},
			})
			assert.Equal(t, tc.expected, actual)
		})
	}
}

func TestVariables_InvalidUTF8(t *testing.T) {
	actual := Variables(model.Variables{{Name: "s", Value: model.String("a\xffb")}})
	var decoded map[string]string
	require.NoError(t, json.Unmarshal([]byte(actual), &decoded))
	assert.Equal(t, "a\uFFFDb", decoded["s"])
}

func TestVariables_SerializationFailure(t *testing.T) {
	type testCase struct {
		name    string
		marshal func(interface{}) ([]byte, error)
	}
	testCases := []testCase{
		{name: "encoder error", marshal: func(interface{}) ([]byte, error) { return nil, errors.New("unsupported value") }},
		{name: "encoder panic", marshal: func(interface{}) ([]byte, error) { panic("corrupted state") }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			original := marshal
			defer func() { marshal = original }()
			marshal = tc.marshal
			assert.Equal(t, SerializationFailure, Variables(model.Variables{{Name: "user", Value: model.String("bob")}}))
		})
	}
}
