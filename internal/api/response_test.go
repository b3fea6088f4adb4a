package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseOK(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{200, true},
		{204, true},
		{299, true},
		{301, false},
		{404, false},
		{500, false},
	}
	for _, tt := range tests {
		r := &Response{StatusCode: tt.status}
		assert.Equal(t, tt.want, r.OK(), "status %d", tt.status)
	}
}

func TestResponseJSONParseError(t *testing.T) {
	r := &Response{StatusCode: 200, Body: []byte("<html>")}
	var v map[string]any
	err := r.JSON(&v)

	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
	assert.Equal(t, 200, pe.StatusCode)
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"error field", `{"error":"quota exceeded"}`, "quota exceeded"},
		{"no error field", `{"message":"nope"}`, "fallback"},
		{"empty error", `{"error":""}`, "fallback"},
		{"not json", `Internal Server Error`, "fallback"},
		{"non-string error", `{"error":42}`, "42"},
		{"object error", `{"error":{"code":"E1","detail":"bad"}}`, `{"code":"E1","detail":"bad"}`},
		{"array error", `{"error":["a","b"]}`, `["a","b"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Response{StatusCode: 500, Body: []byte(tt.body)}
			assert.Equal(t, tt.want, r.ErrorMessage("fallback"))
		})
	}
}

func TestPrettyJSON(t *testing.T) {
	r := &Response{Body: []byte(`{"a":1}`)}
	assert.Equal(t, "{\n  \"a\": 1\n}", r.PrettyJSON())

	r = &Response{Body: []byte(`plain`)}
	assert.Equal(t, "plain", r.PrettyJSON())
}
