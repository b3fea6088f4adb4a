package api

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Response is a fully buffered backend response.
type Response struct {
	StatusCode int
	Body       []byte
}

// OK reports whether the status is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// JSON decodes the body into v.
func (r *Response) JSON(v any) error {
	if err := json.Unmarshal(r.Body, v); err != nil {
		return &ParseError{StatusCode: r.StatusCode, Err: err}
	}
	return nil
}

// ErrorMessage returns the "error" field of a JSON body, or fallback when the
// body is not JSON or carries no usable error.
func (r *Response) ErrorMessage(fallback string) string {
	var body struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(r.Body, &body); err != nil {
		return fallback
	}
	switch v := body.Error.(type) {
	case string:
		if strings.TrimSpace(v) != "" {
			return v
		}
	case nil:
	default:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fallback
}

// PrettyJSON returns the body indented for display. Non-JSON bodies are
// returned unchanged.
func (r *Response) PrettyJSON() string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, r.Body, "", "  "); err != nil {
		return string(r.Body)
	}
	return buf.String()
}
