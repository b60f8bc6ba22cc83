package hcprofile

import (
	"encoding/json"
	"strings"
)

// ParseError reports a language model response that could not be decoded
// into a Profile. Raw holds the unmodified response for inspection.
type ParseError struct {
	Raw string
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parsing error: " + e.Err.Error()
}

// Unwrap returns the underlying decode error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

const codeFence = "```"

// StripCodeFence removes a Markdown code fence wrapped around s, such as
// "```json\n{...}\n```". The language tag and the closing fence are optional.
// Input without an opening fence is returned trimmed.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, codeFence) {
		return s
	}

	body := strings.TrimPrefix(s, codeFence)
	if nl := strings.IndexByte(body, '\n'); nl >= 0 && !strings.ContainsAny(body[:nl], "{[\"") {
		body = body[nl+1:]
	} else {
		body = strings.TrimPrefix(body, "json")
	}

	body = strings.TrimSpace(body)
	body = strings.TrimSuffix(body, codeFence)
	return strings.TrimSpace(body)
}

// ParseResponse decodes a language model response into a Profile.
// Failures are returned as *ParseError.
func ParseResponse(raw string) (*Profile, error) {
	var p Profile
	if err := json.Unmarshal([]byte(StripCodeFence(raw)), &p); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}
	return &p, nil
}
