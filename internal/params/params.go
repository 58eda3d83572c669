// Package params extracts display content from a URL query string.
//
// Resolution walks a fixed, prioritized set of parameter names and returns
// the percent-decoded value of the first one that carries a non-empty raw
// value. It is a pure function of its input.
package params

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ErrInvalidUTF8 means the escapes decoded to bytes that are not UTF-8.
var ErrInvalidUTF8 = errors.New("decoded value is not valid UTF-8")

// parameterSet lists the recognized keys in priority order.
var parameterSet = [...]string{"content", "text", "data", "msg", "message"}

// Names returns the recognized parameter names in priority order.
func Names() []string {
	names := make([]string, len(parameterSet))
	copy(names, parameterSet[:])
	return names
}

// Result is the outcome of a resolution.
type Result struct {
	// Found reports whether any recognized parameter carried a value.
	Found bool
	// Param is the name that supplied Value.
	Param string
	// Value is the decoded value, untrimmed.
	Value string
}

// DecodeError reports a malformed percent-encoding in the winning value.
type DecodeError struct {
	Param string
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding parameter %q: %v", e.Param, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Resolve selects and decodes the display value from a raw query string.
// A leading "?" is accepted. When no recognized parameter has a non-empty
// raw value, Resolve returns a zero Result and a nil error.
//
// Only the winning value is decoded. If it is malformed, or its escapes
// do not form valid UTF-8, resolution stops with a *DecodeError;
// lower-priority names are not consulted.
func Resolve(query string) (Result, error) {
	raw := rawValues(strings.TrimPrefix(query, "?"))

	for _, name := range parameterSet {
		value, ok := raw[name]
		if !ok || value == "" {
			continue
		}

		decoded, err := url.QueryUnescape(value)
		if err != nil {
			return Result{}, &DecodeError{Param: name, Raw: value, Err: err}
		}
		if !utf8.ValidString(decoded) {
			return Result{}, &DecodeError{Param: name, Raw: value, Err: ErrInvalidUTF8}
		}

		return Result{Found: true, Param: name, Value: decoded}, nil
	}

	return Result{}, nil
}

// QueryFromURL returns the raw query portion of a URL. Bare query strings
// ("?a=b" or "a=b") are returned without the leading "?". The fragment is
// never part of the result.
func QueryFromURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}

	if strings.HasPrefix(raw, "?") {
		q, _, _ := strings.Cut(raw[1:], "#")
		return q, nil
	}

	if !strings.Contains(raw, "://") && !strings.HasPrefix(raw, "/") {
		if strings.Contains(raw, "?") {
			_, after, _ := strings.Cut(raw, "?")
			q, _, _ := strings.Cut(after, "#")
			return q, nil
		}
		q, _, _ := strings.Cut(raw, "#")
		return q, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("parsing url: %w", err)
	}
	return u.RawQuery, nil
}

// rawValues maps each key to the raw value of its first occurrence.
func rawValues(query string) map[string]string {
	values := make(map[string]string)

	for query != "" {
		var pair string
		pair, query, _ = strings.Cut(query, "&")
		if pair == "" {
			continue
		}

		key, value, _ := strings.Cut(pair, "=")
		if k, err := url.QueryUnescape(key); err == nil {
			key = k
		}

		if _, seen := values[key]; !seen {
			values[key] = value
		}
	}

	return values
}
