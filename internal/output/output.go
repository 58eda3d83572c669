// Package output formats resolved display state for the resolve command.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/f3rmion/paramclip/internal/state"
)

// Format represents the output format type.
type Format string

const (
	// FormatPlain prints the content alone.
	FormatPlain Format = "plain"
	// FormatJSON prints the display state as JSON.
	FormatJSON Format = "json"
)

// Formatter formats a display state.
type Formatter interface {
	FormatDisplay(d state.DisplayState) (string, error)
}

// GetFormatter returns the formatter for format.
func GetFormatter(format Format) (Formatter, error) {
	switch format {
	case FormatPlain:
		return PlainFormatter{}, nil
	case FormatJSON:
		return JSONFormatter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// PlainFormatter prints the content exactly as resolved.
type PlainFormatter struct{}

// FormatDisplay implements Formatter.
func (PlainFormatter) FormatDisplay(d state.DisplayState) (string, error) {
	return d.Content, nil
}

// JSONFormatter prints the display state with its character count.
type JSONFormatter struct{}

type displayJSON struct {
	state.DisplayState
	Characters int    `json:"characters"`
	Error      string `json:"error,omitempty"`
}

// FormatDisplay implements Formatter.
func (JSONFormatter) FormatDisplay(d state.DisplayState) (string, error) {
	out := displayJSON{DisplayState: d, Characters: d.CharCount()}
	if d.DecodeErr != nil {
		out.Error = d.DecodeErr.Error()
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Summary is a one-line description used on stderr by the copy command.
func Summary(d state.DisplayState) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(d.CharCount()))
	b.WriteString(" characters")
	if d.Param != "" {
		b.WriteString(" from ?")
		b.WriteString(d.Param)
	}
	return b.String()
}
