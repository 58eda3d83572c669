// Package errors provides user-facing CLI errors for paramclip.
//
// CLIError carries a message, an actionable hint and the process exit code.
package errors

import (
	"errors"
	"fmt"
)

// Exit codes.
const (
	ExitSuccess   = 0
	ExitGeneral   = 1
	ExitConfig    = 4
	ExitDecode    = 5
	ExitClipboard = 6
	ExitNoContent = 7
	ExitUsage     = 64 // BSD convention
)

// CLIError represents a user-facing CLI error.
type CLIError struct {
	// Message is the primary error message shown to the user.
	Message string

	// Hint provides guidance on how to fix the error.
	Hint string

	// Cause is the underlying error, if any.
	Cause error

	// Code is the process exit code.
	Code int
}

// Error implements the error interface.
func (e *CLIError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}

	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *CLIError) Unwrap() error {
	return e.Cause
}

// WithHint adds a hint to the error.
func (e *CLIError) WithHint(hint string) *CLIError {
	e.Hint = hint
	return e
}

// As is a convenience function for errors.As with CLIError.
func As(err error, target **CLIError) bool {
	return errors.As(err, target)
}

// ExitCode returns the exit code carried by err, ExitGeneral for other
// errors and ExitSuccess for nil.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var cliErr *CLIError
	if As(err, &cliErr) {
		return cliErr.Code
	}

	return ExitGeneral
}

// NoContent reports that the URL carried nothing to copy.
func NoContent() *CLIError {
	return &CLIError{
		Message: "No content found in URL",
		Hint:    "Add a parameter such as ?content=your-text-here (also: text, data, msg, message)",
		Code:    ExitNoContent,
	}
}

// DecodeFailed reports malformed percent-encoding.
func DecodeFailed(cause error) *CLIError {
	return &CLIError{
		Message: "Parameter could not be decoded",
		Hint:    "Check the percent-encoding in the URL; a literal % must be written as %25",
		Cause:   cause,
		Code:    ExitDecode,
	}
}

// InvalidURL reports a URL that could not be parsed.
func InvalidURL(cause error) *CLIError {
	return &CLIError{
		Message: "Invalid URL",
		Hint:    "Quote the URL in your shell so '&' and '?' are passed through",
		Cause:   cause,
		Code:    ExitUsage,
	}
}

// ClipboardFailed reports a failed copy.
func ClipboardFailed(cause error) *CLIError {
	return &CLIError{
		Message: "Failed to copy to clipboard",
		Hint:    "Install xclip, xsel or wl-copy, or set clipboard.fallback to osc52",
		Cause:   cause,
		Code:    ExitClipboard,
	}
}

// ConfigFailed reports a configuration load or save failure.
func ConfigFailed(operation string, cause error) *CLIError {
	return &CLIError{
		Message: fmt.Sprintf("Failed to %s", operation),
		Hint:    "Check the config file syntax and permissions, or run 'paramclip init --force'",
		Cause:   cause,
		Code:    ExitConfig,
	}
}
