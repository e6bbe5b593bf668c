// Package errors defines stable error codes for the CLI-facing failure
// modes. The scoring core itself never produces domain errors: it is total
// over best-effort inputs, so everything here originates at the I/O edges.
package errors

import (
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes.
type ErrorCode string

const (
	// FactsMissing indicates the facts file was not found.
	FactsMissing ErrorCode = "FACTS_MISSING"
	// FactsInvalid indicates the facts file could not be parsed.
	FactsInvalid ErrorCode = "FACTS_INVALID"
	// ConfigInvalid indicates the configuration failed validation.
	ConfigInvalid ErrorCode = "CONFIG_INVALID"
	// StoreUnavailable indicates the calibration store could not be opened.
	StoreUnavailable ErrorCode = "STORE_UNAVAILABLE"
	// FormatInvalid indicates an unsupported output format was requested.
	FormatInvalid ErrorCode = "FORMAT_INVALID"
	// InternalError indicates an unexpected error.
	InternalError ErrorCode = "INTERNAL_ERROR"
)

// FixAction represents a suggested fix for an error.
type FixAction struct {
	Command     string `json:"command,omitempty"`
	Description string `json:"description,omitempty"`
}

// AuditError carries a stable code, a message, and suggested fixes.
type AuditError struct {
	Code           ErrorCode   `json:"code"`
	Message        string      `json:"message"`
	SuggestedFixes []FixAction `json:"suggestedFixes,omitempty"`
	cause          error
}

// New creates an AuditError with the fixes registered for its code.
func New(code ErrorCode, message string, cause error) *AuditError {
	return &AuditError{
		Code:           code,
		Message:        message,
		cause:          cause,
		SuggestedFixes: suggestedFixes[code],
	}
}

// Error implements the error interface.
func (e *AuditError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AuditError) Unwrap() error {
	return e.cause
}

var suggestedFixes = map[ErrorCode][]FixAction{
	FactsMissing: {
		{
			Command:     "repoaudit analyze --facts <path>",
			Description: "Point --facts at the JSON snapshot produced by the extractors",
		},
	},
	ConfigInvalid: {
		{
			Command:     "repoaudit config init",
			Description: "Regenerate a valid default config file and re-apply your overrides",
		},
	},
	FormatInvalid: {
		{
			Description: "Use --format json or --format human",
		},
	},
}
