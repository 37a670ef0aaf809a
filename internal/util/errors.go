package util

import (
	"errors"
	"fmt"
)

var (
	ErrTestNotFound    = errors.New("test not found")
	ErrAttemptNotFound = errors.New("attempt not found")
	ErrInvalidArchive  = errors.New("invalid backup archive")
)

// ExtractionError marks model output that could not be turned into a valid
// question: unparsable text, missing fields, too few options, an out-of-range
// correct index. Always recoverable by re-prompting.
type ExtractionError struct {
	Reason string
}

func (e *ExtractionError) Error() string {
	return "extraction failed: " + e.Reason
}

func NewExtractionError(format string, args ...interface{}) *ExtractionError {
	return &ExtractionError{Reason: fmt.Sprintf(format, args...)}
}

// CapabilityError marks a transport-level or non-success failure of the
// generative model service. Recoverable by retrying at a higher layer,
// never silently swallowed except in the refinement second pass.
type CapabilityError struct {
	Err error
}

func (e *CapabilityError) Error() string {
	return "model capability unavailable: " + e.Err.Error()
}

func (e *CapabilityError) Unwrap() error {
	return e.Err
}

// ValidationError marks caller-supplied structured input that fails a field
// constraint. Field names the offending field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func NewValidationError(field, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

func IsExtractionError(err error) bool {
	var ee *ExtractionError
	return errors.As(err, &ee)
}

func IsCapabilityError(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}

func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
