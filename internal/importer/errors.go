package importer

import (
	"fmt"
	"strings"
)

// The import pipeline distinguishes four failure classes. All of them are
// terminal for the invocation that hit them; per-record problems (missing or
// duplicate IDs) are counted as skips instead and never surface as errors.

// ParseError indicates the input text is not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError indicates structurally unusable input: not an array, an
// empty array, a non-object element, no discoverable fields, or a dataset
// identifier containing whitespace.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// FieldNotFoundError indicates an explicit ID or Name override named a field
// that was not discovered in the input.
type FieldNotFoundError struct {
	Role      string
	Name      string
	Available []string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("%s field %q not found; available fields: %s",
		strings.ToLower(e.Role), e.Name, strings.Join(e.Available, ", "))
}

// ResolutionError indicates no override, hint, or interactive choice produced
// a usable ID or Name field.
type ResolutionError struct {
	Role string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("no %s field specified and none could be auto-detected",
		strings.ToLower(e.Role))
}
