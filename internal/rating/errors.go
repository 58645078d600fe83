package rating

import (
	"errors"
	"fmt"
)

var (
	// ErrNoDigits marks a row with no numeric token to extract.
	ErrNoDigits = errors.New("no numeric token")
	// ErrOutOfRange marks a rating outside the configured scale.
	ErrOutOfRange = errors.New("rating out of range")
)

// NotFoundError reports an absent data file.
type NotFoundError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("data file %s not found", e.Path)
}

// Unwrap returns the underlying error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError reports a row that could not be turned into a numeric rating.
type ParseError struct {
	Line  int    `json:"line"`
	Input string `json:"input"`
	Err   error  `json:"-"`
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: cannot parse rating %q: %v", e.Line, e.Input, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
