package config

import "fmt"

// Error marks any configuration problem: an unreadable file, malformed or
// unknown keys, or invalid option values.
type Error struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("configuration %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}
