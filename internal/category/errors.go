package category

import "fmt"

// TableError marks a labels file that could not be loaded or does not cover
// the configured scale. It wraps every violation found.
type TableError struct {
	File string
	Err  error
}

// Error implements the error interface.
func (e *TableError) Error() string {
	return fmt.Sprintf("category table %s: %v", e.File, e.Err)
}

// Unwrap returns the underlying error.
func (e *TableError) Unwrap() error {
	return e.Err
}

// UnmatchedError reports a rating value that fell through the table. A
// validated table covers its whole scale, so this only surfaces when a value
// outside the scale reaches categorization.
type UnmatchedError struct {
	Value float64
}

// Error implements the error interface.
func (e *UnmatchedError) Error() string {
	return fmt.Sprintf("value %v matched no category", e.Value)
}
