package dataset

import "fmt"

// MissingColumnError is returned when the CSV header lacks a required column.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header", e.Column)
}

// ValueError is returned when a numeric cell cannot be parsed.
// Line is the 1-based line number in the file, the header being line 1.
type ValueError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("line %d: column %s: invalid number %q", e.Line, e.Column, e.Value)
}

func (e *ValueError) Unwrap() error {
	return e.Err
}
