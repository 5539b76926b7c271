package dataset

import "fmt"

// MissingColumnError reports a required column absent from the input header.
type MissingColumnError struct {
	Path   string
	Column string
}

func (e *MissingColumnError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("missing required column %q", e.Column)
	}
	return fmt.Sprintf("%s: missing required column %q", e.Path, e.Column)
}

// DuplicateColumnError reports a required column that appears more than once in the header.
type DuplicateColumnError struct {
	Path   string
	Column string
	Count  int
}

func (e *DuplicateColumnError) Error() string {
	msg := fmt.Sprintf("column %q appears %d times", e.Column, e.Count)
	if e.Path == "" {
		return msg
	}
	return e.Path + ": " + msg
}
