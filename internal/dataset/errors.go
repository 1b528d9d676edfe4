package dataset

import "fmt"

// NotFoundError reports a quantum-state key with no row in the Levels table.
type NotFoundError struct {
	Key Key
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("level not found: %s", e.Key)
}

// AmbiguousError reports a key matched by more than one Levels row.
type AmbiguousError struct {
	Key   Key
	Count int
}

func (e AmbiguousError) Error() string {
	return fmt.Sprintf("level %s is ambiguous: %d rows match", e.Key, e.Count)
}

// ParseError points at a malformed line in a data file.
type ParseError struct {
	File string
	Line int
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }
