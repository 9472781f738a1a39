package store

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownColumn is matched by every *KeyError.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrEmptySource is returned when the source has no header record.
	ErrEmptySource = errors.New("source has no header")
	// ErrDuplicateColumn is returned when the header names a column twice.
	ErrDuplicateColumn = errors.New("duplicate column in header")
)

// LoadError reports a dataset that could not be opened or parsed. The store
// stays unloaded when it is returned.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load job data from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// KeyError reports a query against a column missing from the header.
type KeyError struct {
	Column string
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("unknown column %q", e.Column)
}

func (e *KeyError) Is(target error) bool {
	return target == ErrUnknownColumn
}
