package store

import "fmt"

// ReadError reports an I/O failure other than a missing store.
type ReadError struct {
	Path string
	Err  error
}

func (e ReadError) Error() string {
	return fmt.Sprintf("read store %s: %v", e.Path, e.Err)
}

func (e ReadError) Unwrap() error { return e.Err }

// ParseError reports malformed store contents.
type ParseError struct {
	Path string
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("parse store %s: %v", e.Path, e.Err)
}

func (e ParseError) Unwrap() error { return e.Err }

// WriteError reports a failed write. The previous store contents are left in place.
type WriteError struct {
	Path string
	Err  error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("write store %s: %v", e.Path, e.Err)
}

func (e WriteError) Unwrap() error { return e.Err }
