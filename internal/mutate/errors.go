package mutate

import (
	"errors"
	"fmt"
)

// ErrEmptyName is returned when a project name is blank after trimming.
var ErrEmptyName = errors.New("project name is required")

type IndexOutOfRangeError struct {
	Index int
	Len   int
}

func (e IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("task index out of range: %d (have %d)", e.Index, e.Len)
}

type NotFoundError struct {
	Kind string
	ID   int
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

func checkIndex(n, index int) error {
	if index < 0 || index >= n {
		return IndexOutOfRangeError{Index: index, Len: n}
	}
	return nil
}
