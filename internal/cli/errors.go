package cli

import "fmt"

type invalidIDError struct {
	arg string
}

func (e invalidIDError) Error() string {
	return fmt.Sprintf("invalid project id: %q (want a non-negative integer)", e.arg)
}
