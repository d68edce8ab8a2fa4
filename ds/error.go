package ds

import (
	"fmt"
)

type (
	// ErrUnreachableCode is returned from the default branch of a switch that
	// is meant to cover every variant of a closed set.
	ErrUnreachableCode struct {
		Caller string
		Value  any
	}
)

func (r ErrUnreachableCode) Error() string {
	if r.Value == nil {
		return fmt.Sprintf("%s: unreachable code", r.Caller)
	}
	return fmt.Sprintf(`%s: unreachable code with value "%v" of type %T`, r.Caller, r.Value, r.Value)
}
