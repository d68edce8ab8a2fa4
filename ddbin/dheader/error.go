package dheader

import (
	"fmt"
)

type (
	ErrMalformedHeader struct {
		Reason string
	}
)

func (r ErrMalformedHeader) Error() string {
	return fmt.Sprintf("malformed header: %s", r.Reason)
}
