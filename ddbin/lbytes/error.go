package lbytes

import (
	"fmt"
)

type (
	// ErrOutOfRange is returned when a read would move the cursor past the end of the buffer.
	ErrOutOfRange struct {
		Position  int64
		Wanted    int
		Remaining int
	}
)

func (r ErrOutOfRange) Error() string {
	return fmt.Sprintf(
		"out of range: wanted %d bytes at position %d; %d bytes remaining",
		r.Wanted, r.Position, r.Remaining,
	)
}
