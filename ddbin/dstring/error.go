package dstring

import (
	"fmt"
)

func (r ErrStringResolution) Error() string {
	return fmt.Sprintf(
		"cannot resolve string at offset %d of a %d bytes heap: %s",
		r.Offset, r.HeapLength, r.Reason,
	)
}
