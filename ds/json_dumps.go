package ds

import (
	"encoding/json"
	"fmt"
)

// DumpJSON renders a value for error contexts. Values that can't be marshalled fall back to
// their Go syntax representation.
func DumpJSON[T any](t T) string {
	tBytes, err := json.Marshal(t)
	if err != nil {
		return fmt.Sprintf("%#v", t)
	}
	return string(tBytes)
}
