package dobject

import (
	"fmt"

	"ddbin-editor/ddbin/dschema"
)

type (
	// ErrValidation is returned when a caller supplied value does not fit a field or a name
	// does not fit a list.
	ErrValidation struct {
		Target  string
		VarType dschema.VarType
		Input   string
		Reason  string
	}
)

func (r ErrValidation) Error() string {
	return fmt.Sprintf(`invalid value "%s" for %s: %s`, r.Input, r.Target, r.Reason)
}
