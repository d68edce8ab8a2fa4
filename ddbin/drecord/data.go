// Package drecord decodes fixed-size records against their type definition and lays them out again.
package drecord

import (
	"fmt"
)

type (
	// ErrTruncatedData is returned when the data blob and the records declared in the lists
	// grammar do not add up.
	ErrTruncatedData struct {
		Expected int
		Actual   int
		Reason   string
	}
	// ErrUnresolvedString is returned when a heap stored field has no value to write.
	ErrUnresolvedString struct {
		ListName   string
		ObjectName string
		FieldName  string
	}
	// ErrMissingField is returned when an object lacks a field its type defines.
	ErrMissingField struct {
		ListName   string
		ObjectName string
		FieldName  string
	}
	// FieldWarning wraps a non-fatal decode problem with the identity of the affected field.
	FieldWarning struct {
		ListName   string
		ObjectName string
		FieldName  string
		Err        error
	}
)

func (r ErrTruncatedData) Error() string {
	return fmt.Sprintf("truncated data: expected %d bytes, got %d: %s", r.Expected, r.Actual, r.Reason)
}

func (r ErrUnresolvedString) Error() string {
	return fmt.Sprintf(
		`field "%s" of object "%s" in list "%s" has no string value to write`,
		r.FieldName, r.ObjectName, r.ListName,
	)
}

func (r ErrMissingField) Error() string {
	return fmt.Sprintf(
		`object "%s" in list "%s" has no field "%s"`,
		r.ObjectName, r.ListName, r.FieldName,
	)
}

func (r FieldWarning) Error() string {
	return fmt.Sprintf(
		`list "%s", object "%s", field "%s": %v`,
		r.ListName, r.ObjectName, r.FieldName, r.Err,
	)
}

func (r FieldWarning) Unwrap() error {
	return r.Err
}
