package dschema

import (
	"fmt"
)

type (
	Segment string

	// ErrSchemaCorrupt is returned when a grammar segment cannot be trusted.
	ErrSchemaCorrupt struct {
		Segment Segment
		Reason  string
	}
	// ErrUnknownType is returned when a field or list refers to a type that was never declared.
	ErrUnknownType struct {
		TypeName string
		Context  string
	}
	// ErrUnknownVarType is returned when the info block has no declaration for a field.
	ErrUnknownVarType struct {
		FieldKey string
	}
	// ErrTypeMismatch is returned when a read type cannot hold a var type.
	ErrTypeMismatch struct {
		FieldName string
		ReadType  ReadType
		VarType   VarType
	}
)

const (
	SegmentTypes  = Segment("types")
	SegmentFields = Segment("fields")
	SegmentLists  = Segment("lists")
	SegmentInfo   = Segment("info")
)

func (r ErrSchemaCorrupt) Error() string {
	return fmt.Sprintf("schema corrupt in %s segment: %s", r.Segment, r.Reason)
}

func (r ErrUnknownType) Error() string {
	return fmt.Sprintf(`unknown type "%s" referenced by %s`, r.TypeName, r.Context)
}

func (r ErrUnknownVarType) Error() string {
	return fmt.Sprintf(`no var type declared for "%s"`, r.FieldKey)
}

func (r ErrTypeMismatch) Error() string {
	return fmt.Sprintf(
		`type mismatch for field "%s": read type %s and var type %s are not compatible`,
		r.FieldName, r.ReadType, r.VarType,
	)
}
