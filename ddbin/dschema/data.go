// Package dschema holds the type, field and list definitions of a DDBIN container and the
// three "|"-terminated grammars they are stored in.
package dschema

import (
	"fmt"
	"sort"
	"strings"

	"ddbin-editor/ds"
)

type (
	// ReadType tells where a field's value is stored.
	ReadType int
	// VarType is the semantic type of a field's value.
	VarType int

	FieldDefinition struct {
		Name     string   `json:"name"`
		Offset   int      `json:"offset"`
		ReadType ReadType `json:"read_type"`
		Size     int      `json:"size"`
		VarType  VarType  `json:"var_type"`
	}
	TypeDefinition struct {
		Name   string                                     `json:"name"`
		Size   int                                        `json:"size"`
		Fields *ds.LinkedHashMap[string, *FieldDefinition] `json:"fields"`
	}
	// Schema keeps type definitions in declaration order, keyed case-insensitively.
	Schema struct {
		Types *ds.LinkedHashMap[string, *TypeDefinition] `json:"types"`
	}
)

const (
	// ReadTypeBin values are stored inline in the record.
	ReadTypeBin ReadType = iota
	// ReadTypeString values are stored in the string heap; the record holds a 4-byte heap offset.
	ReadTypeString
)

const (
	VarTypeByte VarType = iota
	VarTypeBool
	VarTypeInteger
	VarTypeColor
	VarTypeFloat
	VarTypeString
	VarTypeReference
)

const (
	ReadTypeSymbolBin    = "#"
	ReadTypeSymbolString = "*"
)

var (
	AllVarTypes = []VarType{
		VarTypeByte,
		VarTypeBool,
		VarTypeInteger,
		VarTypeColor,
		VarTypeFloat,
		VarTypeString,
		VarTypeReference,
	}
	varTypeNames = map[VarType]string{
		VarTypeByte:      "Byte",
		VarTypeBool:      "Bool",
		VarTypeInteger:   "Integer",
		VarTypeColor:     "Color",
		VarTypeFloat:     "Float",
		VarTypeString:    "String",
		VarTypeReference: "Reference",
	}
	// varTypeCodes are the 3-letter codes written to the info block.
	varTypeCodes = map[VarType]string{
		VarTypeByte:      "byt",
		VarTypeBool:      "boo",
		VarTypeInteger:   "int",
		VarTypeColor:     "col",
		VarTypeFloat:     "flo",
		VarTypeString:    "str",
		VarTypeReference: "ref",
	}
)

func (r ReadType) String() string {
	switch r {
	case ReadTypeBin:
		return "Bin"
	case ReadTypeString:
		return "String"
	}
	return fmt.Sprintf("ReadType(%d)", int(r))
}

func (r ReadType) Symbol() (string, error) {
	switch r {
	case ReadTypeBin:
		return ReadTypeSymbolBin, nil
	case ReadTypeString:
		return ReadTypeSymbolString, nil
	}
	return "", ds.ErrUnreachableCode{Caller: "ReadType.Symbol", Value: r}
}

func ParseReadTypeSymbol(symbol string) (ReadType, error) {
	switch symbol {
	case ReadTypeSymbolBin:
		return ReadTypeBin, nil
	case ReadTypeSymbolString:
		return ReadTypeString, nil
	}
	return 0, ErrSchemaCorrupt{
		Segment: SegmentFields,
		Reason:  fmt.Sprintf(`unknown read type symbol "%s"`, symbol),
	}
}

func (v VarType) String() string {
	name, ok := varTypeNames[v]
	if !ok {
		return fmt.Sprintf("VarType(%d)", int(v))
	}
	return name
}

func (v VarType) Code() string {
	return varTypeCodes[v]
}

func (v VarType) IsValid() bool {
	_, ok := varTypeNames[v]
	return ok
}

// Width is the number of record bytes a value of this type occupies.
// String and Reference values occupy a 4-byte heap offset.
func (v VarType) Width() int {
	switch v {
	case VarTypeByte, VarTypeBool:
		return 1
	default:
		return 4
	}
}

// IsHeapStored reports whether values of this type live in the string heap.
func (v VarType) IsHeapStored() bool {
	return v == VarTypeString || v == VarTypeReference
}

// ParseVarTypeCode maps an info block code such as "flo" or "rgb" to its VarType.
func ParseVarTypeCode(code string) (VarType, bool) {
	switch strings.ToLower(code) {
	case "byt":
		return VarTypeByte, true
	case "boo":
		return VarTypeBool, true
	case "int":
		return VarTypeInteger, true
	case "col", "rgb":
		return VarTypeColor, true
	case "flo":
		return VarTypeFloat, true
	case "str":
		return VarTypeString, true
	case "ref":
		return VarTypeReference, true
	}
	return 0, false
}

func NewFieldDefinition(
	name string,
	offset int,
	readType ReadType,
	size int,
	varType VarType,
) (*FieldDefinition, error) {
	if !varType.IsValid() {
		return nil, ds.ErrUnreachableCode{Caller: "NewFieldDefinition", Value: varType}
	}
	if readType != ReadTypeBin && readType != ReadTypeString {
		return nil, ds.ErrUnreachableCode{Caller: "NewFieldDefinition", Value: readType}
	}
	if (readType == ReadTypeString) != varType.IsHeapStored() {
		return nil, ErrTypeMismatch{
			FieldName: name,
			ReadType:  readType,
			VarType:   varType,
		}
	}
	if offset < 0 || size < 0 {
		return nil, ErrSchemaCorrupt{
			Segment: SegmentFields,
			Reason:  fmt.Sprintf(`field "%s" has negative offset %d or size %d`, name, offset, size),
		}
	}
	return &FieldDefinition{
		Name:     name,
		Offset:   offset,
		ReadType: readType,
		Size:     size,
		VarType:  varType,
	}, nil
}

// End is the first record byte after this field's value.
func (f FieldDefinition) End() int {
	return f.Offset + f.VarType.Width()
}

func (f FieldDefinition) String() string {
	return fmt.Sprintf("%s@%d#%d,%s", f.Name, f.Offset, f.Size, f.VarType)
}

func NewTypeDefinition(name string, size int) *TypeDefinition {
	return &TypeDefinition{
		Name:   name,
		Size:   size,
		Fields: ds.NewLinkedHashMap[string, *FieldDefinition](),
	}
}

func (t *TypeDefinition) AddField(field *FieldDefinition) {
	t.Fields.Put(field.Name, field)
}

func (t *TypeDefinition) Field(name string) (*FieldDefinition, bool) {
	return t.Fields.Get(name)
}

// SortedFields lists the fields by ascending offset, which is the order records are decoded
// and encoded in. Fields sharing an offset keep their declaration order.
func (t *TypeDefinition) SortedFields() []*FieldDefinition {
	fields := t.Fields.Values()
	sort.SliceStable(
		fields,
		func(i, j int) bool {
			return fields[i].Offset < fields[j].Offset
		},
	)
	return fields
}

// Validate checks that every field fits inside a record of the declared size.
func (t *TypeDefinition) Validate() error {
	if t.Size < 0 {
		return ErrSchemaCorrupt{
			Segment: SegmentTypes,
			Reason:  fmt.Sprintf(`type "%s" has negative size %d`, t.Name, t.Size),
		}
	}
	for _, field := range t.Fields.Values() {
		if field.End() > t.Size {
			return ErrSchemaCorrupt{
				Segment: SegmentFields,
				Reason: fmt.Sprintf(
					`field "%s.%s" ends at byte %d but the type is only %d bytes long`,
					t.Name, field.Name, field.End(), t.Size,
				),
			}
		}
	}
	return nil
}

func (t TypeDefinition) String() string {
	return fmt.Sprintf("%s%%%d", t.Name, t.Size)
}

// TypeKey normalises a type name for lookups.
func TypeKey(name string) string {
	return strings.ToLower(name)
}

// FieldKey normalises a "typeName.fieldName" pair for var type lookups.
func FieldKey(typeName string, fieldName string) string {
	return strings.ToLower(typeName + "." + fieldName)
}

func NewSchema() *Schema {
	return &Schema{
		Types: ds.NewLinkedHashMap[string, *TypeDefinition](),
	}
}

func (s *Schema) AddType(typeDefinition *TypeDefinition) {
	s.Types.Put(TypeKey(typeDefinition.Name), typeDefinition)
}

func (s *Schema) Type(name string) (*TypeDefinition, bool) {
	return s.Types.Get(TypeKey(name))
}

func (s *Schema) TypeList() []*TypeDefinition {
	return s.Types.Values()
}
