package drecord

import (
	"fmt"

	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ddbin/dstring"
	"ddbin-editor/ddbin/lbytes"
	"ddbin-editor/ds"
	"github.com/pkg/errors"
)

// CollectStrings walks every heap stored field of every object, lists and objects in order and
// fields by offset, and adds its text to the heap builder.
func CollectStrings(lists []*dobject.ObjectList, heap *dstring.Builder) error {
	for _, list := range lists {
		for _, object := range list.Objects {
			for _, field := range object.FieldList() {
				if !field.VarType.IsHeapStored() {
					continue
				}
				str, ok := dobject.StringOf(field.Value)
				if !ok {
					return ErrUnresolvedString{
						ListName:   list.Name,
						ObjectName: object.Name,
						FieldName:  field.Name,
					}
				}
				if _, err := heap.Add(str); err != nil {
					err := errors.Wrapf(
						err, `CollectStrings error on field "%s" of object "%s" in list "%s"`,
						field.Name, object.Name, list.Name,
					)
					return err
				}
			}
		}
	}
	return nil
}

func EncodeValue(value dobject.Value, heap *dstring.Builder) ([]byte, error) {
	switch v := value.(type) {
	case dobject.ByteValue:
		return []byte{byte(v)}, nil
	case dobject.BoolValue:
		return lbytes.EncodeValueBool(bool(v)), nil
	case dobject.IntegerValue:
		return lbytes.EncodeValueInt(int32(v)), nil
	case dobject.ColorValue:
		return lbytes.EncodeValueUInt(uint32(v)), nil
	case dobject.FloatValue:
		return lbytes.EncodeValueFloat(float32(v)), nil
	case dobject.StringValue, dobject.ReferenceValue:
		str, _ := dobject.StringOf(v)
		offset, ok := heap.Offset(str)
		if !ok {
			return nil, fmt.Errorf(`string "%s" is missing from the heap`, str)
		}
		return lbytes.EncodeValueUInt(offset), nil
	}
	return nil, ds.ErrUnreachableCode{Caller: "EncodeValue", Value: value}
}

// EncodeRecord lays out an object as a record of its type's size. Heap stored fields must have
// been collected into heap beforehand.
func EncodeRecord(listName string, object *dobject.DataObject, heap *dstring.Builder) ([]byte, error) {
	typeDefinition := object.Type
	record := lbytes.CreateZeroBytes(typeDefinition.Size)
	if len(object.Raw) == typeDefinition.Size {
		copy(record, object.Raw)
	}

	for _, definition := range typeDefinition.SortedFields() {
		field, ok := object.Field(definition.Name)
		if !ok {
			return nil, ErrMissingField{
				ListName:   listName,
				ObjectName: object.Name,
				FieldName:  definition.Name,
			}
		}
		if field.Value == nil {
			return nil, ErrUnresolvedString{
				ListName:   listName,
				ObjectName: object.Name,
				FieldName:  definition.Name,
			}
		}
		if field.Value.VarType() != definition.VarType {
			return nil, dobject.ErrValidation{
				Target:  fmt.Sprintf(`field "%s" of object "%s" in list "%s"`, definition.Name, object.Name, listName),
				VarType: definition.VarType,
				Input:   dobject.FormatText(field.Value),
				Reason:  fmt.Sprintf("holds a %s value", field.Value.VarType()),
			}
		}
		if definition.End() > len(record) {
			return nil, dschema.ErrSchemaCorrupt{
				Segment: dschema.SegmentFields,
				Reason: fmt.Sprintf(
					`field "%s.%s" ends at byte %d but the type is only %d bytes long`,
					typeDefinition.Name, definition.Name, definition.End(), typeDefinition.Size,
				),
			}
		}

		bs, err := EncodeValue(field.Value, heap)
		if err != nil {
			err := errors.Wrapf(
				err, `EncodeRecord error on field "%s" of object "%s" in list "%s"`,
				definition.Name, object.Name, listName,
			)
			return nil, err
		}
		copy(record[definition.Offset:], bs)
	}

	return record, nil
}
