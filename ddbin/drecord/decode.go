package drecord

import (
	"fmt"

	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ddbin/dstring"
	"ddbin-editor/ddbin/lbytes"
	"ddbin-editor/ds"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
)

func DecodeValue(reader *lbytes.Reader, varType dschema.VarType, heap []byte, enc encoding.Encoding) (dobject.Value, error) {
	switch varType {
	case dschema.VarTypeByte:
		value, err := reader.ReadUInt8()
		return dobject.ByteValue(value), err
	case dschema.VarTypeBool:
		value, err := reader.ReadUInt8()
		return dobject.BoolValue(value != 0), err
	case dschema.VarTypeInteger:
		value, err := reader.ReadInt()
		return dobject.IntegerValue(value), err
	case dschema.VarTypeColor:
		value, err := reader.ReadUInt()
		return dobject.ColorValue(value), err
	case dschema.VarTypeFloat:
		value, err := reader.ReadFloat()
		return dobject.FloatValue(value), err
	case dschema.VarTypeString, dschema.VarTypeReference:
		offset, err := reader.ReadUInt()
		if err != nil {
			return nil, err
		}
		str, err := dstring.Resolve(heap, int64(offset), enc)
		if err != nil {
			return nil, err
		}
		return dobject.NewStringValue(varType, str)
	}
	return nil, ds.ErrUnreachableCode{Caller: "DecodeValue", Value: varType}
}

// DecodeRecord materialises one object from its record bytes. String resolution failures do not
// stop decoding: the field is left without a value and the failure is returned as a warning.
func DecodeRecord(
	listName string,
	objectName string,
	typeDefinition *dschema.TypeDefinition,
	record []byte,
	heap []byte,
	enc encoding.Encoding,
) (*dobject.DataObject, []error, error) {
	if len(record) != typeDefinition.Size {
		return nil, nil, ErrTruncatedData{
			Expected: typeDefinition.Size,
			Actual:   len(record),
			Reason:   fmt.Sprintf(`record of object "%s" in list "%s"`, objectName, listName),
		}
	}

	object := &dobject.DataObject{
		Name:   objectName,
		Type:   typeDefinition,
		Fields: ds.NewLinkedHashMap[string, *dobject.DataField](),
		Raw:    record,
	}
	warnings := make([]error, 0)
	reader := lbytes.NewBytesReader(record)
	for _, definition := range typeDefinition.SortedFields() {
		field := &dobject.DataField{
			Name:    definition.Name,
			VarType: definition.VarType,
		}
		if err := reader.SeekTo(int64(definition.Offset)); err != nil {
			err := errors.Wrapf(err, `DecodeRecord error seeking field "%s" of object "%s"`, definition.Name, objectName)
			return nil, nil, err
		}
		value, err := DecodeValue(reader, definition.VarType, heap, enc)
		var errStringResolution dstring.ErrStringResolution
		switch {
		case err == nil:
			field.Value = value
		case errors.As(err, &errStringResolution):
			warnings = append(
				warnings,
				FieldWarning{
					ListName:   listName,
					ObjectName: objectName,
					FieldName:  definition.Name,
					Err:        err,
				},
			)
		default:
			err := errors.Wrapf(err, `DecodeRecord error reading field "%s" of object "%s"`, definition.Name, objectName)
			return nil, nil, err
		}
		object.Fields.Put(field.Name, field)
	}

	return object, warnings, nil
}

func readRecord(reader *lbytes.Reader, offset int, size int) ([]byte, error) {
	if err := reader.SeekTo(int64(offset)); err != nil {
		return nil, err
	}
	return reader.ReadBytes(size)
}

// DecodeList reads every member of a list out of the data blob and returns the list together
// with the number of record bytes consumed.
func DecodeList(
	definition dschema.ListDefinition,
	data []byte,
	heap []byte,
	enc encoding.Encoding,
) (*dobject.ObjectList, int, []error, error) {
	list := dobject.NewObjectList(definition.Name, definition.Type)
	size := definition.Type.Size
	consumed := 0
	warnings := make([]error, 0)

	reader := lbytes.NewBytesReader(data)
	for _, member := range definition.Members {
		record, err := readRecord(reader, member.Offset, size)
		if err != nil {
			return nil, 0, nil, ErrTruncatedData{
				Expected: member.Offset + size,
				Actual:   len(data),
				Reason: fmt.Sprintf(
					`object "%s" of list "%s" lies outside the data blob: %v`,
					member.Name, definition.Name, err,
				),
			}
		}
		object, objectWarnings, err := DecodeRecord(definition.Name, member.Name, definition.Type, record, heap, enc)
		if err != nil {
			err := errors.Wrap(err, "drecord.DecodeList error")
			return nil, 0, nil, err
		}
		list.Objects = append(list.Objects, object)
		warnings = append(warnings, objectWarnings...)
		consumed += len(record)
	}

	return list, consumed, warnings, nil
}
