package drecord

import (
	"testing"

	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ddbin/dstring"
	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func createMixedType(t *testing.T) *dschema.TypeDefinition {
	typeDefinition := dschema.NewTypeDefinition("mixed", 24)
	for _, args := range []struct {
		name    string
		offset  int
		varType dschema.VarType
	}{
		{"count", 0, dschema.VarTypeByte},
		{"on", 1, dschema.VarTypeBool},
		{"speed", 4, dschema.VarTypeInteger},
		{"tint", 8, dschema.VarTypeColor},
		{"scale", 12, dschema.VarTypeFloat},
		{"label", 16, dschema.VarTypeString},
		{"target", 20, dschema.VarTypeReference},
	} {
		readType := dschema.ReadTypeBin
		if args.varType.IsHeapStored() {
			readType = dschema.ReadTypeString
		}
		field, err := dschema.NewFieldDefinition(args.name, args.offset, readType, args.varType.Width(), args.varType)
		require.NoError(t, err)
		typeDefinition.AddField(field)
	}
	require.NoError(t, typeDefinition.Validate())
	return typeDefinition
}

func createMixedRecord(labelOffset uint32, targetOffset uint32) []byte {
	writer := lbytes.NewBytesWriter()
	writer.WriteUInt8(200)
	writer.WriteUInt8(1)
	writer.WriteBytes([]byte{0xAA, 0xBB})
	writer.WriteInt(-5)
	writer.WriteUInt(0xFF102030)
	writer.WriteFloat(0.5)
	writer.WriteUInt(labelOffset)
	writer.WriteUInt(targetOffset)
	return writer.Bytes()
}

func TestDecodeRecord(t *testing.T) {
	typeDefinition := createMixedType(t)
	label, err := lbytes.EncodeText("검", korean.EUCKR)
	require.NoError(t, err)
	require.Len(t, label, 2)
	heap := append(label, []byte("\x00walk\x00")...)
	record := createMixedRecord(0, 3)

	object, warnings, err := DecodeRecord("mixes", "first", typeDefinition, record, heap, korean.EUCKR)
	require.NoError(t, err)
	assert.Empty(t, warnings)

	expected := map[string]dobject.Value{
		"count":  dobject.ByteValue(200),
		"on":     dobject.BoolValue(true),
		"speed":  dobject.IntegerValue(-5),
		"tint":   dobject.ColorValue(0xFF102030),
		"scale":  dobject.FloatValue(0.5),
		"label":  dobject.StringValue("검"),
		"target": dobject.ReferenceValue("walk"),
	}
	for name, value := range expected {
		field, ok := object.Field(name)
		require.True(t, ok, name)
		assert.Equal(t, value, field.Value, name)
	}
	assert.Equal(t, []string{"count", "on", "speed", "tint", "scale", "label", "target"}, object.Fields.Keys())
}

func TestDecodeRecord_UnresolvedStringIsAWarning(t *testing.T) {
	typeDefinition := createMixedType(t)
	heap := []byte("walk\x00")
	record := createMixedRecord(999, 0)

	object, warnings, err := DecodeRecord("mixes", "first", typeDefinition, record, heap, nil)
	require.NoError(t, err)
	require.Len(t, warnings, 1)

	var fieldWarning FieldWarning
	require.True(t, errors.As(warnings[0], &fieldWarning))
	assert.Equal(t, "label", fieldWarning.FieldName)
	var errStringResolution dstring.ErrStringResolution
	assert.True(t, errors.As(warnings[0], &errStringResolution))

	label, _ := object.Field("label")
	assert.False(t, label.IsResolved())
	target, _ := object.Field("target")
	assert.Equal(t, dobject.ReferenceValue("walk"), target.Value)
}

func TestDecodeRecord_WrongLength(t *testing.T) {
	typeDefinition := createMixedType(t)
	_, _, err := DecodeRecord("mixes", "first", typeDefinition, make([]byte, 10), nil, nil)
	var errTruncatedData ErrTruncatedData
	assert.True(t, errors.As(err, &errTruncatedData))
}

func TestDecodeList(t *testing.T) {
	typeDefinition := createMixedType(t)
	heap := []byte("a\x00b\x00")
	data := append(createMixedRecord(0, 2), createMixedRecord(2, 0)...)

	definition := dschema.ListDefinition{
		Name: "mixes",
		Type: typeDefinition,
		Members: []dschema.ListEntry{
			{Name: "second", TypeName: "mixed", Offset: 24},
			{Name: "first", TypeName: "mixed", Offset: 0},
		},
	}
	list, consumed, warnings, err := DecodeList(definition, data, heap, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 48, consumed)
	assert.Equal(t, []string{"second", "first"}, list.Names())

	second, _ := list.Find("second")
	label, _ := second.Field("label")
	assert.Equal(t, dobject.StringValue("b"), label.Value)
}

func TestDecodeList_OutsideDataBlob(t *testing.T) {
	typeDefinition := createMixedType(t)
	definition := dschema.ListDefinition{
		Name:    "mixes",
		Type:    typeDefinition,
		Members: []dschema.ListEntry{{Name: "first", TypeName: "mixed", Offset: 8}},
	}
	_, _, _, err := DecodeList(definition, createMixedRecord(0, 0), []byte("\x00"), nil)
	var errTruncatedData ErrTruncatedData
	assert.True(t, errors.As(err, &errTruncatedData))
}

func TestEncodeRecord_ReverseOfDecode(t *testing.T) {
	typeDefinition := createMixedType(t)
	heap := []byte("label\x00walk\x00")
	record := createMixedRecord(0, 6)

	object, _, err := DecodeRecord("mixes", "first", typeDefinition, record, heap, nil)
	require.NoError(t, err)

	builder := dstring.NewBuilder(nil)
	list := dobject.NewObjectList("mixes", typeDefinition)
	require.NoError(t, list.Add(object))
	require.NoError(t, CollectStrings([]*dobject.ObjectList{list}, builder))
	assert.Equal(t, heap, builder.Bytes())

	encoded, err := EncodeRecord("mixes", object, builder)
	require.NoError(t, err)
	// padding bytes 2 and 3 come back from the raw record
	assert.Equal(t, record, encoded)

	object.Raw = nil
	encoded, err = EncodeRecord("mixes", object, builder)
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0}, encoded[2:4])
	assert.Equal(t, record[4:], encoded[4:])
}

func TestCollectStrings_Deduplicates(t *testing.T) {
	typeDefinition := createMixedType(t)
	list := dobject.NewObjectList("mixes", typeDefinition)
	for i := 0; i < 3; i++ {
		object, err := list.AddNew()
		require.NoError(t, err)
		label, _ := object.Field("label")
		require.NoError(t, label.SetText("shared"))
		target, _ := object.Field("target")
		require.NoError(t, target.SetText("shared"))
	}

	builder := dstring.NewBuilder(korean.EUCKR)
	require.NoError(t, CollectStrings([]*dobject.ObjectList{list}, builder))
	assert.Equal(t, []byte("shared\x00"), builder.Bytes())

	for _, object := range list.Objects {
		encoded, err := EncodeRecord(list.Name, object, builder)
		require.NoError(t, err)
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, encoded[16:24])
	}
}

func TestEncodeRecord_Failures(t *testing.T) {
	typeDefinition := createMixedType(t)
	object, err := dobject.NewObject("first", typeDefinition)
	require.NoError(t, err)
	builder := dstring.NewBuilder(nil)

	label, _ := object.Field("label")
	label.Value = nil
	var errUnresolvedString ErrUnresolvedString
	require.True(t, errors.As(CollectStrings([]*dobject.ObjectList{{Name: "mixes", Type: typeDefinition, Objects: []*dobject.DataObject{object}}}, builder), &errUnresolvedString))
	_, err = EncodeRecord("mixes", object, builder)
	assert.True(t, errors.As(err, &errUnresolvedString))

	label.Value = dobject.IntegerValue(1)
	var errValidation dobject.ErrValidation
	_, err = EncodeRecord("mixes", object, builder)
	assert.True(t, errors.As(err, &errValidation))

	label.Value = dobject.StringValue("never collected")
	_, err = EncodeRecord("mixes", object, builder)
	assert.Error(t, err)

	object.Fields.Delete("label")
	var errMissingField ErrMissingField
	_, err = EncodeRecord("mixes", object, builder)
	assert.True(t, errors.As(err, &errMissingField))
}
