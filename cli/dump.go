package cli

import (
	"encoding/json"
	"io"

	"ddbin-editor/ddbin"
	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ddbin/dxml"
	"github.com/iancoleman/orderedmap"
	"github.com/invopop/jsonschema"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

type (
	// Dump is the JSON document written by the json command.
	Dump struct {
		Version string     `json:"version" jsonschema:"description=format version taken from the file signature"`
		Types   []DumpType `json:"types"`
		Lists   []DumpList `json:"lists"`
		Info    string     `json:"info"`
	}
	DumpType struct {
		Name   string      `json:"name"`
		Size   int         `json:"size"`
		Fields []DumpField `json:"fields"`
	}
	DumpField struct {
		Name     string `json:"name"`
		Offset   int    `json:"offset"`
		ReadType string `json:"read_type" jsonschema:"enum=Bin,enum=String"`
		Size     int    `json:"size"`
		VarType  string `json:"var_type" jsonschema:"enum=Byte,enum=Bool,enum=Integer,enum=Color,enum=Float,enum=String,enum=Reference"`
	}
	DumpList struct {
		Name string `json:"name"`
		Type string `json:"type"`
		// Objects map "_ObjName" and then every field name, in record order, to its value.
		Objects []*orderedmap.OrderedMap `json:"objects"`
	}
)

// DumpValue converts a field value to its JSON form. Colors stay hexadecimal text so they
// read the same as in the XML export; unresolved strings become null.
func DumpValue(value dobject.Value) any {
	switch v := value.(type) {
	case nil:
		return nil
	case dobject.ByteValue:
		return uint8(v)
	case dobject.BoolValue:
		return bool(v)
	case dobject.IntegerValue:
		return int32(v)
	case dobject.ColorValue:
		return dobject.FormatText(v)
	case dobject.FloatValue:
		return float32(v)
	case dobject.StringValue:
		return string(v)
	case dobject.ReferenceValue:
		return string(v)
	}
	return nil
}

func createDumpObject(object *dobject.DataObject) *orderedmap.OrderedMap {
	lhm := orderedmap.New()
	lhm.Set(dxml.ObjectNameAttribute, object.Name)
	for _, field := range object.FieldList() {
		lhm.Set(field.Name, DumpValue(field.Value))
	}
	return lhm
}

func CreateDump(file *ddbin.File) Dump {
	return Dump{
		Version: file.Version(),
		Types: lo.Map(
			file.Schema.TypeList(),
			func(typeDefinition *dschema.TypeDefinition, _ int) DumpType {
				return DumpType{
					Name: typeDefinition.Name,
					Size: typeDefinition.Size,
					Fields: lo.Map(
						typeDefinition.SortedFields(),
						func(field *dschema.FieldDefinition, _ int) DumpField {
							return DumpField{
								Name:     field.Name,
								Offset:   field.Offset,
								ReadType: field.ReadType.String(),
								Size:     field.Size,
								VarType:  field.VarType.String(),
							}
						},
					),
				}
			},
		),
		Lists: lo.Map(
			file.ListValues(),
			func(list *dobject.ObjectList, _ int) DumpList {
				return DumpList{
					Name:    list.Name,
					Type:    list.Type.Name,
					Objects: lo.Map(
						list.Objects,
						func(object *dobject.DataObject, _ int) *orderedmap.OrderedMap {
							return createDumpObject(object)
						},
					),
				}
			},
		),
		Info: file.Info,
	}
}

func writeIndentedJSON(w io.Writer, value any) error {
	bs, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	bs = append(bs, '\n')
	_, err = w.Write(bs)
	return err
}

func WriteDump(w io.Writer, dump Dump) error {
	if err := writeIndentedJSON(w, dump); err != nil {
		err := errors.Wrap(err, "WriteDump error")
		return err
	}
	return nil
}

func CreateDumpSchema() *jsonschema.Schema {
	schema := jsonschema.Reflect(&Dump{})
	schema.Title = "DDBIN dump"
	schema.Description = "Ordered JSON rendition of a DDBIN data file"
	return schema
}

func WriteDumpSchema(w io.Writer) error {
	if err := writeIndentedJSON(w, CreateDumpSchema()); err != nil {
		err := errors.Wrap(err, "WriteDumpSchema error")
		return err
	}
	return nil
}
