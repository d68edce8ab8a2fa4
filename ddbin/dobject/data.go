// Package dobject is the mutable object model decoded from and encoded to a DDBIN container.
package dobject

import (
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ds"
)

type (
	// Value is a closed union over the seven var types. The concrete type always agrees
	// with the VarType it reports.
	Value interface {
		VarType() dschema.VarType
		isValue()
	}

	ByteValue      uint8
	BoolValue      bool
	IntegerValue   int32
	ColorValue     uint32
	FloatValue     float32
	StringValue    string
	ReferenceValue string

	DataField struct {
		Name    string          `json:"name"`
		VarType dschema.VarType `json:"var_type"`
		// Value is nil only when a heap string could not be resolved while decoding.
		Value Value `json:"value"`
	}
	DataObject struct {
		Name   string                                 `json:"name"`
		Type   *dschema.TypeDefinition                `json:"-"`
		Fields *ds.LinkedHashMap[string, *DataField] `json:"fields"`
		// Raw is the record the object was decoded from; encoding starts from it so that
		// bytes outside of any field survive.
		Raw []byte `json:"-"`
	}
	ObjectList struct {
		Name    string                  `json:"name"`
		Type    *dschema.TypeDefinition `json:"-"`
		Objects []*DataObject           `json:"objects"`
	}
)

const (
	DefaultObjectNamePrefix = "NewObject"
)

func (ByteValue) VarType() dschema.VarType      { return dschema.VarTypeByte }
func (BoolValue) VarType() dschema.VarType      { return dschema.VarTypeBool }
func (IntegerValue) VarType() dschema.VarType   { return dschema.VarTypeInteger }
func (ColorValue) VarType() dschema.VarType     { return dschema.VarTypeColor }
func (FloatValue) VarType() dschema.VarType     { return dschema.VarTypeFloat }
func (StringValue) VarType() dschema.VarType    { return dschema.VarTypeString }
func (ReferenceValue) VarType() dschema.VarType { return dschema.VarTypeReference }

func (ByteValue) isValue()      {}
func (BoolValue) isValue()      {}
func (IntegerValue) isValue()   {}
func (ColorValue) isValue()     {}
func (FloatValue) isValue()     {}
func (StringValue) isValue()    {}
func (ReferenceValue) isValue() {}
