package dobject

import (
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ds"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// NewObject creates an object with every field of its type set to the zero value.
func NewObject(name string, typeDefinition *dschema.TypeDefinition) (*DataObject, error) {
	object := &DataObject{
		Name:   name,
		Type:   typeDefinition,
		Fields: ds.NewLinkedHashMap[string, *DataField](),
	}
	for _, definition := range typeDefinition.SortedFields() {
		field, err := NewDataField(definition)
		if err != nil {
			err := errors.Wrapf(err, `NewObject error on "%s"`, name)
			return nil, err
		}
		object.Fields.Put(field.Name, field)
	}
	return object, nil
}

func (o *DataObject) Field(name string) (*DataField, bool) {
	return o.Fields.Get(name)
}

// FieldList returns the fields in record order.
func (o *DataObject) FieldList() []*DataField {
	return lo.FilterMap(
		o.Type.SortedFields(),
		func(definition *dschema.FieldDefinition, _ int) (*DataField, bool) {
			return o.Fields.Get(definition.Name)
		},
	)
}

// Clone deep-copies the object under a new name.
func (o *DataObject) Clone(name string) *DataObject {
	clone := &DataObject{
		Name:   name,
		Type:   o.Type,
		Fields: ds.NewLinkedHashMap[string, *DataField](),
		Raw:    ds.ShallowCopy(o.Raw),
	}
	for _, field := range o.Fields.Values() {
		fieldCopy := *field
		clone.Fields.Put(fieldCopy.Name, &fieldCopy)
	}
	return clone
}
