package dobject

import (
	"fmt"
	"strconv"

	"ddbin-editor/ddbin/dschema"
	"github.com/samber/lo"
)

func NewObjectList(name string, typeDefinition *dschema.TypeDefinition) *ObjectList {
	return &ObjectList{
		Name:    name,
		Type:    typeDefinition,
		Objects: make([]*DataObject, 0),
	}
}

func (l *ObjectList) Find(name string) (*DataObject, bool) {
	return lo.Find(
		l.Objects,
		func(object *DataObject) bool {
			return object.Name == name
		},
	)
}

func (l *ObjectList) Names() []string {
	return lo.Map(l.Objects, func(object *DataObject, _ int) string { return object.Name })
}

// ValidateObjectName checks a name for a new or renamed object: it must not be empty, must
// fit the lists grammar and must not already be used in the list.
func (l *ObjectList) ValidateObjectName(name string) error {
	if name == "" {
		return ErrValidation{
			Target: fmt.Sprintf(`object name in list "%s"`, l.Name),
			Input:  name,
			Reason: "name can't be empty",
		}
	}
	if !dschema.IsValidName(name) {
		return ErrValidation{
			Target: fmt.Sprintf(`object name in list "%s"`, l.Name),
			Input:  name,
			Reason: `only letters, digits and "_" are allowed`,
		}
	}
	if _, ok := l.Find(name); ok {
		return ErrValidation{
			Target: fmt.Sprintf(`object name in list "%s"`, l.Name),
			Input:  name,
			Reason: "object names must be unique",
		}
	}
	return nil
}

// NextFreeName returns prefix followed by the smallest positive number not used in the list.
func (l *ObjectList) NextFreeName(prefix string) string {
	for i := 1; ; i++ {
		name := prefix + strconv.Itoa(i)
		if _, ok := l.Find(name); !ok {
			return name
		}
	}
}

// Add appends an object. The object has to be of the list's type; name uniqueness
// is left to the caller, see ValidateObjectName.
func (l *ObjectList) Add(object *DataObject) error {
	if object.Type != l.Type {
		return ErrValidation{
			Target: fmt.Sprintf(`list "%s"`, l.Name),
			Input:  object.Name,
			Reason: fmt.Sprintf(`object has type "%s" but the list holds "%s"`, object.Type.Name, l.Type.Name),
		}
	}
	l.Objects = append(l.Objects, object)
	return nil
}

// AddNew creates a zero-valued object with the next free default name and appends it.
func (l *ObjectList) AddNew() (*DataObject, error) {
	object, err := NewObject(l.NextFreeName(DefaultObjectNamePrefix), l.Type)
	if err != nil {
		return nil, err
	}
	l.Objects = append(l.Objects, object)
	return object, nil
}

// Remove drops every object with one of the given names and returns how many were removed.
func (l *ObjectList) Remove(names ...string) int {
	before := len(l.Objects)
	l.Objects = lo.Filter(
		l.Objects,
		func(object *DataObject, _ int) bool {
			return !lo.Contains(names, object.Name)
		},
	)
	return before - len(l.Objects)
}

func (l *ObjectList) Rename(oldName string, newName string) error {
	object, ok := l.Find(oldName)
	if !ok {
		return ErrValidation{
			Target: fmt.Sprintf(`list "%s"`, l.Name),
			Input:  oldName,
			Reason: "object not found",
		}
	}
	if oldName == newName {
		return nil
	}
	if err := l.ValidateObjectName(newName); err != nil {
		return err
	}
	object.Name = newName
	return nil
}
