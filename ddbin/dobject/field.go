package dobject

import (
	"fmt"

	"ddbin-editor/ddbin/dschema"
	"github.com/pkg/errors"
)

func NewDataField(definition *dschema.FieldDefinition) (*DataField, error) {
	value, err := ZeroValue(definition.VarType)
	if err != nil {
		err := errors.Wrapf(err, `NewDataField error on "%s"`, definition.Name)
		return nil, err
	}
	return &DataField{
		Name:    definition.Name,
		VarType: definition.VarType,
		Value:   value,
	}, nil
}

func (f *DataField) IsResolved() bool {
	return f.Value != nil
}

// Set replaces the value; the variant has to match the field's var type.
func (f *DataField) Set(value Value) error {
	if value == nil {
		return ErrValidation{
			Target:  fmt.Sprintf(`field "%s"`, f.Name),
			VarType: f.VarType,
			Reason:  "value is nil",
		}
	}
	if value.VarType() != f.VarType {
		return ErrValidation{
			Target:  fmt.Sprintf(`field "%s"`, f.Name),
			VarType: f.VarType,
			Input:   FormatText(value),
			Reason:  fmt.Sprintf("expected a %s value, got %s", f.VarType, value.VarType()),
		}
	}
	f.Value = value
	return nil
}

// SetText parses text for the field's var type and stores it; the field is left untouched on error.
func (f *DataField) SetText(text string) error {
	value, err := ParseText(f.VarType, text)
	if err != nil {
		var errValidation ErrValidation
		if errors.As(err, &errValidation) {
			errValidation.Target = fmt.Sprintf(`field "%s" (%s)`, f.Name, f.VarType)
			return errValidation
		}
		return err
	}
	f.Value = value
	return nil
}

// ValidateText reports whether text would be accepted by SetText.
func (f *DataField) ValidateText(text string) bool {
	_, err := ParseText(f.VarType, text)
	return err == nil
}

func (f *DataField) Text() string {
	return FormatText(f.Value)
}
