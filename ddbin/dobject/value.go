package dobject

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ds"
	"github.com/pkg/errors"
)

// decimalRegex is the invariant decimal notation; NaN, infinities and hex floats are excluded.
var decimalRegex = regexp.MustCompile(`^[+-]?([0-9]+\.?[0-9]*|\.[0-9]+)([eE][+-]?[0-9]+)?$`)

// ZeroValue is the value a freshly created object holds for a field of the given type.
func ZeroValue(varType dschema.VarType) (Value, error) {
	switch varType {
	case dschema.VarTypeByte:
		return ByteValue(0), nil
	case dschema.VarTypeBool:
		return BoolValue(false), nil
	case dschema.VarTypeInteger:
		return IntegerValue(0), nil
	case dschema.VarTypeColor:
		return ColorValue(0), nil
	case dschema.VarTypeFloat:
		return FloatValue(0), nil
	case dschema.VarTypeString:
		return StringValue(""), nil
	case dschema.VarTypeReference:
		return ReferenceValue(""), nil
	}
	return nil, ds.ErrUnreachableCode{Caller: "ZeroValue", Value: varType}
}

// ParseText converts the textual form of a value:
//
//   - Bool: "true" or "false", case-insensitive
//   - Byte and Integer: decimal
//   - Color: hexadecimal without prefix
//   - Float: invariant decimal notation
//   - String and Reference: any text
func ParseText(varType dschema.VarType, text string) (Value, error) {
	invalid := func(err error) error {
		return ErrValidation{
			Target:  varType.String(),
			VarType: varType,
			Input:   text,
			Reason:  err.Error(),
		}
	}
	trimmed := strings.TrimSpace(text)

	switch varType {
	case dschema.VarTypeBool:
		switch {
		case strings.EqualFold(trimmed, "true"):
			return BoolValue(true), nil
		case strings.EqualFold(trimmed, "false"):
			return BoolValue(false), nil
		}
		return nil, invalid(fmt.Errorf(`expected "true" or "false"`))
	case dschema.VarTypeByte:
		value, err := strconv.ParseUint(trimmed, 10, 8)
		if err != nil {
			return nil, invalid(err)
		}
		return ByteValue(value), nil
	case dschema.VarTypeInteger:
		value, err := strconv.ParseInt(trimmed, 10, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return IntegerValue(value), nil
	case dschema.VarTypeColor:
		value, err := strconv.ParseUint(trimmed, 16, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return ColorValue(value), nil
	case dschema.VarTypeFloat:
		if !decimalRegex.MatchString(trimmed) {
			return nil, invalid(errors.New("not a decimal number"))
		}
		value, err := strconv.ParseFloat(trimmed, 32)
		if err != nil {
			return nil, invalid(err)
		}
		return FloatValue(value), nil
	case dschema.VarTypeString:
		return StringValue(text), nil
	case dschema.VarTypeReference:
		return ReferenceValue(text), nil
	}
	return nil, ds.ErrUnreachableCode{Caller: "ParseText", Value: varType}
}

// FormatText is the display form of a value, the inverse of ParseText.
// Colors are 8-digit uppercase hexadecimal; floats use the shortest invariant form.
func FormatText(value Value) string {
	switch v := value.(type) {
	case nil:
		return ""
	case ByteValue:
		return strconv.FormatUint(uint64(v), 10)
	case BoolValue:
		return strconv.FormatBool(bool(v))
	case IntegerValue:
		return strconv.FormatInt(int64(v), 10)
	case ColorValue:
		return fmt.Sprintf("%08X", uint32(v))
	case FloatValue:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case StringValue:
		return string(v)
	case ReferenceValue:
		return string(v)
	}
	return ds.ErrUnreachableCode{Caller: "FormatText", Value: value}.Error()
}

// StringOf returns the text of a heap stored value.
func StringOf(value Value) (string, bool) {
	switch v := value.(type) {
	case StringValue:
		return string(v), true
	case ReferenceValue:
		return string(v), true
	}
	return "", false
}

// NewStringValue wraps text in the heap stored variant matching varType.
func NewStringValue(varType dschema.VarType, text string) (Value, error) {
	switch varType {
	case dschema.VarTypeString:
		return StringValue(text), nil
	case dschema.VarTypeReference:
		return ReferenceValue(text), nil
	}
	return nil, ds.ErrUnreachableCode{Caller: "NewStringValue", Value: varType}
}
