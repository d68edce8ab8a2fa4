package dschema

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

func FormatType(typeDefinition TypeDefinition) string {
	return fmt.Sprintf("%s%%%d|", typeDefinition.Name, typeDefinition.Size)
}

func FormatField(typeName string, field FieldDefinition) (string, error) {
	symbol, err := field.ReadType.Symbol()
	if err != nil {
		err := errors.Wrapf(err, `FormatField error on "%s.%s"`, typeName, field.Name)
		return "", err
	}
	return fmt.Sprintf("%s.%s%%%d%s%d|", typeName, field.Name, field.Offset, symbol, field.Size), nil
}

func FormatListEntry(entry ListEntry) string {
	return fmt.Sprintf("%s[%d]@%s%%%d|", entry.Name, entry.Count, entry.TypeName, entry.Offset)
}

// FormatTypes regenerates the types grammar in declaration order.
func FormatTypes(schema *Schema) string {
	return strings.Join(
		lo.Map(
			schema.TypeList(),
			func(typeDefinition *TypeDefinition, _ int) string {
				return FormatType(*typeDefinition)
			},
		),
		"",
	)
}

// FormatFields regenerates the fields grammar: every type's fields, types in declaration order.
func FormatFields(schema *Schema) (string, error) {
	sb := strings.Builder{}
	for _, typeDefinition := range schema.TypeList() {
		for _, field := range typeDefinition.Fields.Values() {
			token, err := FormatField(typeDefinition.Name, *field)
			if err != nil {
				return "", err
			}
			sb.WriteString(token)
		}
	}
	return sb.String(), nil
}

// FormatListEntries joins list headers and member entries that were laid out by the caller.
func FormatListEntries(entries []ListEntry) string {
	return strings.Join(lo.Map(entries, func(entry ListEntry, _ int) string { return FormatListEntry(entry) }), "")
}

func FormatVarTypeDeclaration(typeName string, fieldName string, varType VarType) string {
	return fmt.Sprintf("%s@%s.%s", varType.Code(), typeName, fieldName)
}

// MissingVarTypeDeclarations lists the declaration lines an info block needs so that every field
// of the schema resolves to its var type again. Fields that are already declared with the same
// var type are skipped.
func MissingVarTypeDeclarations(schema *Schema, info string) []string {
	declared := FindVarTypes(info)
	lines := make([]string, 0)
	for _, typeDefinition := range schema.TypeList() {
		for _, field := range typeDefinition.Fields.Values() {
			varType, ok := declared[FieldKey(typeDefinition.Name, field.Name)]
			if ok && varType == field.VarType {
				continue
			}
			lines = append(lines, FormatVarTypeDeclaration(typeDefinition.Name, field.Name, field.VarType))
		}
	}
	return lines
}
