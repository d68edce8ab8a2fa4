package dschema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"ddbin-editor/ds"
	"github.com/pkg/errors"
)

type (
	TypeToken struct {
		Name string `json:"name"`
		Size int    `json:"size"`
	}
	FieldToken struct {
		TypeName  string   `json:"type_name"`
		FieldName string   `json:"field_name"`
		Offset    int      `json:"offset"`
		ReadType  ReadType `json:"read_type"`
		Size      int      `json:"size"`
	}
	// ListEntry is one "name[count]@typeName%offset|" token. The same shape is used for
	// list headers and for the member records following them.
	ListEntry struct {
		Name     string `json:"name"`
		Count    int    `json:"count"`
		TypeName string `json:"type_name"`
		Offset   int    `json:"offset"`
	}
	// ListDefinition is a list header with its members, resolved against a schema.
	ListDefinition struct {
		Name    string          `json:"name"`
		Type    *TypeDefinition `json:"-"`
		Members []ListEntry     `json:"members"`
	}
)

var (
	typesRegex  = regexp.MustCompile(`(?i)([a-z0-9_]+)%([0-9]+)\|`)
	fieldsRegex = regexp.MustCompile(`(?i)([a-z0-9_]+)\.([a-z0-9_]+)%([0-9]+)([*#])([0-9]+)\|`)
	listsRegex  = regexp.MustCompile(`(?i)([a-z0-9_]+)\[([0-9]+)\]@([a-z0-9_]+)%([0-9]+)\|`)
	lineBreaks  = regexp.MustCompile(`\r\n|\r|\n`)
	nameRegex   = regexp.MustCompile(`(?i)^[a-z0-9_]+$`)
)

// IsValidName tells whether name can be written to the grammars and read back unchanged.
func IsValidName(name string) bool {
	return nameRegex.MatchString(name)
}

// ValidateName rejects a type, field, list or object name that the grammar of segment can't hold.
func ValidateName(segment Segment, kind string, name string) error {
	if IsValidName(name) {
		return nil
	}
	return ErrSchemaCorrupt{
		Segment: segment,
		Reason:  fmt.Sprintf(`%s name "%s" may only contain letters, digits and "_"`, kind, name),
	}
}

func parseNumber(segment Segment, token string, value string) (int, error) {
	number, err := strconv.ParseInt(value, 10, 32)
	if err != nil {
		return 0, ErrSchemaCorrupt{
			Segment: segment,
			Reason:  fmt.Sprintf(`number "%s" in token "%s" is out of range`, value, token),
		}
	}
	return int(number), nil
}

// ParseTypes reads the "name%size|" grammar.
func ParseTypes(text string) ([]TypeToken, error) {
	matches := typesRegex.FindAllStringSubmatch(text, -1)
	tokens := make([]TypeToken, 0, len(matches))
	for _, match := range matches {
		size, err := parseNumber(SegmentTypes, match[0], match[2])
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, TypeToken{Name: match[1], Size: size})
	}
	return tokens, nil
}

// ParseFields reads the "typeName.fieldName%offset<kind><size>|" grammar. Every "|" in the
// text has to terminate a well-formed token; anything the pattern would skip is corruption.
func ParseFields(text string) ([]FieldToken, error) {
	matches := fieldsRegex.FindAllStringSubmatch(text, -1)
	numTerminators := strings.Count(text, "|")
	if len(matches) != numTerminators {
		return nil, ErrSchemaCorrupt{
			Segment: SegmentFields,
			Reason: fmt.Sprintf(
				"found %d field definitions but %d terminators",
				len(matches), numTerminators,
			),
		}
	}

	tokens := make([]FieldToken, 0, len(matches))
	for _, match := range matches {
		offset, err := parseNumber(SegmentFields, match[0], match[3])
		if err != nil {
			return nil, err
		}
		readType, err := ParseReadTypeSymbol(match[4])
		if err != nil {
			return nil, err
		}
		size, err := parseNumber(SegmentFields, match[0], match[5])
		if err != nil {
			return nil, err
		}
		tokens = append(
			tokens,
			FieldToken{
				TypeName:  match[1],
				FieldName: match[2],
				Offset:    offset,
				ReadType:  readType,
				Size:      size,
			},
		)
	}
	return tokens, nil
}

// ParseListEntries reads the "name[count]@typeName%offset|" grammar into a flat token stream.
func ParseListEntries(text string) ([]ListEntry, error) {
	matches := listsRegex.FindAllStringSubmatch(text, -1)
	entries := make([]ListEntry, 0, len(matches))
	for _, match := range matches {
		count, err := parseNumber(SegmentLists, match[0], match[2])
		if err != nil {
			return nil, err
		}
		offset, err := parseNumber(SegmentLists, match[0], match[4])
		if err != nil {
			return nil, err
		}
		entries = append(
			entries,
			ListEntry{
				Name:     match[1],
				Count:    count,
				TypeName: match[3],
				Offset:   offset,
			},
		)
	}
	return entries, nil
}

// GroupListEntries folds the flat token stream into lists: a header entry is followed by
// exactly Count member entries, so the running index advances by 1 + Count per list.
func GroupListEntries(schema *Schema, entries []ListEntry) ([]ListDefinition, error) {
	lists := make([]ListDefinition, 0)
	for i := 0; i < len(entries); {
		header := entries[i]
		listType, ok := schema.Type(header.TypeName)
		if !ok {
			return nil, ErrUnknownType{
				TypeName: header.TypeName,
				Context:  fmt.Sprintf(`list "%s"`, header.Name),
			}
		}
		first := i + 1
		last := first + header.Count
		if last > len(entries) {
			return nil, ErrSchemaCorrupt{
				Segment: SegmentLists,
				Reason: fmt.Sprintf(
					`list "%s" declares %d members but only %d entries follow`,
					header.Name, header.Count, len(entries)-first,
				),
			}
		}

		members := ds.ShallowCopy(entries[first:last])
		for _, member := range members {
			memberType, ok := schema.Type(member.TypeName)
			if !ok {
				return nil, ErrUnknownType{
					TypeName: member.TypeName,
					Context:  fmt.Sprintf(`object "%s" of list "%s"`, member.Name, header.Name),
				}
			}
			if memberType != listType {
				return nil, ErrSchemaCorrupt{
					Segment: SegmentLists,
					Reason: fmt.Sprintf(
						`object "%s" has type "%s" but list "%s" holds "%s"`,
						member.Name, member.TypeName, header.Name, listType.Name,
					),
				}
			}
		}

		lists = append(
			lists,
			ListDefinition{
				Name:    header.Name,
				Type:    listType,
				Members: members,
			},
		)
		i = last
	}
	return lists, nil
}

// IsVarTypeDeclaration tells whether an info block line declares a field's var type:
//
//   - the first "@" is the 4th character,
//   - there is no other "@" after it,
//   - there is a "." after it, and
//   - there is no ":" anywhere.
func IsVarTypeDeclaration(line string) bool {
	runes := []rune(line)
	indexOf := func(r rune, from int) int {
		for i := from; i < len(runes); i++ {
			if runes[i] == r {
				return i
			}
		}
		return -1
	}
	return indexOf('@', 0) == 3 &&
		indexOf('@', 4) == -1 &&
		indexOf('.', 4) != -1 &&
		indexOf(':', 0) == -1
}

// FindVarTypes collects the var type declarations of an info block, keyed by FieldKey.
// Qualifying lines with a code that is not a known var type are left alone like any other text.
func FindVarTypes(info string) map[string]VarType {
	result := map[string]VarType{}
	for _, line := range lineBreaks.Split(info, -1) {
		if !IsVarTypeDeclaration(line) {
			continue
		}
		runes := []rune(line)
		varType, ok := ParseVarTypeCode(string(runes[:3]))
		if !ok {
			continue
		}
		result[strings.ToLower(string(runes[4:]))] = varType
	}
	return result
}

// Build reconstructs the schema from the types and fields grammars, taking each field's
// var type from the info block declarations.
func Build(typesText string, fieldsText string, varTypes map[string]VarType) (*Schema, error) {
	schema := NewSchema()

	typeTokens, err := ParseTypes(typesText)
	if err != nil {
		err := errors.Wrap(err, "dschema.Build error")
		return nil, err
	}
	for _, token := range typeTokens {
		schema.AddType(NewTypeDefinition(token.Name, token.Size))
	}

	fieldTokens, err := ParseFields(fieldsText)
	if err != nil {
		err := errors.Wrap(err, "dschema.Build error")
		return nil, err
	}
	for _, token := range fieldTokens {
		typeDefinition, ok := schema.Type(token.TypeName)
		if !ok {
			return nil, ErrUnknownType{
				TypeName: token.TypeName,
				Context:  "field " + ds.DumpJSON(token),
			}
		}
		fieldKey := FieldKey(token.TypeName, token.FieldName)
		varType, ok := varTypes[fieldKey]
		if !ok {
			return nil, ErrUnknownVarType{FieldKey: fieldKey}
		}
		field, err := NewFieldDefinition(token.FieldName, token.Offset, token.ReadType, token.Size, varType)
		if err != nil {
			err := errors.Wrapf(err, `dschema.Build error on "%s"`, fieldKey)
			return nil, err
		}
		typeDefinition.AddField(field)
	}

	for _, typeDefinition := range schema.TypeList() {
		if err := typeDefinition.Validate(); err != nil {
			err := errors.Wrap(err, "dschema.Build error")
			return nil, err
		}
	}

	return schema, nil
}

// BuildLists parses the lists grammar and resolves every entry against the schema.
func BuildLists(schema *Schema, listsText string) ([]ListDefinition, error) {
	entries, err := ParseListEntries(listsText)
	if err != nil {
		err := errors.Wrap(err, "dschema.BuildLists error")
		return nil, err
	}
	lists, err := GroupListEntries(schema, entries)
	if err != nil {
		err := errors.Wrap(err, "dschema.BuildLists error")
		return nil, err
	}
	return lists, nil
}
