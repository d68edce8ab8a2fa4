package cli

import (
	"io"
	"strings"

	"ddbin-editor/ddbin"
	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"github.com/samber/lo"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newPrinter() *message.Printer {
	return message.NewPrinter(language.English)
}

func WriteInfo(w io.Writer, path string, file *ddbin.File) {
	p := newPrinter()
	p.Fprintf(w, "%s (DDBIN %s)\n", path, file.Version())
	p.Fprintf(
		w, "%d types, %d lists, %d objects, %d bytes of records, %d bytes of strings\n",
		file.Schema.Types.Len(), file.Lists.Len(), file.ObjectCount(),
		file.Header.DataLength, file.Header.StringsLength,
	)

	p.Fprintf(w, "\nTypes:\n")
	for _, typeDefinition := range file.Schema.TypeList() {
		p.Fprintf(w, "  %s\n", typeDefinition)
		for _, field := range typeDefinition.SortedFields() {
			p.Fprintf(w, "    %s\n", field)
		}
	}

	p.Fprintf(w, "\nLists:\n")
	for _, list := range file.ListValues() {
		p.Fprintf(w, "  %s\n", listSummary(list))
	}

	if len(file.Warnings) > 0 {
		p.Fprintf(w, "\n%d warnings:\n", len(file.Warnings))
		for _, warning := range file.Warnings {
			p.Fprintf(w, "  %v\n", warning)
		}
	}
}

func StartInfo(codec *ddbin.Codec, cmd InfoCmd, stdout io.Writer) error {
	file, err := codec.ReadFile(cmd.Path)
	if err != nil {
		return err
	}
	WriteInfo(stdout, cmd.Path, file)
	return nil
}

func countByVarType(typeDefinition *dschema.TypeDefinition) string {
	parts := lo.FilterMap(
		dschema.AllVarTypes,
		func(varType dschema.VarType, _ int) (string, bool) {
			count := lo.CountBy(
				typeDefinition.Fields.Values(),
				func(field *dschema.FieldDefinition) bool {
					return field.VarType == varType
				},
			)
			return newPrinter().Sprintf("%d %s", count, varType), count > 0
		},
	)
	return strings.Join(parts, ", ")
}

func listSummary(list *dobject.ObjectList) string {
	return newPrinter().Sprintf(
		"%s: %d objects of %s (%s)",
		list.Name, len(list.Objects), list.Type.Name, countByVarType(list.Type),
	)
}
