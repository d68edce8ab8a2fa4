// Package ddbin decodes and encodes DDBIN containers ("DDBINFILE" .data files): typed, named
// records grouped into named lists, stored together with the schema that describes them.
package ddbin

import (
	"ddbin-editor/ddbin/dheader"
	"ddbin-editor/ddbin/dobject"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ds"
	"github.com/samber/lo"
)

type (
	// File is the whole in-memory model of one container.
	File struct {
		Header dheader.Header                               `json:"header"`
		Schema *dschema.Schema                              `json:"schema"`
		Lists  *ds.LinkedHashMap[string, *dobject.ObjectList] `json:"lists"`
		// Info is the free-form trailing text. Its var type declarations drive field typing.
		Info string `json:"info"`
		// Warnings are the non-fatal problems found while decoding.
		Warnings []error `json:"-"`

		infoRaw     []byte
		infoDecoded string
	}
)

func NewFile() *File {
	return &File{
		Header: dheader.New(nil, 0, 0, 0, 0, 0),
		Schema: dschema.NewSchema(),
		Lists:  ds.NewLinkedHashMap[string, *dobject.ObjectList](),
	}
}

func (f *File) Version() string {
	return f.Header.Version()
}

func (f *File) TypeNames() []string {
	return lo.Map(
		f.Schema.TypeList(),
		func(typeDefinition *dschema.TypeDefinition, _ int) string {
			return typeDefinition.Name
		},
	)
}

func (f *File) Type(name string) (*dschema.TypeDefinition, bool) {
	return f.Schema.Type(name)
}

func (f *File) AddType(typeDefinition *dschema.TypeDefinition) {
	f.Schema.AddType(typeDefinition)
}

func (f *File) ListNames() []string {
	return f.Lists.Keys()
}

func (f *File) ListValues() []*dobject.ObjectList {
	return f.Lists.Values()
}

func (f *File) List(name string) (*dobject.ObjectList, bool) {
	return f.Lists.Get(name)
}

// AddList registers a list; its type has to be part of the schema.
func (f *File) AddList(list *dobject.ObjectList) error {
	typeDefinition, ok := f.Schema.Type(list.Type.Name)
	if !ok || typeDefinition != list.Type {
		return dschema.ErrUnknownType{
			TypeName: list.Type.Name,
			Context:  `list "` + list.Name + `"`,
		}
	}
	f.Lists.Put(list.Name, list)
	return nil
}

func (f *File) RemoveList(name string) bool {
	return f.Lists.Delete(name)
}

func (f *File) ObjectCount() int {
	return lo.Reduce(
		f.ListValues(),
		func(count int, list *dobject.ObjectList, _ int) int {
			return count + len(list.Objects)
		},
		0,
	)
}
