// Package dxml exports decoded lists as XML: one element per list, one child element per object
// named after the object's type, and one attribute per field.
package dxml

import (
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"ddbin-editor/ddbin/dobject"
	"github.com/pkg/errors"
	"github.com/samber/lo"
)

const (
	RootElementName     = "DataDog"
	ObjectNameAttribute = "_ObjName"
	indent              = "\t"
)

type (
	rootElement struct {
		XMLName xml.Name
		Lists   []listElement
	}
	listElement struct {
		XMLName xml.Name
		Objects []objectElement
	}
	objectElement struct {
		XMLName    xml.Name
		Attributes []xml.Attr `xml:",any,attr"`
	}
)

// AttributeText is how a field value appears in an attribute. Booleans are capitalised, floats
// keep at most two fractional digits, everything else uses the display form.
func AttributeText(value dobject.Value) string {
	switch v := value.(type) {
	case dobject.BoolValue:
		if v {
			return "True"
		}
		return "False"
	case dobject.FloatValue:
		return FloatText(float32(v))
	}
	return dobject.FormatText(value)
}

// FloatText rounds to two fractional digits and drops trailing zeros: 1.5, -2, 0.33.
func FloatText(value float32) string {
	text := strconv.FormatFloat(float64(value), 'f', 2, 32)
	text = strings.TrimRight(text, "0")
	text = strings.TrimSuffix(text, ".")
	if text == "-0" {
		return "0"
	}
	return text
}

func newObjectElement(object *dobject.DataObject) objectElement {
	attributes := []xml.Attr{{Name: xml.Name{Local: ObjectNameAttribute}, Value: object.Name}}
	attributes = append(
		attributes,
		lo.Map(
			object.FieldList(),
			func(field *dobject.DataField, _ int) xml.Attr {
				return xml.Attr{Name: xml.Name{Local: field.Name}, Value: AttributeText(field.Value)}
			},
		)...,
	)
	return objectElement{
		XMLName:    xml.Name{Local: object.Type.Name},
		Attributes: attributes,
	}
}

func newListElement(list *dobject.ObjectList) listElement {
	return listElement{
		XMLName: xml.Name{Local: list.Name},
		Objects: lo.Map(
			list.Objects,
			func(object *dobject.DataObject, _ int) objectElement {
				return newObjectElement(object)
			},
		),
	}
}

func write(w io.Writer, element any) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", indent)
	if err := encoder.Encode(element); err != nil {
		return err
	}
	return encoder.Flush()
}

// Export writes every list under a single DataDog root element.
func Export(w io.Writer, lists []*dobject.ObjectList) error {
	root := rootElement{
		XMLName: xml.Name{Local: RootElementName},
		Lists: lo.Map(
			lists,
			func(list *dobject.ObjectList, _ int) listElement {
				return newListElement(list)
			},
		),
	}
	if err := write(w, root); err != nil {
		err := errors.Wrap(err, "dxml.Export error")
		return err
	}
	return nil
}

// ExportList writes a single list as the document root.
func ExportList(w io.Writer, list *dobject.ObjectList) error {
	if err := write(w, newListElement(list)); err != nil {
		err := errors.Wrapf(err, `dxml.ExportList error on "%s"`, list.Name)
		return err
	}
	return nil
}
