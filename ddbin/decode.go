package ddbin

import (
	"os"
	"strings"

	"ddbin-editor/ddbin/dheader"
	"ddbin-editor/ddbin/drecord"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
)

// Decode parses a whole container. Nothing is returned unless every segment decoded; string
// resolution failures are the only problems that are tolerated, see File.Warnings.
func (c *Codec) Decode(bs []byte) (*File, error) {
	enc := c.config.Encoding
	reader := lbytes.NewBytesReader(bs)

	header, err := dheader.Decode(reader)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error")
		return nil, err
	}

	typesText, err := reader.ReadString(int(header.TypesLength), enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error reading types")
		return nil, err
	}
	fieldsText, err := reader.ReadString(int(header.FieldsLength), enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error reading fields")
		return nil, err
	}
	listsText, err := reader.ReadString(int(header.ListsLength), enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error reading lists")
		return nil, err
	}
	heap, err := reader.ReadBytes(int(header.StringsLength))
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error reading strings")
		return nil, err
	}
	data, err := reader.ReadBytes(int(header.DataLength))
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error reading data")
		return nil, err
	}
	infoRaw, err := reader.ReadRemaining()
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error reading info")
		return nil, err
	}
	info, err := lbytes.DecodeText(infoRaw, enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error decoding info")
		return nil, err
	}
	info = strings.TrimRight(info, "\u0000")

	schema, err := dschema.Build(typesText, fieldsText, dschema.FindVarTypes(info))
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error")
		return nil, err
	}
	listDefinitions, err := dschema.BuildLists(schema, listsText)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Decode error")
		return nil, err
	}

	file := NewFile()
	file.Header = *header
	file.Schema = schema
	file.Info = info
	file.infoRaw = infoRaw
	file.infoDecoded = info

	consumed := 0
	for _, definition := range listDefinitions {
		list, listConsumed, warnings, err := drecord.DecodeList(definition, data, heap, enc)
		if err != nil {
			err := errors.Wrap(err, "ddbin.Decode error")
			return nil, err
		}
		for _, warning := range warnings {
			c.config.Logger.Printf("warning: %v", warning)
		}
		file.Warnings = append(file.Warnings, warnings...)
		file.Lists.Put(list.Name, list)
		consumed += listConsumed
	}
	if consumed != len(data) {
		return nil, drecord.ErrTruncatedData{
			Expected: len(data),
			Actual:   consumed,
			Reason:   "records do not cover the data blob",
		}
	}

	return file, nil
}

func (c *Codec) ReadFile(path string) (*File, error) {
	bs, err := os.ReadFile(path)
	if err != nil {
		err := errors.Wrapf(err, `ReadFile error on "%s"`, path)
		return nil, err
	}
	file, err := c.Decode(bs)
	if err != nil {
		err := errors.Wrapf(err, `ReadFile error on "%s"`, path)
		return nil, err
	}
	return file, nil
}
