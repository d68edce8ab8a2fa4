package ddbin

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ddbin-editor/ddbin/dheader"
	"ddbin-editor/ddbin/drecord"
	"ddbin-editor/ddbin/dschema"
	"ddbin-editor/ddbin/dstring"
	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
)

const infoLineBreak = "\r\n"

// Encode serializes the model. Schema texts, list entries and offsets, the string heap and the
// header lengths are all regenerated; nothing is written unless every step succeeded.
func (c *Codec) Encode(file *File) ([]byte, error) {
	enc := c.config.Encoding
	lists := file.ListValues()

	for _, typeDefinition := range file.Schema.TypeList() {
		if err := typeDefinition.Validate(); err != nil {
			err := errors.Wrap(err, "ddbin.Encode error")
			return nil, err
		}
	}
	if err := validateNames(file); err != nil {
		err := errors.Wrap(err, "ddbin.Encode error")
		return nil, err
	}

	heap := dstring.NewBuilder(enc)
	if err := drecord.CollectStrings(lists, heap); err != nil {
		err := errors.Wrap(err, "ddbin.Encode error collecting strings")
		return nil, err
	}

	data := lbytes.NewBytesWriter()
	entries := make([]dschema.ListEntry, 0)
	for _, list := range lists {
		typeDefinition, ok := file.Schema.Type(list.Type.Name)
		if !ok || typeDefinition != list.Type {
			return nil, dschema.ErrUnknownType{
				TypeName: list.Type.Name,
				Context:  fmt.Sprintf(`list "%s"`, list.Name),
			}
		}
		entries = append(entries, dschema.ListEntry{
			Name:     list.Name,
			Count:    len(list.Objects),
			TypeName: list.Type.Name,
			Offset:   data.Len(),
		})
		for _, object := range list.Objects {
			if object.Type != list.Type {
				return nil, dschema.ErrSchemaCorrupt{
					Segment: dschema.SegmentLists,
					Reason: fmt.Sprintf(
						`object "%s" of type "%s" is stored in list "%s" of type "%s"`,
						object.Name, object.Type.Name, list.Name, list.Type.Name,
					),
				}
			}
			entries = append(entries, dschema.ListEntry{
				Name:     object.Name,
				TypeName: object.Type.Name,
				Offset:   data.Len(),
			})
			record, err := drecord.EncodeRecord(list.Name, object, heap)
			if err != nil {
				err := errors.Wrap(err, "ddbin.Encode error")
				return nil, err
			}
			data.WriteBytes(record)
		}
	}

	fieldsText, err := dschema.FormatFields(file.Schema)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Encode error")
		return nil, err
	}
	schemaTexts := lbytes.NewBytesWriter()
	typesLength, err := schemaTexts.WriteNTString(dschema.FormatTypes(file.Schema), enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Encode error writing types")
		return nil, err
	}
	fieldsLength, err := schemaTexts.WriteNTString(fieldsText, enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Encode error writing fields")
		return nil, err
	}
	listsLength, err := schemaTexts.WriteNTString(dschema.FormatListEntries(entries), enc)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Encode error writing lists")
		return nil, err
	}

	info, err := c.encodeInfo(file)
	if err != nil {
		err := errors.Wrap(err, "ddbin.Encode error writing info")
		return nil, err
	}

	header := dheader.New(
		file.Header.Signature,
		typesLength, fieldsLength, listsLength,
		heap.Len(), data.Len(),
	)

	buf := bytes.Buffer{}
	buf.Write(dheader.Encode(header))
	buf.Write(schemaTexts.Bytes())
	buf.Write(heap.Bytes())
	buf.Write(data.Bytes())
	buf.Write(info)
	return buf.Bytes(), nil
}

// validateNames makes sure every name survives the grammars; the parsers would otherwise match
// only part of it and the file would decode with different names.
func validateNames(file *File) error {
	for _, typeDefinition := range file.Schema.TypeList() {
		if err := dschema.ValidateName(dschema.SegmentTypes, "type", typeDefinition.Name); err != nil {
			return err
		}
		for _, field := range typeDefinition.Fields.Values() {
			if err := dschema.ValidateName(dschema.SegmentFields, "field", field.Name); err != nil {
				return err
			}
		}
	}
	for _, list := range file.ListValues() {
		if err := dschema.ValidateName(dschema.SegmentLists, "list", list.Name); err != nil {
			return err
		}
		for _, object := range list.Objects {
			if err := dschema.ValidateName(dschema.SegmentLists, "object", object.Name); err != nil {
				return err
			}
		}
	}
	return nil
}

// encodeInfo returns the info bytes as they were read when the text is untouched and already
// declares every field; otherwise the missing declarations are appended and the text re-encoded.
func (c *Codec) encodeInfo(file *File) ([]byte, error) {
	missing := dschema.MissingVarTypeDeclarations(file.Schema, file.Info)
	if len(missing) == 0 && file.infoRaw != nil && file.Info == file.infoDecoded {
		return file.infoRaw, nil
	}

	info := file.Info
	if len(missing) > 0 {
		if info != "" && !strings.HasSuffix(info, "\n") && !strings.HasSuffix(info, "\r") {
			info += infoLineBreak
		}
		info += strings.Join(missing, infoLineBreak) + infoLineBreak
		c.config.Logger.Printf("appended %d var type declarations to the info block", len(missing))
	}
	return lbytes.EncodeText(info, c.config.Encoding)
}

// WriteFile encodes the model and replaces path with the result, see WriteFileAtomic.
func (c *Codec) WriteFile(path string, file *File) error {
	bs, err := c.Encode(file)
	if err != nil {
		err := errors.Wrapf(err, `WriteFile error on "%s"`, path)
		return err
	}
	return WriteFileAtomic(path, bs)
}

// WriteFileAtomic replaces path with bs: the bytes go to a temporary file in the same directory
// which is then renamed over the target, so readers never see a partial file.
func WriteFileAtomic(path string, bs []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		err := errors.Wrapf(err, `WriteFile error creating temporary file for "%s"`, path)
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(bs); err != nil {
		cleanup()
		err := errors.Wrapf(err, `WriteFile error writing "%s"`, tmpPath)
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		err := errors.Wrapf(err, `WriteFile error syncing "%s"`, tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		err := errors.Wrapf(err, `WriteFile error closing "%s"`, tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		err := errors.Wrapf(err, `WriteFile error on "%s"`, tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		err := errors.Wrapf(err, `WriteFile error replacing "%s"`, path)
		return err
	}
	return nil
}
