package cli

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"ddbin-editor/ddbin"
	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
)

const gzipExtension = ".gz"

// DestinationPath maps a source file to its output next to it, or inside dir when one is given.
func DestinationPath(source string, dir string, extension string, compressed bool) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source)) + extension
	if compressed {
		base += gzipExtension
	}
	if dir == "" {
		dir = filepath.Dir(source)
	}
	return filepath.Join(dir, base)
}

// WriteOutput renders the output with write, gzip compressed when asked, and replaces path
// atomically once rendering succeeded. An existing file is only replaced with force.
func WriteOutput(path string, force bool, compressed bool, write func(w io.Writer) error) error {
	if CheckExistence(path) && !force {
		return errors.Errorf(`destination "%s" exists, use --force to overwrite it`, path)
	}

	buf := bytes.Buffer{}
	if compressed {
		gz := gzip.NewWriter(&buf)
		if err := write(gz); err != nil {
			return err
		}
		if err := gz.Close(); err != nil {
			err := errors.Wrap(err, "WriteOutput error compressing")
			return err
		}
	} else if err := write(&buf); err != nil {
		return err
	}

	if err := ddbin.WriteFileAtomic(path, buf.Bytes()); err != nil {
		err := errors.Wrap(err, "WriteOutput error")
		return err
	}
	return nil
}
