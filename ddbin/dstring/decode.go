package dstring

import (
	"bytes"

	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
)

// Resolve decodes the string that starts at offset and runs up to the next NUL byte.
func Resolve(heap []byte, offset int64, enc encoding.Encoding) (string, error) {
	if offset < 0 || offset >= int64(len(heap)) {
		return "", ErrStringResolution{
			Offset:     offset,
			HeapLength: len(heap),
			Reason:     "offset is outside the heap",
		}
	}
	nullIndex := bytes.IndexByte(heap[offset:], 0)
	if nullIndex == -1 {
		return "", ErrStringResolution{
			Offset:     offset,
			HeapLength: len(heap),
			Reason:     "no terminating NUL byte",
		}
	}
	str, err := lbytes.DecodeText(heap[offset:offset+int64(nullIndex)], enc)
	if err != nil {
		return "", errors.Wrap(
			ErrStringResolution{
				Offset:     offset,
				HeapLength: len(heap),
				Reason:     err.Error(),
			},
			"dstring.Resolve error",
		)
	}
	return str, nil
}
