package lbytes

import (
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
)

// DecodeText converts bytes in the given code page to a Go string.
// A nil encoding leaves the bytes untouched.
func DecodeText(bs []byte, enc encoding.Encoding) (string, error) {
	if enc == nil {
		return string(bs), nil
	}
	decoded, err := enc.NewDecoder().Bytes(bs)
	if err != nil {
		err := errors.Wrap(err, "DecodeText error")
		return "", err
	}
	return string(decoded), nil
}

// EncodeText converts a Go string to bytes in the given code page.
// Characters that the code page cannot represent are an error.
func EncodeText(s string, enc encoding.Encoding) ([]byte, error) {
	if enc == nil {
		return []byte(s), nil
	}
	encoded, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		err := errors.Wrapf(err, `EncodeText error encoding "%s"`, s)
		return nil, err
	}
	return encoded, nil
}
