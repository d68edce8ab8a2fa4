package dheader

import (
	"bytes"
	"fmt"
	"strings"

	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
)

func IsValidSignature(bs []byte) bool {
	return len(bs) >= len(SignaturePrefix) &&
		bytes.Equal(bs[:len(SignaturePrefix)], []byte(SignaturePrefix))
}

func createSignatureReadFunction(reader *lbytes.Reader) lbytes.ReadFunction {
	return func() (any, error) {
		signatureBytes, err := reader.ReadBytes(SignatureLength)
		if err != nil {
			return nil, err
		}
		if !IsValidSignature(signatureBytes) {
			return nil, ErrMalformedHeader{
				Reason: fmt.Sprintf(
					`invalid signature: expected prefix "%s", got "%s"`,
					SignaturePrefix, string(signatureBytes),
				),
			}
		}
		return signatureBytes, nil
	}
}

func Decode(reader *lbytes.Reader) (*Header, error) {
	if reader.Size() < MinFileSize {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf("file is %d bytes long; at least %d bytes are needed", reader.Size(), MinFileSize),
		}
	}

	readSignature := createSignatureReadFunction(reader)
	readInt := lbytes.CreateIntReadFunction(reader)

	headerInstructions := []lbytes.Instruction{
		{Key: "signature", ReadFunction: readSignature},
		{Key: "header_area_length", ReadFunction: readInt},
		{Key: "strings_length", ReadFunction: readInt},
		{Key: "data_length", ReadFunction: readInt},
		{Key: "types_length", ReadFunction: readInt},
		{Key: "fields_length", ReadFunction: readInt},
		{Key: "lists_length", ReadFunction: readInt},
	}

	header, err := lbytes.ExecuteInstructions[Header](headerInstructions)
	if err != nil {
		var errMalformedHeader ErrMalformedHeader
		if errors.As(err, &errMalformedHeader) {
			return nil, errMalformedHeader
		}
		return nil, ErrMalformedHeader{Reason: err.Error()}
	}

	lengths := []struct {
		Key   string
		Value int32
	}{
		{"strings_length", header.StringsLength},
		{"data_length", header.DataLength},
		{"types_length", header.TypesLength},
		{"fields_length", header.FieldsLength},
		{"lists_length", header.ListsLength},
	}
	for _, length := range lengths {
		if length.Value < 0 {
			return nil, ErrMalformedHeader{
				Reason: fmt.Sprintf(`negative value %d for "%s"`, length.Value, length.Key),
			}
		}
	}
	segmentsLength := int64(header.StringsLength) + int64(header.DataLength) +
		int64(header.TypesLength) + int64(header.FieldsLength) + int64(header.ListsLength)
	if segmentsLength > int64(reader.Len()) {
		return nil, ErrMalformedHeader{
			Reason: fmt.Sprintf(
				"segments need %d bytes but only %d bytes follow the header",
				segmentsLength, reader.Len(),
			),
		}
	}

	return header, nil
}

// Version turns a signature such as "DDBINFILE2 0  48" into "2.0.48".
func (h Header) Version() string {
	if !IsValidSignature(h.Signature) {
		return ""
	}
	version := strings.TrimRight(string(h.Signature[len(SignaturePrefix):]), "\u0000")
	version = strings.TrimSpace(version)
	version = strings.ReplaceAll(version, "  ", " ")
	version = strings.ReplaceAll(version, " ", ".")
	return version
}
