package dheader

import (
	"ddbin-editor/ddbin/lbytes"
)

// New computes a header for the given segment lengths. The schema segment lengths
// include their NUL terminators.
func New(signature []byte, typesLength, fieldsLength, listsLength, stringsLength, dataLength int) Header {
	if !IsValidSignature(signature) || len(signature) != SignatureLength {
		signature = []byte(DefaultSignature)
	}
	return Header{
		Signature:        signature,
		HeaderAreaLength: int32(typesLength + fieldsLength + listsLength + NumLengths*lbytes.IntSize),
		StringsLength:    int32(stringsLength),
		DataLength:       int32(dataLength),
		TypesLength:      int32(typesLength),
		FieldsLength:     int32(fieldsLength),
		ListsLength:      int32(listsLength),
	}
}

func Encode(header Header) []byte {
	bs := make([]byte, 0, DefaultHeaderSize)
	bs = append(bs, header.Signature...)
	bs = append(bs, lbytes.EncodeValueInt(header.HeaderAreaLength)...)
	bs = append(bs, lbytes.EncodeValueInt(header.StringsLength)...)
	bs = append(bs, lbytes.EncodeValueInt(header.DataLength)...)
	bs = append(bs, lbytes.EncodeValueInt(header.TypesLength)...)
	bs = append(bs, lbytes.EncodeValueInt(header.FieldsLength)...)
	bs = append(bs, lbytes.EncodeValueInt(header.ListsLength)...)
	return bs
}
