package dheader

type (
	// Header is the fixed-size prefix of a DDBIN container: a text signature followed
	// by six little-endian lengths.
	Header struct {
		Signature        []byte `json:"signature"`
		HeaderAreaLength int32  `json:"header_area_length"`
		StringsLength    int32  `json:"strings_length"`
		DataLength       int32  `json:"data_length"`
		TypesLength      int32  `json:"types_length"`
		FieldsLength     int32  `json:"fields_length"`
		ListsLength      int32  `json:"lists_length"`
	}
)

const (
	SignatureLength   = 16
	NumLengths        = 6
	DefaultHeaderSize = SignatureLength + NumLengths*4
	// MinFileSize is the shortest input that can possibly hold a header.
	MinFileSize      = 40
	SignaturePrefix  = "DDBINFILE"
	DefaultSignature = "DDBINFILE2 0  48"
)
