package dheader

import (
	"testing"

	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createFileBytes(header Header, trailingLength int) []byte {
	bs := Encode(header)
	return append(bs, lbytes.CreateZeroBytes(trailingLength)...)
}

func TestDecode(t *testing.T) {
	header := New([]byte(DefaultSignature), 6, 20, 0, 3, 12)
	bs := createFileBytes(header, 6+20+3+12)

	decoded, err := Decode(lbytes.NewBytesReader(bs))
	require.NoError(t, err)
	assert.Equal(t, header, *decoded)
	assert.Equal(t, int32(6+20+0+24), decoded.HeaderAreaLength)
	assert.Equal(t, "2.0.48", decoded.Version())
}

func TestDecode_TooShort(t *testing.T) {
	_, err := Decode(lbytes.NewBytesReader([]byte(DefaultSignature)))
	var errMalformedHeader ErrMalformedHeader
	assert.True(t, errors.As(err, &errMalformedHeader))
}

func TestDecode_BadSignature(t *testing.T) {
	header := New([]byte(DefaultSignature), 0, 0, 0, 0, 0)
	bs := createFileBytes(header, 0)
	copy(bs, "NOTADDBINFILE000")

	_, err := Decode(lbytes.NewBytesReader(bs))
	var errMalformedHeader ErrMalformedHeader
	require.True(t, errors.As(err, &errMalformedHeader))
	assert.Contains(t, errMalformedHeader.Reason, "invalid signature")
}

func TestDecode_NegativeLength(t *testing.T) {
	header := New([]byte(DefaultSignature), 0, 0, 0, 0, 0)
	header.DataLength = -4
	bs := createFileBytes(header, 0)

	_, err := Decode(lbytes.NewBytesReader(bs))
	var errMalformedHeader ErrMalformedHeader
	require.True(t, errors.As(err, &errMalformedHeader))
	assert.Contains(t, errMalformedHeader.Reason, "data_length")
}

func TestDecode_SegmentsPastEnd(t *testing.T) {
	header := New([]byte(DefaultSignature), 0, 0, 0, 0, 100)
	bs := createFileBytes(header, 10)

	_, err := Decode(lbytes.NewBytesReader(bs))
	var errMalformedHeader ErrMalformedHeader
	assert.True(t, errors.As(err, &errMalformedHeader))
}

func TestNew_FallsBackToDefaultSignature(t *testing.T) {
	header := New(nil, 1, 1, 1, 0, 0)
	assert.Equal(t, []byte(DefaultSignature), header.Signature)
	assert.Len(t, Encode(header), DefaultHeaderSize)
}
