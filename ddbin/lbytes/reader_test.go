package lbytes

import (
	"runtime"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestBytesReader_ReadInt(t *testing.T) {
	reader := NewBytesReader(
		[]byte{
			3, 1, 4, 3,
			12, 34, 56, 78,
			0xFF, 0xFF, 0xFF, 0xFF,
		},
	)

	resultInt1, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(50594051), resultInt1)

	resultInt2, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(1312301580), resultInt2)

	resultInt3, err := reader.ReadInt()
	assert.NoError(t, err)
	assert.Equal(t, int32(-1), resultInt3)
}

func TestBytesReader_ReadUIntAndFloat(t *testing.T) {
	bs := append(EncodeValueUInt(0xFF00FF00), EncodeValueFloat(-2.5)...)
	reader := NewBytesReader(bs)

	resultUInt, err := reader.ReadUInt()
	assert.NoError(t, err)
	assert.Equal(t, uint32(0xFF00FF00), resultUInt)

	resultFloat, err := reader.ReadFloat()
	assert.NoError(t, err)
	assert.Equal(t, float32(-2.5), resultFloat)
}

func TestBytesReader_OutOfRange(t *testing.T) {
	reader := NewBytesReader([]byte{1, 2})

	_, err := reader.ReadInt()
	require.Error(t, err)
	var errOutOfRange ErrOutOfRange
	require.True(t, errors.As(err, &errOutOfRange))
	assert.Equal(t, 4, errOutOfRange.Wanted)
	assert.Equal(t, 2, errOutOfRange.Remaining)

	// a failed read does not move the cursor
	b, err := reader.ReadUInt8()
	assert.NoError(t, err)
	assert.Equal(t, uint8(1), b)

	bs, err := reader.ReadBytes(0)
	assert.NoError(t, err)
	assert.Empty(t, bs)

	_, err = reader.ReadBytes(-1)
	assert.True(t, errors.As(err, &errOutOfRange))
	assert.Equal(t, -1, errOutOfRange.Wanted)

	assert.Error(t, reader.SeekTo(3))
	assert.NoError(t, reader.SeekTo(2))
	assert.Equal(t, int64(2), reader.Position())
}

func TestBytesReader_ReadString(t *testing.T) {
	encoded, err := EncodeText("가나", korean.EUCKR)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xB0, 0xA1, 0xB3, 0xAA}, encoded)

	bs := append(encoded, 0, 0, 0)
	reader := NewBytesReader(bs)
	result, err := reader.ReadString(len(bs), korean.EUCKR)
	assert.NoError(t, err)
	assert.Equal(t, "가나", result)
}

func TestWriter(t *testing.T) {
	writer := NewBytesWriter()
	writer.WriteInt(-1)
	writer.WriteUInt8(7)
	n, err := writer.WriteNTString("ab", nil)
	assert.NoError(t, err)
	assert.Equal(t, 3, n)
	writer.WriteFloat(1)

	assert.Equal(
		t,
		[]byte{
			0xFF, 0xFF, 0xFF, 0xFF,
			7,
			'a', 'b', 0,
			0x00, 0x00, 0x80, 0x3F,
		},
		writer.Bytes(),
	)
	assert.Equal(t, 12, writer.Len())
}

func TestEncodeText_Unrepresentable(t *testing.T) {
	_, err := EncodeText("😀", korean.EUCKR)
	assert.Error(t, err)
}

func TestBytesReader_OversizedReadDoesNotAllocate(t *testing.T) {
	reader := NewBytesReader(make([]byte, 16))

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err := reader.ReadBytes(2_000_000_000)
	runtime.ReadMemStats(&after)

	var errOutOfRange ErrOutOfRange
	require.True(t, errors.As(err, &errOutOfRange))
	assert.Equal(t, 16, errOutOfRange.Remaining)
	assert.Equal(t, int64(0), reader.Position())
	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(1<<20))
}
