package dstring

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/korean"
)

func TestResolve(t *testing.T) {
	heap := []byte("origin\x00far\x00\x00")

	str, err := Resolve(heap, 0, korean.EUCKR)
	assert.NoError(t, err)
	assert.Equal(t, "origin", str)

	str, err = Resolve(heap, 7, korean.EUCKR)
	assert.NoError(t, err)
	assert.Equal(t, "far", str)

	str, err = Resolve(heap, 9, korean.EUCKR)
	assert.NoError(t, err)
	assert.Equal(t, "r", str)

	str, err = Resolve(heap, 11, korean.EUCKR)
	assert.NoError(t, err)
	assert.Equal(t, "", str)
}

func TestResolve_Failures(t *testing.T) {
	var errStringResolution ErrStringResolution

	_, err := Resolve([]byte("abc\x00"), 4, nil)
	require.True(t, errors.As(err, &errStringResolution))
	assert.Equal(t, int64(4), errStringResolution.Offset)

	_, err = Resolve([]byte("abc\x00"), -1, nil)
	assert.True(t, errors.As(err, &errStringResolution))

	_, err = Resolve([]byte("abc"), 0, nil)
	require.True(t, errors.As(err, &errStringResolution))
	assert.Equal(t, "no terminating NUL byte", errStringResolution.Reason)
}

func TestBuilder_Deduplicates(t *testing.T) {
	builder := NewBuilder(korean.EUCKR)

	offsets := make([]uint32, 0)
	for _, value := range []string{"walk", "가", "walk", "", "walk", "run"} {
		offset, err := builder.Add(value)
		require.NoError(t, err)
		offsets = append(offsets, offset)
	}

	// "가" takes two bytes in EUC-KR
	assert.Equal(t, []uint32{0, 5, 0, 8, 0, 9}, offsets)
	assert.Equal(t, []byte("walk\x00\xB0\xA1\x00\x00run\x00"), builder.Bytes())
	assert.Equal(t, 4, builder.Count())

	for _, value := range []string{"walk", "가", "", "run"} {
		offset, ok := builder.Offset(value)
		require.True(t, ok)
		resolved, err := Resolve(builder.Bytes(), int64(offset), korean.EUCKR)
		require.NoError(t, err)
		assert.Equal(t, value, resolved)
	}
}

func TestBuilder_Unencodable(t *testing.T) {
	builder := NewBuilder(korean.EUCKR)
	_, err := builder.Add("😀")
	assert.Error(t, err)
	assert.Equal(t, 0, builder.Len())
}
