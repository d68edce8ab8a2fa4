package lbytes

import (
	"bytes"
	"encoding/binary"
	"io"
	"math"
	"strings"

	"golang.org/x/text/encoding"
)

func NewBytesReader(bs []byte) *Reader {
	return &Reader{
		Reader: *bytes.NewReader(bs),
	}
}

// Position returns the cursor's offset from the start of the buffer.
func (b *Reader) Position() int64 {
	return b.Size() - int64(b.Len())
}

// SeekTo moves the cursor to an absolute offset. Seeking exactly to the end is allowed.
func (b *Reader) SeekTo(offset int64) error {
	if offset < 0 || offset > b.Size() {
		return ErrOutOfRange{
			Position:  offset,
			Wanted:    0,
			Remaining: 0,
		}
	}
	_, err := b.Seek(offset, io.SeekStart)
	return err
}

func (b *Reader) ReadBytes(n int) ([]byte, error) {
	// bytes.Reader happily returns a short read without an error, so the remaining length is
	// checked up front, before anything sized by n is allocated
	if n < 0 || n > b.Len() {
		return nil, ErrOutOfRange{
			Position:  b.Position(),
			Wanted:    n,
			Remaining: b.Len(),
		}
	}
	bs := make([]byte, n)
	// add return early to avoid EOF error
	// when reader's pointer reach end of file
	// while the number of next bytes to read is 0
	if n == 0 {
		return bs, nil
	}
	_, err := b.Read(bs)
	if err != nil {
		return nil, err
	}
	return bs, nil
}

func (b *Reader) ReadUInt8() (uint8, error) {
	bs, err := b.ReadBytes(ByteSize)
	if err != nil {
		return 0, err
	}
	return bs[0], nil
}

func (b *Reader) ReadInt() (int32, error) {
	result, err := b.ReadUInt()
	if err != nil {
		return 0, err
	}
	return int32(result), nil
}

func (b *Reader) ReadUInt() (uint32, error) {
	bs, err := b.ReadBytes(IntSize)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(bs), nil
}

func (b *Reader) ReadFloat() (float32, error) {
	result, err := b.ReadUInt()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(result), nil
}

// ReadString reads a fixed-length text block, decodes it with enc and trims the NUL padding.
func (b *Reader) ReadString(n int, enc encoding.Encoding) (string, error) {
	bs, err := b.ReadBytes(n)
	if err != nil {
		return "", err
	}
	result, err := DecodeText(bs, enc)
	if err != nil {
		return "", err
	}
	// zero byte trimming is needed since that is how text blocks are laid out in a DDBIN file
	return strings.TrimRight(result, "\u0000"), nil
}

// ReadRemaining reads everything from the cursor to the end of the buffer.
func (b *Reader) ReadRemaining() ([]byte, error) {
	return b.ReadBytes(b.Len())
}
