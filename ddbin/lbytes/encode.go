package lbytes

import (
	"encoding/binary"
	"math"

	"golang.org/x/text/encoding"
)

func EncodeValueInt(value int32) []byte {
	return EncodeValueUInt(uint32(value))
}

func EncodeValueUInt(value uint32) []byte {
	bs := make([]byte, IntSize)
	binary.LittleEndian.PutUint32(bs, value)
	return bs
}

func EncodeValueFloat(value float32) []byte {
	return EncodeValueUInt(math.Float32bits(value))
}

func EncodeValueBool(value bool) []byte {
	if value {
		return []byte{1}
	} else {
		return []byte{0}
	}
}

func CreateZeroBytes(n int) []byte {
	return make([]byte, n)
}

func NewBytesWriter() *Writer {
	return &Writer{}
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) WriteBytes(bs []byte) {
	w.buf.Write(bs)
}

func (w *Writer) WriteUInt8(value uint8) {
	w.buf.WriteByte(value)
}

func (w *Writer) WriteInt(value int32) {
	w.buf.Write(EncodeValueInt(value))
}

func (w *Writer) WriteUInt(value uint32) {
	w.buf.Write(EncodeValueUInt(value))
}

func (w *Writer) WriteFloat(value float32) {
	w.buf.Write(EncodeValueFloat(value))
}

// WriteString writes s in the given code page without a terminator and returns the byte count.
func (w *Writer) WriteString(s string, enc encoding.Encoding) (int, error) {
	bs, err := EncodeText(s, enc)
	if err != nil {
		return 0, err
	}
	w.buf.Write(bs)
	return len(bs), nil
}

// WriteNTString writes s in the given code page followed by a NUL byte and returns the byte count.
func (w *Writer) WriteNTString(s string, enc encoding.Encoding) (int, error) {
	n, err := w.WriteString(s, enc)
	if err != nil {
		return 0, err
	}
	w.buf.WriteByte(0)
	return n + 1, nil
}
