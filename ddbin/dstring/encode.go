package dstring

import (
	"ddbin-editor/ddbin/lbytes"
	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
)

func NewBuilder(enc encoding.Encoding) *Builder {
	return &Builder{
		encoding: enc,
		writer:   lbytes.NewBytesWriter(),
		offsets:  map[string]uint32{},
	}
}

// Add returns the heap offset of value, appending it when it is seen for the first time.
func (b *Builder) Add(value string) (uint32, error) {
	if offset, ok := b.offsets[value]; ok {
		return offset, nil
	}
	offset := uint32(b.writer.Len())
	if _, err := b.writer.WriteNTString(value, b.encoding); err != nil {
		err := errors.Wrap(err, "dstring.Builder.Add error")
		return 0, err
	}
	b.offsets[value] = offset
	return offset, nil
}

// Offset looks up a value that was added before.
func (b *Builder) Offset(value string) (uint32, bool) {
	offset, ok := b.offsets[value]
	return offset, ok
}

// Count is the number of distinct strings in the heap.
func (b *Builder) Count() int {
	return len(b.offsets)
}

func (b *Builder) Len() int {
	return b.writer.Len()
}

func (b *Builder) Bytes() []byte {
	return b.writer.Bytes()
}
