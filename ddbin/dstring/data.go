// Package dstring resolves and builds the string heap: back-to-back NUL-terminated strings
// in the container's code page, referenced from records by byte offset.
package dstring

import (
	"ddbin-editor/ddbin/lbytes"
	"golang.org/x/text/encoding"
)

type (
	// Builder lays out a deduplicated heap. A value keeps the offset of its first occurrence.
	Builder struct {
		encoding encoding.Encoding
		writer   *lbytes.Writer
		offsets  map[string]uint32
	}
	ErrStringResolution struct {
		Offset     int64
		HeapLength int
		Reason     string
	}
)
