// Package lbytes holds the little-endian cursor used to read and write DDBIN containers.
package lbytes

import (
	"bytes"
)

type (
	Reader struct {
		bytes.Reader
	}
	Writer struct {
		buf bytes.Buffer
	}
	Instruction struct {
		Key          string
		ReadFunction ReadFunction
	}
	ReadFunction func() (any, error)
)

const (
	IntSize   = 4
	FloatSize = 4
	ByteSize  = 1
)
