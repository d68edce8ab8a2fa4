package ddbin

import (
	"io"
	"log"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/korean"
)

type (
	// Config is threaded through every read and write; there is no global code page.
	Config struct {
		// Encoding is the code page of schema texts, the string heap and the info block.
		Encoding encoding.Encoding
		Logger   *log.Logger
	}
	Codec struct {
		config Config
	}
)

func DefaultConfig() Config {
	return Config{
		Encoding: korean.EUCKR,
		Logger:   log.New(io.Discard, "", 0),
	}
}

func NewCodec(config Config) *Codec {
	if config.Logger == nil {
		config.Logger = log.New(io.Discard, "", 0)
	}
	return &Codec{config: config}
}

func (c *Codec) Encoding() encoding.Encoding {
	return c.config.Encoding
}
