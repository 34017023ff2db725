// internal/inputs/loader.go
// Package inputs populates predictor input tensors from binary files.
//
// Two formats are supported. Raw inputs are one file per input holding
// exactly prod(shape) float32 values. Packed inputs are a single file with
// an int64 header per tensor followed by its float32 payload. Both use the
// host's native byte order.
package inputs

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mwiater/litebench/internal/appconfig"
	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
)

const float32Size = 4

var byteOrder = binary.NativeEndian

// Loader writes input data into a predictor's input tensors.
type Loader interface {
	Load(p predictor.Predictor) error
}

// FromConfig selects the packed loader when input_file is set and the raw
// per-input loader otherwise.
func FromConfig(cfg appconfig.Config) (Loader, error) {
	if cfg.PackedInput() {
		return &PackedLoader{Path: cfg.InputFile}, nil
	}
	shapes, err := shape.Parse(cfg.InputShape)
	if err != nil {
		return nil, err
	}
	return &RawLoader{Shapes: shapes, Paths: cfg.InputPaths()}, nil
}

// Describe returns a short human readable summary of a loader for logs.
func Describe(l Loader) string {
	switch v := l.(type) {
	case *RawLoader:
		return fmt.Sprintf("raw shapes=%s files=%d", v.Shapes, len(v.Paths))
	case *PackedLoader:
		return fmt.Sprintf("packed file=%s", v.Path)
	default:
		return fmt.Sprintf("%T", l)
	}
}

// readFloats decodes len(dst) floats from r straight into dst.
func readFloats(r io.Reader, dst []float32) error {
	if len(dst) == 0 {
		return nil
	}
	return binary.Read(r, byteOrder, dst)
}

// countingReader tracks the stream offset so truncation errors can point at it.
type countingReader struct {
	r   *bufio.Reader
	off int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.off += int64(n)
	return n, err
}

func isShortRead(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
