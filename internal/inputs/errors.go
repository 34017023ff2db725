package inputs

import (
	"fmt"

	"github.com/mwiater/litebench/internal/shape"
)

// SizeMismatchError reports a raw input file whose length disagrees with its declared shape.
// WantBytes is negative when the shape's byte size does not fit in an int64.
type SizeMismatchError struct {
	Path      string
	Shape     shape.Shape
	WantBytes int64
	GotBytes  int64
}

func (e *SizeMismatchError) Error() string {
	if e.WantBytes < 0 {
		return fmt.Sprintf("size not matching shape: %s: shape %s is too large to address, file has %d bytes",
			e.Path, e.Shape, e.GotBytes)
	}
	return fmt.Sprintf("size not matching shape: %s: shape %s needs %d bytes, file has %d",
		e.Path, e.Shape, e.WantBytes, e.GotBytes)
}

// TruncatedFileError reports a stream that ended before a read step completed.
// Need is negative when the step asked for more bytes than can be addressed.
type TruncatedFileError struct {
	Path   string
	Step   string
	Offset int64
	Need   int64
	Have   int64
}

func (e *TruncatedFileError) Error() string {
	if e.Need < 0 {
		return fmt.Sprintf("truncated input %s at offset %d: %s exceeds the %d remaining bytes",
			e.Path, e.Offset, e.Step, e.Have)
	}
	return fmt.Sprintf("truncated input %s at offset %d: %s needs %d bytes, %d remain",
		e.Path, e.Offset, e.Step, e.Need, e.Have)
}

// AssertionError reports inputs that are structurally incompatible with the predictor.
type AssertionError struct {
	Path   string
	Reason string
}

func (e *AssertionError) Error() string {
	if e.Path == "" {
		return "input assertion failed: " + e.Reason
	}
	return fmt.Sprintf("input assertion failed: %s: %s", e.Path, e.Reason)
}
