package inputs

import (
	"bufio"
	"fmt"
	"math"
	"os"

	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
)

// RawLoader loads one flat float32 file per input. Paths[i] feeds input i with Shapes[i].
type RawLoader struct {
	Shapes shape.Spec
	Paths  []string
}

// Load validates every file against its shape and copies it into the matching input tensor.
func (l *RawLoader) Load(p predictor.Predictor) error {
	if len(l.Shapes) != p.NumInputs() {
		return &AssertionError{Reason: fmt.Sprintf("input_shape declares %d inputs, model has %d", len(l.Shapes), p.NumInputs())}
	}
	if len(l.Paths) != len(l.Shapes) {
		return &AssertionError{Reason: fmt.Sprintf("got %d input files for %d shapes", len(l.Paths), len(l.Shapes))}
	}
	for i, dims := range l.Shapes {
		if err := loadRawFile(l.Paths[i], dims, p.Input(i)); err != nil {
			return err
		}
	}
	return nil
}

func loadRawFile(path string, dims shape.Shape, tensor predictor.Tensor) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input file %s: %w", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat input file %s: %w", path, err)
	}

	elems, ok := boundedProduction(dims, info.Size()/float32Size)
	if !ok {
		want := int64(-1)
		if n, fits := dims.CheckedProduction(); fits && n <= math.MaxInt64/float32Size {
			want = n * float32Size
		}
		return &SizeMismatchError{Path: path, Shape: dims.Clone(), WantBytes: want, GotBytes: info.Size()}
	}
	want := elems * float32Size
	if info.Size() != want {
		return &SizeMismatchError{Path: path, Shape: dims.Clone(), WantBytes: want, GotBytes: info.Size()}
	}

	tensor.Resize(dims)
	cr := &countingReader{r: bufio.NewReader(file)}
	if err := readFloats(cr, tensor.MutableData()); err != nil {
		if isShortRead(err) {
			return &TruncatedFileError{Path: path, Step: "tensor data", Offset: cr.off, Need: want, Have: cr.off}
		}
		return fmt.Errorf("read input file %s: %w", path, err)
	}
	return nil
}
