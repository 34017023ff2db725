package inputs

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"os"

	"github.com/mwiater/litebench/internal/logging"
	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
)

const int64Size = 8

// PackedLoader reads every input from a single file laid out as
//
//	int64 num_inputs
//	repeat num_inputs:
//	    int64 num_dims
//	    int64[num_dims] dims
//	    float32[prod(dims)] data
type PackedLoader struct {
	Path string
}

// packedStream reads the packed layout sequentially, checking each step
// against the bytes left in the file before touching the reader.
type packedStream struct {
	path string
	size int64
	r    *countingReader
}

func (s *packedStream) remaining() int64 { return s.size - s.r.off }

func (s *packedStream) require(step string, need int64) error {
	if have := s.remaining(); need < 0 || need > have {
		return &TruncatedFileError{Path: s.path, Step: step, Offset: s.r.off, Need: need, Have: have}
	}
	return nil
}

func (s *packedStream) readInt64s(step string, dst []int64) error {
	if err := s.require(step, int64(len(dst))*int64Size); err != nil {
		return err
	}
	if len(dst) == 0 {
		return nil
	}
	if err := binary.Read(s.r, byteOrder, dst); err != nil {
		if isShortRead(err) {
			return &TruncatedFileError{Path: s.path, Step: step, Offset: s.r.off, Need: int64(len(dst)) * int64Size, Have: s.remaining()}
		}
		return fmt.Errorf("read %s from %s: %w", step, s.path, err)
	}
	return nil
}

func (s *packedStream) readFloats(step string, dst []float32) error {
	if err := s.require(step, int64(len(dst))*float32Size); err != nil {
		return err
	}
	if err := readFloats(s.r, dst); err != nil {
		if isShortRead(err) {
			return &TruncatedFileError{Path: s.path, Step: step, Offset: s.r.off, Need: int64(len(dst)) * float32Size, Have: s.remaining()}
		}
		return fmt.Errorf("read %s from %s: %w", step, s.path, err)
	}
	return nil
}

// Load resizes and fills each predictor input in file order.
func (l *PackedLoader) Load(p predictor.Predictor) error {
	file, err := os.Open(l.Path)
	if err != nil {
		return fmt.Errorf("open input file %s: %w", l.Path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat input file %s: %w", l.Path, err)
	}
	s := &packedStream{path: l.Path, size: info.Size(), r: &countingReader{r: bufio.NewReader(file)}}

	header := make([]int64, 1)
	if err := s.readInt64s("num_inputs", header); err != nil {
		return err
	}
	if header[0] != int64(p.NumInputs()) {
		return &AssertionError{Path: l.Path, Reason: fmt.Sprintf("file holds %d inputs, model has %d", header[0], p.NumInputs())}
	}

	for i := 0; i < p.NumInputs(); i++ {
		if err := s.readInput(i, p.Input(i)); err != nil {
			return err
		}
	}

	if rest := s.remaining(); rest > 0 {
		logging.LogEvent("packed input %s: ignoring %d trailing bytes", l.Path, rest)
	}
	return nil
}

func (s *packedStream) readInput(i int, tensor predictor.Tensor) error {
	rank := make([]int64, 1)
	if err := s.readInt64s(fmt.Sprintf("input %d num_dims", i), rank); err != nil {
		return err
	}
	if rank[0] < 0 {
		return &AssertionError{Path: s.path, Reason: fmt.Sprintf("input %d has negative num_dims %d", i, rank[0])}
	}
	if rank[0] > s.remaining()/int64Size {
		return &TruncatedFileError{Path: s.path, Step: fmt.Sprintf("input %d dims", i), Offset: s.r.off, Need: -1, Have: s.remaining()}
	}

	dims := make(shape.Shape, rank[0])
	if err := s.readInt64s(fmt.Sprintf("input %d dims", i), dims); err != nil {
		return err
	}
	for _, d := range dims {
		if d < 0 {
			return &AssertionError{Path: s.path, Reason: fmt.Sprintf("input %d has negative dimension in %s", i, dims)}
		}
	}

	step := fmt.Sprintf("input %d data %s", i, dims)
	if _, ok := boundedProduction(dims, s.remaining()/float32Size); !ok {
		return &TruncatedFileError{Path: s.path, Step: step, Offset: s.r.off, Need: -1, Have: s.remaining()}
	}

	tensor.Resize(dims)
	return s.readFloats(step, tensor.MutableData())
}

// boundedProduction returns prod(dims) if it does not exceed limit.
func boundedProduction(dims shape.Shape, limit int64) (int64, bool) {
	for _, d := range dims {
		if d == 0 {
			return 0, true
		}
	}
	n := int64(1)
	for _, d := range dims {
		if n > limit/d {
			return 0, false
		}
		n *= d
	}
	return n, n <= limit
}
