package inputs

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwiater/litebench/internal/appconfig"
	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
	"github.com/stretchr/testify/require"
)

type fakePredictor struct {
	inputs []*predictor.DenseTensor
}

func newFakePredictor(n int) *fakePredictor {
	p := &fakePredictor{}
	for i := 0; i < n; i++ {
		p.inputs = append(p.inputs, predictor.NewDenseTensor("in", shape.Shape{1}))
	}
	return p
}

func (f *fakePredictor) NumInputs() int { return len(f.inputs) }
func (f *fakePredictor) Input(i int) predictor.Tensor { return f.inputs[i] }
func (f *fakePredictor) NumOutputs() int { return 0 }
func (f *fakePredictor) Output(i int) predictor.Tensor { return nil }
func (f *fakePredictor) Run() error { return nil }

func sequence(n int, start float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = start + float32(i)
	}
	return out
}

func writeRaw(t *testing.T, values []float32) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, byteOrder, values))
	path := filepath.Join(t.TempDir(), "input.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

type packedTensor struct {
	dims []int64
	data []float32
}

func encodePacked(t *testing.T, count int64, tensors []packedTensor) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, byteOrder, count))
	for _, pt := range tensors {
		require.NoError(t, binary.Write(&buf, byteOrder, int64(len(pt.dims))))
		if len(pt.dims) > 0 {
			require.NoError(t, binary.Write(&buf, byteOrder, pt.dims))
		}
		if len(pt.data) > 0 {
			require.NoError(t, binary.Write(&buf, byteOrder, pt.data))
		}
	}
	return buf.Bytes()
}

func writePacked(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inputs.bin")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestRawLoaderLoadsFloatsInOrder(t *testing.T) {
	values := sequence(12, 0.5)
	path := writeRaw(t, values)
	p := newFakePredictor(1)

	loader := &RawLoader{Shapes: shape.Spec{{1, 3, 2, 2}}, Paths: []string{path}}
	require.NoError(t, loader.Load(p))

	require.Equal(t, shape.Shape{1, 3, 2, 2}, p.inputs[0].Shape())
	require.Equal(t, values, p.inputs[0].Data())
}

func TestRawLoaderMultipleInputs(t *testing.T) {
	first := writeRaw(t, sequence(6, 1))
	second := writeRaw(t, sequence(4, 100))
	p := newFakePredictor(2)

	loader := &RawLoader{Shapes: shape.Spec{{2, 3}, {4}}, Paths: []string{first, second}}
	require.NoError(t, loader.Load(p))
	require.Equal(t, sequence(6, 1), p.inputs[0].Data())
	require.Equal(t, sequence(4, 100), p.inputs[1].Data())
}

func TestRawLoaderSizeMismatch(t *testing.T) {
	path := writeRaw(t, sequence(10, 0))
	p := newFakePredictor(1)

	err := (&RawLoader{Shapes: shape.Spec{{1, 3, 2, 2}}, Paths: []string{path}}).Load(p)
	var sizeErr *SizeMismatchError
	require.True(t, errors.As(err, &sizeErr), "got %v", err)
	require.Equal(t, int64(48), sizeErr.WantBytes)
	require.Equal(t, int64(40), sizeErr.GotBytes)
	require.Equal(t, path, sizeErr.Path)
	require.Contains(t, err.Error(), "[1, 3, 2, 2]")
}

func TestRawLoaderRejectsOverflowingShape(t *testing.T) {
	path := writeRaw(t, nil)
	p := newFakePredictor(1)

	err := (&RawLoader{Shapes: shape.Spec{{1 << 62, 4}}, Paths: []string{path}}).Load(p)
	var sizeErr *SizeMismatchError
	require.True(t, errors.As(err, &sizeErr), "got %v", err)
	require.Equal(t, int64(-1), sizeErr.WantBytes)
	require.Equal(t, int64(0), sizeErr.GotBytes)
	require.Contains(t, err.Error(), "too large")
	require.Equal(t, shape.Shape{1}, p.inputs[0].Shape(), "tensor must not be resized")

	// Fits in int64 elements but not in bytes.
	err = (&RawLoader{Shapes: shape.Spec{{1 << 61, 2}}, Paths: []string{path}}).Load(p)
	require.True(t, errors.As(err, &sizeErr), "got %v", err)
	require.Equal(t, int64(-1), sizeErr.WantBytes)
}

func TestRawLoaderCountMismatch(t *testing.T) {
	path := writeRaw(t, sequence(4, 0))
	var assertErr *AssertionError

	err := (&RawLoader{Shapes: shape.Spec{{4}, {4}}, Paths: []string{path, path}}).Load(newFakePredictor(1))
	require.True(t, errors.As(err, &assertErr), "got %v", err)

	err = (&RawLoader{Shapes: shape.Spec{{4}}, Paths: nil}).Load(newFakePredictor(1))
	require.True(t, errors.As(err, &assertErr), "got %v", err)
}

func TestRawLoaderMissingFile(t *testing.T) {
	err := (&RawLoader{Shapes: shape.Spec{{4}}, Paths: []string{filepath.Join(t.TempDir(), "nope.bin")}}).Load(newFakePredictor(1))
	require.Error(t, err)
	require.True(t, errors.Is(err, os.ErrNotExist))
}

func TestPackedLoaderPopulatesInputs(t *testing.T) {
	tensors := []packedTensor{
		{dims: []int64{1, 3, 2}, data: sequence(6, 1)},
		{dims: []int64{2, 2}, data: sequence(4, 10)},
	}
	path := writePacked(t, encodePacked(t, 2, tensors))
	p := newFakePredictor(2)

	require.NoError(t, (&PackedLoader{Path: path}).Load(p))
	for i, pt := range tensors {
		require.Equal(t, shape.Shape(pt.dims), p.inputs[i].Shape())
		require.Len(t, p.inputs[i].Data(), int(shape.Shape(pt.dims).Production()))
		require.Equal(t, pt.data, p.inputs[i].Data())
	}
}

func TestPackedLoaderZeroSizedTensor(t *testing.T) {
	path := writePacked(t, encodePacked(t, 1, []packedTensor{{dims: []int64{0, 5}}}))
	p := newFakePredictor(1)
	require.NoError(t, (&PackedLoader{Path: path}).Load(p))
	require.Equal(t, shape.Shape{0, 5}, p.inputs[0].Shape())
	require.Empty(t, p.inputs[0].Data())
}

func TestPackedLoaderInputCountMismatch(t *testing.T) {
	path := writePacked(t, encodePacked(t, 3, nil))
	err := (&PackedLoader{Path: path}).Load(newFakePredictor(2))
	var assertErr *AssertionError
	require.True(t, errors.As(err, &assertErr), "got %v", err)
	require.Contains(t, err.Error(), "file holds 3 inputs, model has 2")
}

func TestPackedLoaderTruncation(t *testing.T) {
	full := encodePacked(t, 1, []packedTensor{{dims: []int64{2, 2}, data: sequence(4, 0)}})
	cases := map[string][]byte{
		"empty":        {},
		"short header": full[:4],
		"no rank":      full[:8],
		"short dims":   full[:20],
		"short data":   full[:len(full)-2],
	}
	for name, data := range cases {
		path := writePacked(t, data)
		err := (&PackedLoader{Path: path}).Load(newFakePredictor(1))
		var truncErr *TruncatedFileError
		require.True(t, errors.As(err, &truncErr), "%s: got %v", name, err)
		require.Equal(t, path, truncErr.Path)
	}
}

func TestPackedLoaderRejectsHugeShapesWithoutAllocating(t *testing.T) {
	data := encodePacked(t, 1, []packedTensor{{dims: []int64{1 << 40, 1 << 40}}})
	err := (&PackedLoader{Path: writePacked(t, data)}).Load(newFakePredictor(1))
	var truncErr *TruncatedFileError
	require.True(t, errors.As(err, &truncErr), "got %v", err)
	require.Less(t, truncErr.Need, int64(0))

	data = encodePacked(t, 1, []packedTensor{{dims: []int64{1 << 50}}})
	data = data[:16]
	err = (&PackedLoader{Path: writePacked(t, data)}).Load(newFakePredictor(1))
	require.True(t, errors.As(err, &truncErr), "got %v", err)
}

func TestPackedLoaderNegativeValues(t *testing.T) {
	var assertErr *AssertionError
	err := (&PackedLoader{Path: writePacked(t, encodePacked(t, 1, []packedTensor{{dims: []int64{2, -1}}}))}).Load(newFakePredictor(1))
	require.True(t, errors.As(err, &assertErr), "got %v", err)

	var buf bytes.Buffer
	require.NoError(t, binary.Write(&buf, byteOrder, []int64{1, -3}))
	err = (&PackedLoader{Path: writePacked(t, buf.Bytes())}).Load(newFakePredictor(1))
	require.True(t, errors.As(err, &assertErr), "got %v", err)
}

func TestFromConfig(t *testing.T) {
	cfg := appconfig.Defaults()
	cfg.InputPath = "a.bin"
	loader, err := FromConfig(cfg)
	require.NoError(t, err)
	raw, ok := loader.(*RawLoader)
	require.True(t, ok)
	require.Equal(t, shape.Spec{{1, 3, 224, 224}}, raw.Shapes)
	require.Equal(t, []string{"a.bin"}, raw.Paths)
	require.Contains(t, Describe(loader), "raw shapes=1,3,224,224 files=1")

	cfg.InputFile = "all.bin"
	loader, err = FromConfig(cfg)
	require.NoError(t, err)
	require.Equal(t, &PackedLoader{Path: "all.bin"}, loader)
	require.Equal(t, "packed file=all.bin", Describe(loader))

	cfg.InputFile = ""
	cfg.InputShape = "1,x"
	_, err = FromConfig(cfg)
	var pe *shape.ParseError
	require.True(t, errors.As(err, &pe))
}
