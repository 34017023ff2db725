package predictor

import (
	"testing"

	"github.com/mwiater/litebench/internal/shape"
	"github.com/stretchr/testify/require"
)

type stubPredictor struct {
	outputs []*DenseTensor
}

func (s *stubPredictor) NumInputs() int { return 0 }
func (s *stubPredictor) Input(i int) Tensor { return nil }
func (s *stubPredictor) NumOutputs() int { return len(s.outputs) }
func (s *stubPredictor) Output(i int) Tensor { return s.outputs[i] }
func (s *stubPredictor) Run() error { return nil }

func TestDenseTensorResize(t *testing.T) {
	tensor := NewDenseTensor("x", shape.Shape{2, 3})
	require.Len(t, tensor.Data(), 6)
	require.Equal(t, "x", tensor.Name())

	tensor.MutableData()[0] = 7
	tensor.Resize(shape.Shape{3, 2})
	require.Equal(t, float32(7), tensor.Data()[0], "same element count keeps storage")
	require.Equal(t, shape.Shape{3, 2}, tensor.Shape())

	tensor.Resize(shape.Shape{1, 4})
	require.Len(t, tensor.Data(), 4)
	require.Equal(t, float32(0), tensor.Data()[0])
}

func TestDenseTensorResizeRejectsOverflow(t *testing.T) {
	tensor := NewDenseTensor("x", shape.Shape{2})
	require.Panics(t, func() { tensor.Resize(shape.Shape{1 << 62, 4}) })
	require.Panics(t, func() { tensor.Resize(shape.Shape{-1, 2}) })
	require.Equal(t, shape.Shape{2}, tensor.Shape(), "failed resize keeps the old shape")
	require.Len(t, tensor.Data(), 2)
}

func TestOutputsSnapshot(t *testing.T) {
	out := NewDenseTensor("score", shape.Shape{1, 2})
	copy(out.MutableData(), []float32{0.25, 0.75})
	p := &stubPredictor{outputs: []*DenseTensor{out}}

	descs := Outputs(p)
	require.Len(t, descs, 1)
	require.Equal(t, "score", descs[0].Name)
	require.Equal(t, shape.Shape{1, 2}, descs[0].Shape)
	require.Equal(t, []float32{0.25, 0.75}, descs[0].Values)

	out.MutableData()[0] = 9
	require.Equal(t, float32(0.25), descs[0].Values[0], "descriptor must not alias tensor storage")
}

func TestPowerMode(t *testing.T) {
	require.Equal(t, "no-bind", PowerNoBind.String())
	require.Equal(t, "big-cluster", PowerMode(0).String())
	require.True(t, PowerAllCores.Valid())
	require.False(t, PowerMode(4).Valid())
	require.Equal(t, "power-mode(7)", PowerMode(7).String())
}
