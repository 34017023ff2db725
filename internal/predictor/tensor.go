package predictor

import (
	"fmt"
	"math"

	"github.com/mwiater/litebench/internal/shape"
)

// DenseTensor is a contiguous float32 tensor held in memory.
type DenseTensor struct {
	name string
	dims shape.Shape
	data []float32
}

// NewDenseTensor allocates a zeroed tensor of the given shape.
func NewDenseTensor(name string, dims shape.Shape) *DenseTensor {
	t := &DenseTensor{name: name}
	t.Resize(dims)
	return t
}

func (t *DenseTensor) Name() string { return t.name }

func (t *DenseTensor) Shape() shape.Shape { return t.dims }

func (t *DenseTensor) Resize(dims shape.Shape) {
	count, ok := dims.CheckedProduction()
	if !ok || count > math.MaxInt {
		panic(fmt.Sprintf("predictor: cannot size tensor %q to %s", t.name, dims))
	}
	t.dims = dims.Clone()
	n := int(count)
	if len(t.data) != n {
		t.data = make([]float32, n)
	}
}

func (t *DenseTensor) MutableData() []float32 { return t.data }

func (t *DenseTensor) Data() []float32 { return t.data }
