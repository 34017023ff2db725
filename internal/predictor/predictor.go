// internal/predictor/predictor.go
// Package predictor defines the boundary between the benchmark harness and an inference runtime.
package predictor

import (
	"fmt"

	"github.com/mwiater/litebench/internal/shape"
)

// Tensor is a single input or output slot owned by a Predictor.
type Tensor interface {
	Name() string
	Shape() shape.Shape
	// Resize sets the tensor shape, reallocating storage when the element count changes.
	// Callers validate dims first; a shape whose element count overflows is a programming error.
	Resize(dims shape.Shape)
	// MutableData returns the backing storage for in-place writes.
	MutableData() []float32
	Data() []float32
}

// Predictor owns model weights and tensor slots and runs inference synchronously.
type Predictor interface {
	NumInputs() int
	Input(i int) Tensor
	NumOutputs() int
	Output(i int) Tensor
	Run() error
}

// Exporter is implemented by predictors that can persist an optimized model.
type Exporter interface {
	SaveOptimizedModel(dir string) error
}

// PowerMode selects the CPU cluster a runtime binds its workers to.
type PowerMode int

const (
	PowerBigCluster PowerMode = iota
	PowerLittleCluster
	PowerAllCores
	PowerNoBind
)

func (m PowerMode) String() string {
	switch m {
	case PowerBigCluster:
		return "big-cluster"
	case PowerLittleCluster:
		return "little-cluster"
	case PowerAllCores:
		return "all-cores"
	case PowerNoBind:
		return "no-bind"
	default:
		return fmt.Sprintf("power-mode(%d)", int(m))
	}
}

// Valid reports whether m is one of the known power modes.
func (m PowerMode) Valid() bool {
	return m >= PowerBigCluster && m <= PowerNoBind
}

// Config carries runtime options through to a predictor implementation untouched.
type Config struct {
	ModelDir      string
	ModelFile     string
	ParamFile     string
	ModelFromFile string
	Threads       int
	PowerMode     PowerMode
	Quantized     bool
}

// OutputDescriptor is a snapshot of one output tensor taken after a benchmark run.
type OutputDescriptor struct {
	Name   string      `json:"name"`
	Shape  shape.Shape `json:"shape"`
	Values []float32   `json:"values"`
}

// Outputs copies every output tensor of p into descriptors.
func Outputs(p Predictor) []OutputDescriptor {
	out := make([]OutputDescriptor, 0, p.NumOutputs())
	for i := 0; i < p.NumOutputs(); i++ {
		t := p.Output(i)
		data := t.Data()
		values := make([]float32, len(data))
		copy(values, data)
		out = append(out, OutputDescriptor{
			Name:   t.Name(),
			Shape:  t.Shape().Clone(),
			Values: values,
		})
	}
	return out
}
