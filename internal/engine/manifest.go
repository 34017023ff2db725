package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mwiater/litebench/internal/shape"
	"go.yaml.in/yaml/v3"
)

const (
	// ManifestFile is the model description expected inside a model directory.
	ManifestFile = "model.yaml"
	// OptimizedFile is the single-file model written by SaveOptimizedModel.
	OptimizedFile = "model.nb"
)

// Manifest describes the tensors and operations of a reference model.
type Manifest struct {
	Name      string       `yaml:"name" json:"name"`
	Inputs    []TensorSpec `yaml:"inputs" json:"inputs"`
	Outputs   []OutputSpec `yaml:"outputs" json:"outputs"`
	Optimized bool         `yaml:"-" json:"optimized"`
	Quantized bool         `yaml:"quantized,omitempty" json:"quantized,omitempty"`
}

// TensorSpec declares an input slot and its initial shape.
type TensorSpec struct {
	Name  string      `yaml:"name" json:"name"`
	Shape shape.Shape `yaml:"shape" json:"shape"`
}

// OutputSpec declares an output computed from one input.
type OutputSpec struct {
	Name  string `yaml:"name" json:"name"`
	Op    string `yaml:"op" json:"op"`
	Input int    `yaml:"input" json:"input"`
}

func (m Manifest) validate() error {
	if len(m.Inputs) == 0 {
		return errors.New("model declares no inputs")
	}
	if len(m.Outputs) == 0 {
		return errors.New("model declares no outputs")
	}
	for i, in := range m.Inputs {
		for _, d := range in.Shape {
			if d < 0 {
				return fmt.Errorf("input %d (%s) has negative dimension in %s", i, in.Name, in.Shape)
			}
		}
		if _, ok := in.Shape.CheckedProduction(); !ok {
			return fmt.Errorf("input %d (%s) shape %s overflows", i, in.Name, in.Shape)
		}
	}
	for i, out := range m.Outputs {
		if _, ok := ops[out.Op]; !ok {
			return fmt.Errorf("output %d (%s) uses unknown op %q", i, out.Name, out.Op)
		}
		if out.Input < 0 || out.Input >= len(m.Inputs) {
			return fmt.Errorf("output %d (%s) reads input %d, model has %d inputs", i, out.Name, out.Input, len(m.Inputs))
		}
	}
	return nil
}

func readManifestYAML(path string) (Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return m, nil
}

// readOptimized accepts either the .nb file itself or the directory holding it.
func readOptimized(path string) (Manifest, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, OptimizedFile)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Manifest{}, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return Manifest{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if !m.Optimized {
		return Manifest{}, fmt.Errorf("%s is not an optimized model", path)
	}
	return m, nil
}
