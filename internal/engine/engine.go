// internal/engine/engine.go
// Package engine is a small in-process CPU predictor. It runs models described
// by a model.yaml manifest so the harness can be exercised without a native runtime.
package engine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/mwiater/litebench/internal/logging"
	"github.com/mwiater/litebench/internal/predictor"
	"golang.org/x/sync/errgroup"
)

// Engine implements predictor.Predictor and predictor.Exporter.
type Engine struct {
	manifest Manifest
	cfg      predictor.Config
	inputs   []*predictor.DenseTensor
	outputs  []*predictor.DenseTensor
}

var (
	_ predictor.Predictor = (*Engine)(nil)
	_ predictor.Exporter  = (*Engine)(nil)
)

// New loads a model. An optimized model (cfg.ModelFromFile) takes precedence;
// otherwise the manifest is read from cfg.ModelFile or cfg.ModelDir/model.yaml.
func New(cfg predictor.Config) (*Engine, error) {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	var (
		m   Manifest
		err error
	)
	switch {
	case cfg.ModelFromFile != "":
		m, err = readOptimized(cfg.ModelFromFile)
	case cfg.ModelFile != "":
		if cfg.ParamFile != "" {
			if _, statErr := os.Stat(cfg.ParamFile); statErr != nil {
				return nil, fmt.Errorf("param file: %w", statErr)
			}
		}
		m, err = readManifestYAML(cfg.ModelFile)
	default:
		m, err = readManifestYAML(filepath.Join(cfg.ModelDir, ManifestFile))
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if cfg.Quantized {
		m.Quantized = true
	}

	e := &Engine{manifest: m, cfg: cfg}
	for _, in := range m.Inputs {
		e.inputs = append(e.inputs, predictor.NewDenseTensor(in.Name, in.Shape))
	}
	for _, out := range m.Outputs {
		e.outputs = append(e.outputs, predictor.NewDenseTensor(out.Name, nil))
	}

	logging.LogPhase("load", m.Name, map[string]any{
		"inputs":    len(e.inputs),
		"outputs":   len(e.outputs),
		"threads":   cfg.Threads,
		"powerMode": cfg.PowerMode.String(),
		"optimized": m.Optimized,
		"quantized": m.Quantized,
	})
	return e, nil
}

// Name returns the model name declared in the manifest.
func (e *Engine) Name() string { return e.manifest.Name }

func (e *Engine) NumInputs() int { return len(e.inputs) }

func (e *Engine) Input(i int) predictor.Tensor { return e.inputs[i] }

func (e *Engine) NumOutputs() int { return len(e.outputs) }

func (e *Engine) Output(i int) predictor.Tensor { return e.outputs[i] }

// Run evaluates every output from the current inputs. Outputs are spread over
// at most cfg.Threads goroutines; Run returns only when all have finished.
func (e *Engine) Run() error {
	var g errgroup.Group
	g.SetLimit(e.cfg.Threads)
	for i, spec := range e.manifest.Outputs {
		fn, ok := ops[spec.Op]
		if !ok {
			return fmt.Errorf("output %s: unknown op %q", spec.Name, spec.Op)
		}
		src, dst := e.inputs[spec.Input], e.outputs[i]
		g.Go(func() error {
			fn(src, dst)
			return nil
		})
	}
	return g.Wait()
}

// SaveOptimizedModel replaces dir with a single-file copy of the model.
func (e *Engine) SaveOptimizedModel(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove old optimized model %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create optimized model dir %s: %w", dir, err)
	}

	m := e.manifest
	m.Optimized = true
	m.Inputs = slices.Clone(e.manifest.Inputs)
	for i := range m.Inputs {
		m.Inputs[i].Shape = e.inputs[i].Shape().Clone()
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("encode optimized model: %w", err)
	}
	path := filepath.Join(dir, OptimizedFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write optimized model: %w", err)
	}
	logging.LogEvent("Save optimized model to %s", path)
	return nil
}
