// internal/harness/harness.go
// Package harness wires configuration, input loading, the timed benchmark loop
// and reporting into a single run.
package harness

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/mwiater/litebench/internal/appconfig"
	"github.com/mwiater/litebench/internal/benchmark"
	"github.com/mwiater/litebench/internal/engine"
	"github.com/mwiater/litebench/internal/history"
	"github.com/mwiater/litebench/internal/inputs"
	"github.com/mwiater/litebench/internal/logging"
	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/report"
)

var (
	newPredictor = func(cfg predictor.Config) (predictor.Predictor, error) {
		return engine.New(cfg)
	}
	newRunID       = uuid.NewString
	openHistory    = history.Open
	writeResultsFn = benchmark.WriteResults
)

// Optimize loads the source model and exports it to cfg.OptimizedModelDir().
func Optimize(cfg appconfig.Config) (string, error) {
	pc := cfg.PredictorConfig()
	pc.ModelFromFile = ""

	p, err := newPredictor(pc)
	if err != nil {
		return "", err
	}
	exporter, ok := p.(predictor.Exporter)
	if !ok {
		return "", fmt.Errorf("predictor %T cannot export optimized models", p)
	}

	dir := cfg.OptimizedModelDir()
	if err := exporter.SaveOptimizedModel(dir); err != nil {
		return "", err
	}
	logging.LogEvent("Load model from %s", cfg.ModelDir)
	logging.LogEvent("Save optimized model to %s", dir)
	return dir, nil
}

// Run executes one complete benchmark and prints the report to out. Any error
// aborts the run before anything is printed.
func Run(ctx context.Context, cfg appconfig.Config, out io.Writer) (benchmark.Result, error) {
	if err := cfg.Validate(); err != nil {
		return benchmark.Result{}, fmt.Errorf("invalid configuration: %w", err)
	}
	model := cfg.ModelName()

	if cfg.RunModelOptimize {
		if _, err := Optimize(cfg); err != nil {
			return benchmark.Result{}, fmt.Errorf("optimize model: %w", err)
		}
	}

	loader, err := inputs.FromConfig(cfg)
	if err != nil {
		return benchmark.Result{}, err
	}

	p, err := newPredictor(cfg.PredictorConfig())
	if err != nil {
		return benchmark.Result{}, err
	}

	logging.LogPhase("load-inputs", model, inputs.Describe(loader))
	if err := loader.Load(p); err != nil {
		return benchmark.Result{}, err
	}

	runner := benchmark.NewRunner(cfg.Warmup, cfg.Repeats)
	runner.OnPhase = func(s benchmark.State) {
		logging.LogPhase(s.String(), model, map[string]int{"warmup": cfg.Warmup, "repeats": cfg.Repeats})
	}

	started := time.Now()
	series, err := runner.Run(p)
	if err != nil {
		return benchmark.Result{}, err
	}
	finished := time.Now()

	labels := benchmark.LabelsConventional
	if cfg.LegacyMinMaxLabels {
		labels = benchmark.LabelsLegacySwapped
	}
	result, err := benchmark.Aggregate(model, series, labels)
	if err != nil {
		return benchmark.Result{}, err
	}
	result.RunID = newRunID()
	result.Warmup = cfg.Warmup
	result.StartedAt = started
	result.FinishedAt = finished
	if cfg.PackedInput() {
		result.Outputs = predictor.Outputs(p)
	}

	if err := persist(ctx, cfg, result); err != nil {
		return benchmark.Result{}, err
	}

	logging.LogEvent("warmup: %d, repeats: %d, latency in ms", cfg.Warmup, cfg.Repeats)
	rep := report.New(out)
	rep.PrintResult(result)
	if cfg.PackedInput() {
		rep.PrintOutputs(result.Outputs)
	}
	return result, nil
}

func persist(ctx context.Context, cfg appconfig.Config, result benchmark.Result) error {
	if _, err := writeResultsFn(cfg.ResultsPath(), result); err != nil {
		return err
	}
	if cfg.HistoryDB == "" {
		return nil
	}
	store, err := openHistory(cfg.HistoryDB)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, result)
}
