package appconfig

import (
	"fmt"
	"io"

	"github.com/mwiater/litebench/internal/predictor"
)

// ShowConfig prints the current configuration summary.
func ShowConfig(out io.Writer, file string, cfg *Config, fallback Config) {
	if file == "" {
		fmt.Fprintln(out, "No config file loaded (using defaults).")
	} else {
		fmt.Fprintf(out, "Config file: %s\n\n", file)
	}

	if cfg == nil {
		cfg = &fallback
	}

	fmt.Fprintln(out, "Current configuration:")
	fmt.Fprintf(out, "  Model Dir:         %s\n", cfg.ModelDir)
	fmt.Fprintf(out, "  Model Name:        %s\n", cfg.ModelName())
	if cfg.ModelFilename != "" || cfg.ParamFilename != "" {
		fmt.Fprintf(out, "  Model Filename:    %s\n", cfg.ModelFilename)
		fmt.Fprintf(out, "  Param Filename:    %s\n", cfg.ParamFilename)
	}
	if cfg.PackedInput() {
		fmt.Fprintf(out, "  Input File:        %s\n", cfg.InputFile)
	} else {
		fmt.Fprintf(out, "  Input Shape:       %s\n", cfg.InputShape)
		fmt.Fprintf(out, "  Input Paths:       %v\n", cfg.InputPaths())
	}
	fmt.Fprintf(out, "  Warmup:            %d\n", cfg.Warmup)
	fmt.Fprintf(out, "  Repeats:           %d\n", cfg.Repeats)
	fmt.Fprintf(out, "  Threads:           %d\n", cfg.Threads)
	fmt.Fprintf(out, "  Power Mode:        %s\n", predictor.PowerMode(cfg.PowerMode))
	fmt.Fprintf(out, "  Quantized Model:   %v\n", cfg.IsQuantizedModel)
	fmt.Fprintf(out, "  Run Optimize:      %v\n", cfg.RunModelOptimize)
	if cfg.RunModelOptimize {
		fmt.Fprintf(out, "  Optimized Model:   %s\n", cfg.OptimizedModelDir())
	}
	fmt.Fprintf(out, "  Legacy Labels:     %v\n", cfg.LegacyMinMaxLabels)
	fmt.Fprintf(out, "  Debug:             %v\n", cfg.Debug)
	fmt.Fprintf(out, "  Log File:          %s\n", cfg.LogFilePath())
	fmt.Fprintf(out, "  Results Dir:       %s\n", cfg.ResultsPath())
	fmt.Fprintf(out, "  History DB:        %s\n", cfg.HistoryDB)
}
