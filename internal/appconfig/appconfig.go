// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting benchmark configuration.
package appconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mwiater/litebench/internal/predictor"
	"github.com/mwiater/litebench/internal/shape"
)

const (
	// DefaultConfigPath is the config file consulted when no path is given.
	DefaultConfigPath = "config/config.json"
	// DefaultInputShape matches a single NCHW image input.
	DefaultInputShape = "1,3,224,224"
	// DefaultWarmup is the number of discarded runs before measurement.
	DefaultWarmup = 5
	// DefaultRepeats is the number of measured runs.
	DefaultRepeats = 20
	// DefaultThreads is the worker count handed to the predictor.
	DefaultThreads = 1
	// defaultResultsDir is where per-run JSON results land.
	defaultResultsDir = "litebenchData/results"
	// optimizedSuffix is appended to model_dir when optimized_model_path is unset.
	optimizedSuffix = "_opt"
)

// Config represents the complete benchmark configuration. Components receive it
// (or values derived from it) explicitly; nothing reads flags directly.
type Config struct {
	ModelDir           string `json:"model_dir" mapstructure:"model_dir"`
	ModelFilename      string `json:"model_filename,omitempty" mapstructure:"model_filename"`
	ParamFilename      string `json:"param_filename,omitempty" mapstructure:"param_filename"`
	OptimizedModelPath string `json:"optimized_model_path,omitempty" mapstructure:"optimized_model_path"`
	InputShape         string `json:"input_shape" mapstructure:"input_shape"`
	InputPath          string `json:"input_path,omitempty" mapstructure:"input_path"`
	InputFile          string `json:"input_file,omitempty" mapstructure:"input_file"`
	Warmup             int    `json:"warmup" mapstructure:"warmup"`
	Repeats            int    `json:"repeats" mapstructure:"repeats"`
	PowerMode          int    `json:"power_mode" mapstructure:"power_mode"`
	Threads            int    `json:"threads" mapstructure:"threads"`
	IsQuantizedModel   bool   `json:"is_quantized_model" mapstructure:"is_quantized_model"`
	RunModelOptimize   bool   `json:"run_model_optimize" mapstructure:"run_model_optimize"`
	LegacyMinMaxLabels bool   `json:"legacy_minmax_labels" mapstructure:"legacy_minmax_labels"`
	Debug              bool   `json:"debug" mapstructure:"debug"`
	LogFile            string `json:"logFile,omitempty" mapstructure:"logFile"`
	ResultsDir         string `json:"resultsDir,omitempty" mapstructure:"resultsDir"`
	HistoryDB          string `json:"historyDB,omitempty" mapstructure:"historyDB"`
	ConfigPath         string `json:"-" mapstructure:"-"`
}

// Defaults returns the configuration used when neither flags nor a file override a value.
func Defaults() Config {
	return Config{
		InputShape: DefaultInputShape,
		Warmup:     DefaultWarmup,
		Repeats:    DefaultRepeats,
		PowerMode:  int(predictor.PowerNoBind),
		Threads:    DefaultThreads,
	}
}

// ModelName returns the last element of ModelDir, ignoring trailing slashes.
func (c Config) ModelName() string {
	dir := strings.TrimRight(strings.TrimSpace(c.ModelDir), "/")
	if dir == "" {
		return ""
	}
	if idx := strings.LastIndex(dir, "/"); idx >= 0 {
		return dir[idx+1:]
	}
	return dir
}

// InputPaths splits InputPath into its ":"-separated entries.
func (c Config) InputPaths() []string {
	return shape.SplitList(c.InputPath)
}

// PackedInput reports whether inputs come from a single combined file.
func (c Config) PackedInput() bool {
	return strings.TrimSpace(c.InputFile) != ""
}

// LogFilePath returns the path to the log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return "litebench.log"
}

// ResultsPath returns the directory that receives JSON results.
func (c Config) ResultsPath() string {
	if dir := strings.TrimSpace(c.ResultsDir); dir != "" {
		return dir
	}
	return defaultResultsDir
}

// OptimizedModelDir returns where an optimized model is exported to.
func (c Config) OptimizedModelDir() string {
	if p := strings.TrimSpace(c.OptimizedModelPath); p != "" {
		return p
	}
	return strings.TrimRight(c.ModelDir, "/") + optimizedSuffix
}

// PredictorConfig derives the runtime options. When run_model_optimize is set
// the predictor loads the exported model instead of model_dir.
func (c Config) PredictorConfig() predictor.Config {
	modelDir := strings.TrimRight(c.ModelDir, "/")
	pc := predictor.Config{
		ModelDir:  modelDir,
		Threads:   c.Threads,
		PowerMode: predictor.PowerMode(c.PowerMode),
		Quantized: c.IsQuantizedModel,
	}
	if c.ModelFilename != "" && c.ParamFilename != "" {
		pc.ModelFile = filepath.Join(modelDir, c.ModelFilename)
		pc.ParamFile = filepath.Join(modelDir, c.ParamFilename)
	}
	if c.RunModelOptimize {
		pc.ModelFromFile = c.OptimizedModelDir()
	}
	return pc
}

// Validate performs semantic checks that a schema cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.Warmup < 0 {
		errs = append(errs, fmt.Errorf("warmup must be >= 0, got %d", c.Warmup))
	}
	if c.Repeats < 0 {
		errs = append(errs, fmt.Errorf("repeats must be >= 0, got %d", c.Repeats))
	}
	if c.Threads < 1 {
		errs = append(errs, fmt.Errorf("threads must be >= 1, got %d", c.Threads))
	}
	if !predictor.PowerMode(c.PowerMode).Valid() {
		errs = append(errs, fmt.Errorf("power_mode must be between 0 and 3, got %d", c.PowerMode))
	}
	if c.PackedInput() && strings.TrimSpace(c.InputPath) != "" {
		errs = append(errs, errors.New("input_path and input_file are mutually exclusive"))
	}
	return errors.Join(errs...)
}

// Load reads the configuration at path. JSON, YAML and TOML files are accepted;
// the document is validated against the config schema before decoding. An empty
// path falls back to DefaultConfigPath and, if that is absent, to Defaults().
func Load(path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath
	}

	doc, err := readDocument(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			if !explicit {
				return Defaults(), nil
			}
			return Config{}, fmt.Errorf("no configuration file found at %q", path)
		}
		return Config{}, fmt.Errorf("could not read config file %q: %w", path, err)
	}

	if err := ValidateDocument(doc); err != nil {
		return Config{}, fmt.Errorf("invalid config file %q: %w", path, err)
	}

	config, err := decode(doc)
	if err != nil {
		return Config{}, fmt.Errorf("could not decode config file %q: %w", path, err)
	}
	config.ConfigPath = path
	return config, nil
}

// decode overlays a generic document onto Defaults().
func decode(doc map[string]any) (Config, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return Config{}, err
	}
	config := Defaults()
	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, err
	}
	return config, nil
}
