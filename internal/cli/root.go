// internal/cli/root.go
package litebench

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mwiater/litebench/internal/appconfig"
	"github.com/mwiater/litebench/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config
	appVersion    = "dev"
	appCommit     = "none"
	appDate       = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "litebench",
	Short:         "litebench: latency benchmark harness for inference models",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults) and check it against the schema.
		if err := ensureConfigLoaded(); err != nil {
			return err
		}

		// 2) Materialize the merged configuration (flags > env > config > defaults)
		//    into currentConfig so every component receives an explicit value.
		cfg := appconfig.Defaults()
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(currentConfig.LogFilePath()); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", appVersion, appCommit, appDate)

	err := rootCmd.Execute()
	if err != nil {
		logging.LogEvent("fatal: %v", err)
		color.New(color.FgRed, color.Bold).Fprintf(os.Stderr, "error: %v\n", err)
	}
	_ = logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := appconfig.Defaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (json, yaml or toml; default config/config.*)")

	flags.String("model_dir", "", "the path of the model, the model and param files are under model_dir")
	flags.String("model_filename", "", "the filename of the model file when the model is in combined format")
	flags.String("param_filename", "", "the filename of the param file when the model is in combined format")
	flags.String("optimized_model_path", "", "where the optimized model is saved (default <model_dir>_opt)")
	flags.String("input_shape", defaults.InputShape, "input shapes separated by colon and comma, such as 1,3,244,244:1,3,300,300")
	flags.String("input_path", "", "raw input files separated by colons, such as input1_file:input2_file")
	flags.String("input_file", "", "single packed input file holding every input's dims and data")
	flags.Int("warmup", defaults.Warmup, "warmup times")
	flags.Int("repeats", defaults.Repeats, "repeats times")
	flags.Int("power_mode", defaults.PowerMode, "power mode: 0 big cluster, 1 little cluster, 2 all cores, 3 no bind")
	flags.Int("threads", defaults.Threads, "threads num")
	flags.Bool("is_quantized_model", false, "benchmark the quantized model")
	flags.Bool("run_model_optimize", false, "export an optimized model and benchmark it instead of model_dir")
	flags.Bool("legacy_minmax_labels", false, "report the largest latency as min and the smallest as max, like the original tool")
	flags.Bool("debug", false, "enable debug output")
	flags.String("logFile", "", "path to the log file")
	flags.String("resultsDir", "", "directory for JSON results")
	flags.String("historyDB", "", "SQLite database that accumulates results")

	for _, name := range []string{
		"model_dir", "model_filename", "param_filename", "optimized_model_path",
		"input_shape", "input_path", "input_file", "warmup", "repeats", "power_mode",
		"threads", "is_quantized_model", "run_model_optimize", "legacy_minmax_labels",
		"debug", "logFile", "resultsDir", "historyDB",
	} {
		_ = viper.BindPFlag(name, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath("config")
		viper.SetConfigName("config")
	}
	viper.SetEnvPrefix("LITEBENCH")
	viper.AutomaticEnv()
}

// ensureConfigLoaded reads the config file, if any, after validating it.
func ensureConfigLoaded() error {
	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}
	if _, err := appconfig.Load(viper.ConfigFileUsed()); err != nil {
		return err
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	return currentConfig
}

// SetVersionInfo allows the main package to inject build-time variables.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}
