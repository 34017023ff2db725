// internal/cli/run.go
package litebench

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/litebench/internal/harness"
	"github.com/mwiater/litebench/internal/logging"
	"github.com/spf13/cobra"
)

const usageHint = "please run litebench run --help to obtain usage."

var runHarness = harness.Run

// runCmd implements 'run', which benchmarks one model and prints its latency.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Benchmark the latency of a model",
	Long: `Load the model under --model_dir, fill its inputs from --input_path raw files
(shaped by --input_shape) or from a packed --input_file, run --warmup untimed
inferences and then --repeats timed ones, and print min, max and average latency.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil {
			return nil
		}
		if cfg.ModelDir == "" || (len(cfg.InputPaths()) == 0 && !cfg.PackedInput()) {
			logging.LogEvent(usageHint)
			cmd.PrintErrln(usageHint)
			return nil
		}

		result, err := runHarness(cmd.Context(), *cfg, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		if cfg.Debug {
			pp.Fprintln(cmd.ErrOrStderr(), result)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
