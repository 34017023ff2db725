// internal/cli/optimize.go
package litebench

import (
	"fmt"

	"github.com/mwiater/litebench/internal/harness"
	"github.com/spf13/cobra"
)

var optimizeModel = harness.Optimize

// optimizeCmd exports an optimized copy of the model without benchmarking it.
var optimizeCmd = &cobra.Command{
	Use:   "optimize",
	Short: "Export an optimized copy of the model",
	Long:  `Load the model under --model_dir and save the optimized form to --optimized_model_path (default <model_dir>_opt).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil || cfg.ModelDir == "" {
			cmd.PrintErrln("please run litebench optimize --help to obtain usage.")
			return nil
		}
		dir, err := optimizeModel(*cfg)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved optimized model to %s\n", dir)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(optimizeCmd)
}
