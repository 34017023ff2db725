// internal/cli/show.go
package litebench

import (
	"github.com/spf13/cobra"
)

// showCmd represents the 'show' command group for displaying resources.
var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Group commands for displaying resources",
	Long: `The 'show' command groups read-only views of litebench state. 'show config' prints the
configuration a benchmark run would use after merging flags, LITEBENCH_* environment
variables, the config file and built-in defaults.`,
}

func init() {
	rootCmd.AddCommand(showCmd)
}
