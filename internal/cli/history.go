// internal/cli/history.go
package litebench

import (
	"errors"
	"fmt"

	"github.com/mattn/go-runewidth"
	"github.com/mwiater/litebench/internal/history"
	"github.com/spf13/cobra"
)

var (
	historyModel string
	historyLimit int
)

// historyCmd lists past runs stored in the history database.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past benchmark runs",
	Long:  `List the runs recorded in --historyDB, newest first. Use --model to filter and --limit to cap the rows.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		if cfg == nil || cfg.HistoryDB == "" {
			return errors.New("history requires --historyDB")
		}
		store, err := history.Open(cfg.HistoryDB)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context(), historyModel, historyLimit)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(entries) == 0 {
			fmt.Fprintln(out, "No runs recorded.")
			return nil
		}
		for _, e := range entries {
			// Model names may contain wide characters; pad by display width.
			fmt.Fprintf(out, "%s  %s samples = %-5d min = %-12.5f max = %-12.5f average = %-12.5f (%s)\n",
				e.FinishedAt.Local().Format("2006-01-02 15:04:05"), runewidth.FillRight(e.Model, 30),
				e.Samples, e.Min, e.Max, e.Average, e.RunID)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyModel, "model", "", "only list runs of this model")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of runs to list (0 for all)")
	rootCmd.AddCommand(historyCmd)
}
