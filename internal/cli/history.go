package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/history"
	"github.com/coretravis/refwire-cli/internal/ui"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past imports and store pulls",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded imports, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(history.DefaultPath())
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}
		defer store.Close()

		entries, err := store.List(historyLimit)
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(entries, &Meta{Count: len(entries)})
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(ui.Hint("No imports recorded yet."))
			return nil
		}
		tbl := ui.NewTable(5)
		tbl.AddRow("WHEN", "DATASET", "SOURCE", "ITEMS", "SKIPPED")
		for _, e := range entries {
			tbl.AddRow(formatTime(e.CreatedAt), e.DatasetID, e.Source,
				fmt.Sprintf("%d", e.Items), fmt.Sprintf("%d", e.Skipped))
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all recorded history",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.Open(history.DefaultPath())
		if err != nil {
			return handleError(ErrHistoryError, err, "")
		}
		defer store.Close()

		if err := store.Clear(); err != nil {
			return handleError(ErrHistoryError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]bool{"cleared": true}, nil)
			return nil
		}
		fmt.Println(ui.Success("History cleared"))
		return nil
	},
}

func init() {
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "Maximum entries to show (0 shows all)")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyClearCmd)
	rootCmd.AddCommand(historyCmd)
}
