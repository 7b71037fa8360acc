package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/ui"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check server health",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Checking server health")
		health, err := apiClient().GetHealth(context.Background())
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(health, nil)
			return nil
		}
		if health.Version != "" {
			fmt.Println(ui.Successf("%s is %s (version %s)", ui.URL(resolvedServer), health.Status, health.Version))
		} else {
			fmt.Println(ui.Successf("%s is %s", ui.URL(resolvedServer), health.Status))
		}
		return nil
	},
}

var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Show information about the remote instance",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Fetching instance info")
		info, err := apiClient().GetInstance(context.Background())
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		tbl := ui.NewTable(2)
		tbl.AddRow("Name", info.Name)
		tbl.AddRow("Version", info.Version)
		tbl.AddRow("Datasets", fmt.Sprintf("%d", info.DatasetCount))
		tbl.AddRow("Items", fmt.Sprintf("%d", info.ItemCount))
		if info.UptimeSeconds > 0 {
			tbl.AddRow("Uptime", (time.Duration(info.UptimeSeconds) * time.Second).String())
		}
		if !info.StartedAt.IsZero() {
			tbl.AddRow("Started", formatTime(info.StartedAt))
		}
		fmt.Print(tbl.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(instanceCmd)
}
