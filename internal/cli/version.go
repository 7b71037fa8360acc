package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/buildinfo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		version := buildinfo.Version
		if version == "" {
			version = "dev"
		}
		if isJSONOutput() {
			outputSuccess(map[string]string{
				"version": version,
				"commit":  buildinfo.Commit,
				"date":    buildinfo.Date,
			}, nil)
			return nil
		}
		fmt.Printf("refwire %s", version)
		if buildinfo.Commit != "" {
			fmt.Printf(" (%s)", buildinfo.Commit)
		}
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
