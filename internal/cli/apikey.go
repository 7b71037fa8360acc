package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/ui"
)

var apikeyScopes []string

var apikeyCmd = &cobra.Command{
	Use:   "apikey",
	Short: "Manage server API keys",
}

var apikeyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List API keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Fetching API keys")
		keys, err := apiClient().ListAPIKeys(context.Background())
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(keys, &Meta{Count: len(keys)})
			return nil
		}

		if len(keys) == 0 {
			fmt.Println(ui.Hint("No API keys."))
			return nil
		}
		tbl := ui.NewTable(4)
		tbl.AddRow("ID", "NAME", "SCOPES", "CREATED")
		for _, k := range keys {
			tbl.AddRow(k.ID, k.Name, strings.Join(k.Scopes, ","), formatTime(k.CreatedAt))
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var apikeyCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new API key",
	Long: `Create a new API key.

The key value is printed exactly once; the server never reveals it again.

Examples:
  refwire apikey create ci --scope datasets:read --scope datasets:write`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Creating API key")
		key, err := apiClient().CreateAPIKey(context.Background(), args[0], apikeyScopes)
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(key, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created API key %s", ui.ID(key.ID)))
		fmt.Printf("\n  %s\n\n", ui.AccentBold.Render(key.Key))
		fmt.Println(ui.Warning("Store this key now - it will not be shown again."))
		return nil
	},
}

var apikeyRevokeCmd = &cobra.Command{
	Use:   "revoke <id>",
	Short: "Revoke an API key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !isJSONOutput() && stdinIsTerminal() {
			if !promptConfirm(fmt.Sprintf("Revoke API key %s? This cannot be undone.", args[0])) {
				return handleErrorMsg(ErrAborted, "aborted", "")
			}
		}

		spinner := newNetworkSpinner("Revoking API key")
		err := apiClient().RevokeAPIKey(context.Background(), args[0])
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"id": args[0]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Revoked API key %s", ui.ID(args[0])))
		return nil
	},
}

func init() {
	apikeyCreateCmd.Flags().StringArrayVar(&apikeyScopes, "scope", nil, "Scope to grant (repeatable)")

	apikeyCmd.AddCommand(apikeyListCmd)
	apikeyCmd.AddCommand(apikeyCreateCmd)
	apikeyCmd.AddCommand(apikeyRevokeCmd)
	rootCmd.AddCommand(apikeyCmd)
}
