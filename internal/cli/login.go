package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/config"
	"github.com/coretravis/refwire-cli/internal/refwire"
	"github.com/coretravis/refwire-cli/internal/ui"
)

var (
	loginKey     string
	loginProfile string
	loginNoCheck bool
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Store credentials for a RefWire server",
	Long: `Store credentials for a RefWire server under a named profile.

Prompts for the server URL and API key when not given as flags. The key is
verified against the server's health endpoint before it is saved, and the
profile becomes the active one.

Examples:
  refwire login
  refwire login --server https://refwire.example.com --name prod
  refwire login --server https://refwire.example.com --key rw_live_... --name prod`,
	Args: cobra.NoArgs,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	server := serverFlag
	if server == "" {
		if !stdinIsTerminal() {
			return handleErrorMsg(ErrInvalidInput, "no --server given and stdin is not a terminal", "Pass --server and --key for non-interactive login")
		}
		var err error
		server, err = promptString("Server URL:", "")
		if err != nil || server == "" {
			return handleErrorMsg(ErrInvalidInput, "server URL is required", "")
		}
	}
	server = strings.TrimRight(server, "/")

	key := loginKey
	if key == "" {
		if !stdinIsTerminal() {
			return handleErrorMsg(ErrInvalidInput, "no --key given and stdin is not a terminal", "Pass --server and --key for non-interactive login")
		}
		var err error
		key, err = promptSecret("API key:")
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}
	}

	if !loginNoCheck {
		client := refwire.NewClient(server, key)
		spinner := newNetworkSpinner("Verifying credentials")
		_, err := client.GetHealth(context.Background())
		spinner.Stop()
		if err != nil {
			var apiErr *refwire.APIError
			if errors.As(err, &apiErr) && apiErr.IsAuthError() {
				return handleError(ErrAuthFailed, err, "Check the API key and try again")
			}
			return handleError(ErrAPIError, err, "Is the server URL correct? Use --no-verify to save anyway")
		}
	}

	resolvedConfigPath = config.ResolveConfigPath(configFlag)
	loadedCfg, err := config.LoadFrom(resolvedConfigPath)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}

	loadedCfg.SetProfile(loginProfile, config.Profile{Server: server})
	if err := config.SaveTo(resolvedConfigPath, loadedCfg); err != nil {
		return handleError(ErrInternal, err, "")
	}

	credsPath := config.CredentialsPath(configFlag)
	creds, err := config.LoadCredentials(credsPath)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	creds.SetKey(loginProfile, key)
	if err := config.SaveCredentials(credsPath, creds); err != nil {
		return handleError(ErrInternal, err, "")
	}

	statePath := config.StatePath(configFlag)
	state, err := config.LoadState(statePath)
	if err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	state.ActiveProfile = loginProfile
	if err := config.SaveState(statePath, state); err != nil {
		return handleError(ErrInternal, err, "")
	}

	if isJSONOutput() {
		outputSuccess(map[string]string{"profile": loginProfile, "server": server}, nil)
		return nil
	}
	fmt.Println(ui.Successf("Logged in to %s as profile %s", ui.URL(server), ui.ID(loginProfile)))
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Remove the stored API key for a profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		name := profileFlag
		if name == "" {
			resolvedConfigPath = config.ResolveConfigPath(configFlag)
			loadedCfg, err := config.LoadFrom(resolvedConfigPath)
			if err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
			state, err := config.LoadState(config.StatePath(configFlag))
			if err != nil {
				return handleError(ErrConfigInvalid, err, "")
			}
			if name = state.ActiveProfile; name == "" {
				name = loadedCfg.DefaultProfile
			}
		}
		if name == "" {
			return handleErrorMsg(ErrProfileNotFound, "no profile to log out of", "Use --profile <name>")
		}

		credsPath := config.CredentialsPath(configFlag)
		creds, err := config.LoadCredentials(credsPath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		creds.RemoveKey(name)
		if err := config.SaveCredentials(credsPath, creds); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"profile": name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Removed stored key for profile %s", ui.ID(name)))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginKey, "key", "", "API key (prompted when omitted)")
	loginCmd.Flags().StringVar(&loginProfile, "name", "default", "Profile name to store the server under")
	loginCmd.Flags().BoolVar(&loginNoCheck, "no-verify", false, "Skip the credential check against /health")

	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
