// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/config"
	"github.com/coretravis/refwire-cli/internal/refwire"
)

var (
	// Global flags
	profileFlag string
	serverFlag  string
	apiKeyFlag  string
	configFlag  string

	// Resolved values
	resolvedConfigPath string
	resolvedProfile    string
	resolvedServer     string
	resolvedAPIKey     string
	cfg                *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "refwire",
	Short: "RefWire - administration client for RefWire dataset servers",
	Long: `refwire is the administration client for RefWire dataset-management servers.

It manages API keys, datasets and items over the REST API, imports datasets
from local JSON files or the public dataset store, and stores server
credentials per named profile.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Commands that never talk to a server skip credential resolution.
		switch cmd.Name() {
		case "login", "logout", "profile", "docs", "version", "history", "completion", "help":
			return nil
		}
		// store list works logged out; store pull resolves its own
		// connection before uploading.
		if parent := cmd.Parent(); parent != nil {
			switch parent.Name() {
			case "profile", "completion", "history", "docs", "store":
				return nil
			}
		}
		return resolveConnection()
	},
}

// resolveConnection loads config/credentials and fills the resolved
// connection values, honoring flag > active profile > default profile.
func resolveConnection() error {
	var err error
	resolvedConfigPath = config.ResolveConfigPath(configFlag)
	cfg, err = config.LoadFrom(resolvedConfigPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if serverFlag != "" {
		resolvedServer = serverFlag
		resolvedProfile = profileFlag
		resolvedAPIKey = apiKeyFlag
		return nil
	}

	name := profileFlag
	if name == "" {
		state, stateErr := config.LoadState(config.StatePath(configFlag))
		if stateErr != nil {
			return fmt.Errorf("failed to load state: %w", stateErr)
		}
		name = strings.TrimSpace(state.ActiveProfile)
	}

	profileName, profile, err := cfg.GetProfile(name)
	if err != nil {
		return fmt.Errorf(`not logged in to a RefWire server

Either:
  1. Run 'refwire login' to add a server profile
  2. Use --server <url> (optionally with --api-key)
  3. Use --profile <name> for a configured profile`)
	}

	resolvedProfile = profileName
	resolvedServer = profile.Server

	if apiKeyFlag != "" {
		resolvedAPIKey = apiKeyFlag
		return nil
	}
	creds, err := config.LoadCredentials(config.CredentialsPath(configFlag))
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if key, ok := creds.Key(profileName); ok {
		resolvedAPIKey = key
	}
	return nil
}

// apiClient returns a client for the resolved server.
func apiClient() *refwire.Client {
	return refwire.NewClient(resolvedServer, resolvedAPIKey)
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Named server profile from config")
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "", "Explicit server base URL (bypasses profiles)")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "API key (overrides stored credentials)")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
}
