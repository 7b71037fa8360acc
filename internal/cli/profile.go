package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/config"
	"github.com/coretravis/refwire-cli/internal/ui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage server profiles",
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured server profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadedCfg, err := config.LoadFrom(config.ResolveConfigPath(configFlag))
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		state, err := config.LoadState(config.StatePath(configFlag))
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}

		type profileView struct {
			Name    string `json:"name"`
			Server  string `json:"server"`
			Active  bool   `json:"active"`
			Default bool   `json:"default"`
		}
		var views []profileView
		for _, name := range loadedCfg.ProfileNames() {
			views = append(views, profileView{
				Name:    name,
				Server:  loadedCfg.Profiles[name].Server,
				Active:  name == state.ActiveProfile,
				Default: name == loadedCfg.DefaultProfile,
			})
		}

		if isJSONOutput() {
			outputSuccess(views, &Meta{Count: len(views)})
			return nil
		}

		if len(views) == 0 {
			fmt.Println(ui.Hint("No profiles configured. Run 'refwire login' to add one."))
			return nil
		}
		tbl := ui.NewTable(3)
		for _, v := range views {
			marker := " "
			if v.Active {
				marker = "*"
			}
			tbl.AddRow(marker, v.Name, v.Server)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		loadedCfg, err := config.LoadFrom(config.ResolveConfigPath(configFlag))
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		if _, _, err := loadedCfg.GetProfile(name); err != nil {
			return handleError(ErrProfileNotFound, err, "Run 'refwire profile list' to see configured profiles")
		}

		statePath := config.StatePath(configFlag)
		state, err := config.LoadState(statePath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "")
		}
		state.ActiveProfile = name
		if err := config.SaveState(statePath, state); err != nil {
			return handleError(ErrInternal, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"profile": name}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Switched to profile %s", ui.ID(name)))
		return nil
	},
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	rootCmd.AddCommand(profileCmd)
}
