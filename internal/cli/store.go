package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/config"
	"github.com/coretravis/refwire-cli/internal/datastore"
	"github.com/coretravis/refwire-cli/internal/importer"
	"github.com/coretravis/refwire-cli/internal/ui"
)

// storeBaseURL resolves the store URL from the flag, then the config file,
// then the public default.
func storeBaseURL() string {
	if storeURL != "" {
		return storeURL
	}
	if c, err := config.LoadFrom(config.ResolveConfigPath(configFlag)); err == nil {
		return c.Store.URL
	}
	return ""
}

var (
	storeURL         string
	storeQuery       string
	storeIDField     string
	storeNameField   string
	storeExclude     []string
	storeDatasetID   string
	storeName        string
	storeDescription string
	storeYes         bool
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse and pull datasets from the public dataset store",
}

var storeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets available in the store",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client := datastore.NewClient(storeBaseURL())
		spinner := newNetworkSpinner("Fetching store catalog")
		entries, err := client.List(context.Background(), storeQuery)
		spinner.Stop()
		if err != nil {
			return handleError(ErrStoreError, err, "Is the store reachable?")
		}

		if isJSONOutput() {
			outputSuccess(entries, &Meta{Count: len(entries)})
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(ui.Hint("No datasets in the store catalog."))
			return nil
		}
		tbl := ui.NewTable(4)
		tbl.AddRow("ID", "NAME", "RECORDS", "DESCRIPTION")
		for _, e := range entries {
			records := ""
			if e.Records > 0 {
				records = fmt.Sprintf("%d", e.Records)
			}
			tbl.AddRow(e.ID, e.Name, records, e.Description)
		}
		fmt.Print(tbl.String())
		fmt.Println(ui.Count(len(entries), "dataset", "datasets"))
		return nil
	},
}

var storeSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the store catalog",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		storeQuery = strings.Join(args, " ")
		return storeListCmd.RunE(cmd, nil)
	},
}

var storePullCmd = &cobra.Command{
	Use:   "pull <id>",
	Short: "Pull a store dataset into the connected server",
	Long: `Pull a dataset from the store and import it into the connected server.

The downloaded records go through the same schema inference and designation
pipeline as a file import. The catalog's declared id and name fields are used
as hints; --id-field and --name-field override them.

Examples:
  refwire store pull countries
  refwire store pull countries --dataset-id countries-2024 --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runStorePull,
}

func runStorePull(cmd *cobra.Command, args []string) error {
	if err := resolveConnection(); err != nil {
		return handleError(ErrNotLoggedIn, err, "Run 'refwire login' first")
	}

	client := datastore.NewClient(storeBaseURL())

	spinner := newNetworkSpinner("Fetching catalog entry")
	entry, err := client.Get(context.Background(), args[0])
	spinner.Stop()
	if err != nil {
		return handleError(ErrStoreError, err, "Run 'refwire store list' to see available datasets")
	}

	spinner = newNetworkSpinner(fmt.Sprintf("Downloading %s", entry.ID))
	raw, err := client.Pull(context.Background(), entry)
	spinner.Stop()
	if err != nil {
		return handleError(ErrStoreError, err, "")
	}

	st, err := importer.Parse(raw)
	if err != nil {
		return handleImportError(err)
	}
	st, err = st.Discover()
	if err != nil {
		return handleImportError(err)
	}

	interactive := stdinIsTerminal() && !storeYes && !isJSONOutput()
	if !isJSONOutput() {
		printSchema(st.Schema, st.TotalRecords())
	}

	opts := importer.ResolveOptions{
		IDField:   storeIDField,
		NameField: storeNameField,
		IDHint:    entry.IDField,
		NameHint:  entry.NameField,
	}
	var d importer.Designator
	if interactive {
		d = promptDesignator{}
	}
	st, err = st.Resolve(opts, d)
	if err != nil {
		return handleImportError(err)
	}
	if !isJSONOutput() {
		if st.Resolution.IDFromHint {
			fmt.Println(ui.Infof("Using id field %s (from catalog)", ui.ID(st.Resolution.IDField)))
		}
		if st.Resolution.NameFromHint {
			fmt.Println(ui.Infof("Using name field %s (from catalog)", ui.ID(st.Resolution.NameField)))
		}
	}

	if st, err = st.Exclude(storeExclude...); err != nil {
		return handleImportError(err)
	}

	id := storeDatasetID
	if id == "" {
		id = entry.ID
	}
	name := storeName
	if name == "" {
		name = entry.Name
	}
	desc := storeDescription
	if desc == "" {
		desc = entry.Description
	}
	st, lowered, err := st.WithDataset(id, name, desc)
	if err != nil {
		return handleImportError(err)
	}
	if lowered && !isJSONOutput() {
		fmt.Println(ui.Infof("Dataset id lower-cased to %s", ui.ID(st.DatasetID)))
	}

	st, err = st.Build()
	if err != nil {
		return handleImportError(err)
	}

	if interactive {
		if !promptConfirm(fmt.Sprintf("Upload %d items to dataset %s?", len(st.Items), st.DatasetID)) {
			return handleErrorMsg(ErrAborted, "pull aborted", "")
		}
	}

	return uploadDataset(st, "store:"+entry.ID)
}

func init() {
	storeCmd.PersistentFlags().StringVar(&storeURL, "store", "", "Store base URL (defaults to the public store)")
	storeListCmd.Flags().StringVarP(&storeQuery, "query", "q", "", "Filter the catalog by search text")
	storePullCmd.Flags().StringVar(&storeIDField, "id-field", "", "Field holding the unique item ID (overrides the catalog hint)")
	storePullCmd.Flags().StringVar(&storeNameField, "name-field", "", "Field holding the item display name (overrides the catalog hint)")
	storePullCmd.Flags().StringSliceVar(&storeExclude, "exclude", nil, "Fields to leave out of item data (repeatable)")
	storePullCmd.Flags().StringVar(&storeDatasetID, "dataset-id", "", "Identifier for the new dataset (defaults to the store id)")
	storePullCmd.Flags().StringVar(&storeName, "name", "", "Display name for the new dataset (defaults to the store name)")
	storePullCmd.Flags().StringVar(&storeDescription, "description", "", "Description for the new dataset")
	storePullCmd.Flags().BoolVarP(&storeYes, "yes", "y", false, "Skip all prompts")

	storeCmd.AddCommand(storeListCmd)
	storeCmd.AddCommand(storeSearchCmd)
	storeCmd.AddCommand(storePullCmd)
	rootCmd.AddCommand(storeCmd)
}
