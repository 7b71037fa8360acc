package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/importer"
	"github.com/coretravis/refwire-cli/internal/refwire"
	"github.com/coretravis/refwire-cli/internal/ui"
)

var (
	datasetSkip  int
	datasetTake  int
	datasetForce bool
)

var datasetCmd = &cobra.Command{
	Use:     "dataset",
	Aliases: []string{"datasets", "ds"},
	Short:   "Manage datasets on the server",
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List datasets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Fetching datasets")
		datasets, err := apiClient().ListDatasets(context.Background(), refwire.Page{Skip: datasetSkip, Take: datasetTake})
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(datasets, &Meta{Count: len(datasets)})
			return nil
		}

		if len(datasets) == 0 {
			fmt.Println(ui.Hint("No datasets. Run 'refwire import <file.json>' to create one."))
			return nil
		}
		tbl := ui.NewTable(4)
		tbl.AddRow("ID", "NAME", "ITEMS", "DESCRIPTION")
		for _, d := range datasets {
			tbl.AddRow(d.ID, d.Name, fmt.Sprintf("%d", d.ItemCount), d.Description)
		}
		fmt.Print(tbl.String())
		fmt.Println(ui.Count(len(datasets), "dataset", "datasets"))
		return nil
	},
}

var datasetGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a dataset's detail and field definitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Fetching dataset")
		dataset, err := apiClient().GetDataset(context.Background(), args[0])
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(dataset, nil)
			return nil
		}

		fmt.Println(ui.Header(fmt.Sprintf("%s (%s)", dataset.Name, ui.ID(dataset.ID))))
		if dataset.Description != "" {
			fmt.Println(ui.Muted.Render(dataset.Description))
		}
		fmt.Printf("%d items\n\n", dataset.ItemCount)

		tbl := ui.NewTable(4)
		tbl.AddRow("FIELD", "TYPE", "ROLE", "SAMPLES")
		for _, f := range dataset.Fields {
			role := ""
			switch {
			case f.IsID:
				role = "id"
			case f.IsName:
				role = "name"
			case !f.IsIncluded:
				role = "excluded"
			}
			samples := ""
			if len(f.SampleValues) > 0 {
				samples = ui.Hint(strings.Join(f.SampleValues, ", "))
			}
			tbl.AddRow(f.Name, f.DataType, role, samples)
		}
		fmt.Print(tbl.String())
		return nil
	},
}

var (
	datasetCreateName        string
	datasetCreateDescription string
	datasetCreateIDField     string
	datasetCreateNameField   string
)

var datasetCreateCmd = &cobra.Command{
	Use:   "create <id>",
	Short: "Create an empty dataset",
	Long: `Create an empty dataset with just its ID and Name fields defined.

Use 'refwire import' to create a dataset from existing data; this command is
for datasets populated item by item with 'refwire item add'.

Examples:
  refwire dataset create countries --name Countries
  refwire dataset create countries --name Countries --id-field code`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if datasetCreateName == "" {
			return handleErrorMsg(ErrInvalidInput, "--name is required", "")
		}
		id, lowered, err := importer.NormalizeDatasetID(args[0])
		if err != nil {
			return handleImportError(err)
		}
		if lowered && !isJSONOutput() {
			fmt.Println(ui.Infof("Dataset id lower-cased to %s", ui.ID(id)))
		}

		req := refwire.CreateDatasetRequest{
			ID:          id,
			Name:        datasetCreateName,
			Description: datasetCreateDescription,
			IDField:     datasetCreateIDField,
			NameField:   datasetCreateNameField,
			Fields: []refwire.DatasetField{
				{Name: datasetCreateIDField, DataType: "Text", IsID: true, IsRequired: true, IsIncluded: true},
				{Name: datasetCreateNameField, DataType: "Text", IsName: true, IsRequired: true, IsIncluded: true},
			},
			Items: map[string]refwire.Item{},
		}

		spinner := newNetworkSpinner("Creating dataset")
		dataset, err := apiClient().CreateDataset(context.Background(), req)
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(dataset, nil)
			return nil
		}
		fmt.Println(ui.Successf("Created dataset %s", ui.ID(dataset.ID)))
		return nil
	},
}

var datasetDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a dataset and all its items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !datasetForce && !isJSONOutput() {
			if !promptConfirm(fmt.Sprintf("Delete dataset %s and all its items?", args[0])) {
				return handleErrorMsg(ErrAborted, "aborted", "")
			}
		}

		spinner := newNetworkSpinner("Deleting dataset")
		err := apiClient().DeleteDataset(context.Background(), args[0])
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"id": args[0]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Deleted dataset %s", ui.ID(args[0])))
		return nil
	},
}

func init() {
	datasetListCmd.Flags().IntVar(&datasetSkip, "skip", 0, "Number of datasets to skip")
	datasetListCmd.Flags().IntVar(&datasetTake, "take", 0, "Maximum datasets to return")
	datasetDeleteCmd.Flags().BoolVarP(&datasetForce, "force", "f", false, "Skip the confirmation prompt")
	datasetCreateCmd.Flags().StringVar(&datasetCreateName, "name", "", "Display name for the dataset (required)")
	datasetCreateCmd.Flags().StringVar(&datasetCreateDescription, "description", "", "Description for the dataset")
	datasetCreateCmd.Flags().StringVar(&datasetCreateIDField, "id-field", "id", "Name of the ID field")
	datasetCreateCmd.Flags().StringVar(&datasetCreateNameField, "name-field", "name", "Name of the Name field")

	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetGetCmd)
	datasetCmd.AddCommand(datasetCreateCmd)
	datasetCmd.AddCommand(datasetDeleteCmd)
	rootCmd.AddCommand(datasetCmd)
}
