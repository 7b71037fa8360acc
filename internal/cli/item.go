package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coretravis/refwire-cli/internal/refwire"
	"github.com/coretravis/refwire-cli/internal/ui"
)

var (
	itemSkip  int
	itemTake  int
	itemName  string
	itemData  string
	itemForce bool
)

var itemCmd = &cobra.Command{
	Use:     "item",
	Aliases: []string{"items"},
	Short:   "Manage items within a dataset",
}

var itemListCmd = &cobra.Command{
	Use:   "list <dataset-id>",
	Short: "List a dataset's items",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Fetching items")
		items, err := apiClient().ListItems(context.Background(), args[0], refwire.Page{Skip: itemSkip, Take: itemTake})
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(items, &Meta{Count: len(items)})
			return nil
		}

		if len(items) == 0 {
			fmt.Println(ui.Hint("No items."))
			return nil
		}
		printItemTable(items)
		fmt.Println(ui.Count(len(items), "item", "items"))
		return nil
	},
}

var itemGetCmd = &cobra.Command{
	Use:   "get <dataset-id> <item-id>",
	Short: "Show a single item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Fetching item")
		item, err := apiClient().GetItem(context.Background(), args[0], args[1])
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(item, nil)
			return nil
		}
		printItemDetail(item)
		return nil
	},
}

var itemAddCmd = &cobra.Command{
	Use:   "add <dataset-id> <item-id>",
	Short: "Add an item to a dataset",
	Long: `Add an item to an existing dataset.

The item's data fields are given as a JSON object via --data.

Examples:
  refwire item add countries pt --name Portugal --data '{"code":"PT","population":10300000}'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildItemRequest(args[1])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		spinner := newNetworkSpinner("Adding item")
		item, err := apiClient().AddItem(context.Background(), args[0], req)
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(item, nil)
			return nil
		}
		fmt.Println(ui.Successf("Added item %s to %s", ui.ID(item.ID), ui.ID(args[0])))
		return nil
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:   "update <dataset-id> <item-id>",
	Short: "Update an item's name and data",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req, err := buildItemRequest(args[1])
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		spinner := newNetworkSpinner("Updating item")
		item, err := apiClient().UpdateItem(context.Background(), args[0], args[1], req)
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(item, nil)
			return nil
		}
		fmt.Println(ui.Successf("Updated item %s", ui.ID(item.ID)))
		return nil
	},
}

var itemArchiveCmd = &cobra.Command{
	Use:   "archive <dataset-id> <item-id>",
	Short: "Archive an item without deleting it",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Archiving item")
		err := apiClient().ArchiveItem(context.Background(), args[0], args[1])
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"dataset": args[0], "id": args[1]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Archived item %s", ui.ID(args[1])))
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:   "delete <dataset-id> <item-id>",
	Short: "Permanently delete an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !itemForce && !isJSONOutput() {
			if !promptConfirm(fmt.Sprintf("Delete item %s from %s?", args[1], args[0])) {
				return handleErrorMsg(ErrAborted, "aborted", "")
			}
		}

		spinner := newNetworkSpinner("Deleting item")
		err := apiClient().DeleteItem(context.Background(), args[0], args[1])
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(map[string]string{"dataset": args[0], "id": args[1]}, nil)
			return nil
		}
		fmt.Println(ui.Successf("Deleted item %s", ui.ID(args[1])))
		return nil
	},
}

var itemSearchCmd = &cobra.Command{
	Use:   "search <dataset-id> <query>",
	Short: "Search a dataset's items",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		spinner := newNetworkSpinner("Searching")
		items, err := apiClient().SearchItems(context.Background(), args[0], args[1], itemTake)
		spinner.Stop()
		if err != nil {
			return handleAPIError(err)
		}

		if isJSONOutput() {
			outputSuccess(items, &Meta{Count: len(items)})
			return nil
		}

		if len(items) == 0 {
			fmt.Println(ui.Hint("No matching items."))
			return nil
		}
		printItemTable(items)
		fmt.Println(ui.Count(len(items), "match", "matches"))
		return nil
	},
}

// buildItemRequest assembles the add/update body from flags.
func buildItemRequest(itemID string) (refwire.ItemRequest, error) {
	req := refwire.ItemRequest{ID: itemID, Name: itemName}
	if req.Name == "" {
		return req, fmt.Errorf("--name is required")
	}
	if itemData != "" {
		if err := json.Unmarshal([]byte(itemData), &req.Data); err != nil {
			return req, fmt.Errorf("--data is not a JSON object: %w", err)
		}
	}
	return req, nil
}

func printItemTable(items []refwire.Item) {
	tbl := ui.NewTable(3)
	tbl.AddRow("ID", "NAME", "STATUS")
	for _, it := range items {
		status := ""
		if it.IsArchived {
			status = ui.Muted.Render("archived")
		}
		tbl.AddRow(it.ID, it.Name, status)
	}
	fmt.Print(tbl.String())
}

func printItemDetail(item *refwire.Item) {
	fmt.Println(ui.Header(fmt.Sprintf("%s (%s)", item.Name, ui.ID(item.ID))))
	if item.IsArchived {
		fmt.Println(ui.Warning("This item is archived."))
	}
	if len(item.Data) == 0 {
		return
	}
	data, err := json.MarshalIndent(item.Data, "", "  ")
	if err != nil {
		return
	}
	fmt.Println(string(data))
}

func init() {
	itemListCmd.Flags().IntVar(&itemSkip, "skip", 0, "Number of items to skip")
	itemListCmd.Flags().IntVar(&itemTake, "take", 0, "Maximum items to return")
	itemSearchCmd.Flags().IntVar(&itemTake, "take", 0, "Maximum matches to return")
	itemAddCmd.Flags().StringVar(&itemName, "name", "", "Item display name (required)")
	itemAddCmd.Flags().StringVar(&itemData, "data", "", "Item data as a JSON object")
	itemUpdateCmd.Flags().StringVar(&itemName, "name", "", "Item display name (required)")
	itemUpdateCmd.Flags().StringVar(&itemData, "data", "", "Item data as a JSON object")
	itemDeleteCmd.Flags().BoolVarP(&itemForce, "force", "f", false, "Skip the confirmation prompt")

	itemCmd.AddCommand(itemListCmd)
	itemCmd.AddCommand(itemGetCmd)
	itemCmd.AddCommand(itemAddCmd)
	itemCmd.AddCommand(itemUpdateCmd)
	itemCmd.AddCommand(itemArchiveCmd)
	itemCmd.AddCommand(itemDeleteCmd)
	itemCmd.AddCommand(itemSearchCmd)
	rootCmd.AddCommand(itemCmd)
}
