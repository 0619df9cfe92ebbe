package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/store"
)

// ItemAddOptions holds flags for item add.
type ItemAddOptions struct {
	*RootOptions
	WorkspaceID int64
	Name        string
	Description string
	Cost        int
	Stock       int
	Inactive    bool
}

func NewItemCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "item",
		Short: "Manage reward store items",
	}

	opts := &ItemAddOptions{RootOptions: rootOpts}
	add := &cobra.Command{
		Use:   "add",
		Short: "Add an item to a workspace's reward store",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Cost < 0 {
				return fmt.Errorf("--cost must not be negative")
			}
			var stock *int
			if opts.Stock >= 0 {
				stock = &opts.Stock
			}

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ws, err := store.NewWorkspaceStore(db).GetByID(cmd.Context(), opts.WorkspaceID)
			if err != nil {
				return err
			}
			if ws == nil {
				return fmt.Errorf("workspace %d not found", opts.WorkspaceID)
			}

			item, err := store.NewStoreItemStore(db).Create(cmd.Context(), ws.ID, opts.Name, opts.Description, opts.Cost, stock, !opts.Inactive)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.Format, item,
				fmt.Sprintf("added item %d (%s) costing %d points", item.ID, item.Name, item.PointsCost))
		},
	}

	add.Flags().Int64Var(&opts.WorkspaceID, "workspace", 0, "workspace id")
	add.Flags().StringVar(&opts.Name, "name", "", "item name")
	add.Flags().StringVar(&opts.Description, "description", "", "item description")
	add.Flags().IntVar(&opts.Cost, "cost", 0, "price in points")
	add.Flags().IntVar(&opts.Stock, "stock", -1, "units available (-1 for unlimited)")
	add.Flags().BoolVar(&opts.Inactive, "inactive", false, "create the item hidden from the store")
	add.MarkFlagRequired("workspace")
	add.MarkFlagRequired("name")
	add.MarkFlagRequired("cost")

	cmd.AddCommand(add)
	return cmd
}
