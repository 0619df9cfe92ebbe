package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/store"
)

func NewWorkspaceCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "workspace",
		Short: "Manage workspaces",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("workspace name is required")
			}

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			ws, err := store.NewWorkspaceStore(db).Create(cmd.Context(), name)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.Format, ws,
				fmt.Sprintf("created workspace %d (%s)", ws.ID, ws.Name))
		},
	})
	return cmd
}
