package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/store"
)

// ProjectCreateOptions holds flags for project create.
type ProjectCreateOptions struct {
	*RootOptions
	WorkspaceID int64
}

func NewProjectCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage projects that group tasks",
	}

	opts := &ProjectCreateOptions{RootOptions: rootOpts}
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project in a workspace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(args[0])
			if name == "" {
				return fmt.Errorf("project name is required")
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

			p, err := store.NewWorkspaceStore(db).CreateProject(cmd.Context(), ws.ID, name)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.Format, p,
				fmt.Sprintf("created project %d (%s) in workspace %d", p.ID, p.Name, ws.ID))
		},
	}
	create.Flags().Int64Var(&opts.WorkspaceID, "workspace", 0, "workspace id")
	create.MarkFlagRequired("workspace")

	cmd.AddCommand(create)
	return cmd
}
