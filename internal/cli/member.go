package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/store"
)

// MemberAddOptions holds flags for member add.
type MemberAddOptions struct {
	*RootOptions
	WorkspaceID int64
	Name        string
	Email       string
	Manager     bool
}

func NewMemberCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "member",
		Short: "Manage workspace members",
	}
	cmd.AddCommand(newMemberAddCommand(rootOpts))
	cmd.AddCommand(newMemberKeyCommand(rootOpts))
	cmd.AddCommand(newMemberListCommand(rootOpts))
	return cmd
}

func newMemberAddCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &MemberAddOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a member to a workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
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

			role := model.RoleMember
			if opts.Manager {
				role = model.RoleManager
			}
			m, err := store.NewMemberStore(db).Create(cmd.Context(), ws.ID, opts.Name, opts.Email, role)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.Format, m,
				fmt.Sprintf("added %s %d (%s) to workspace %d", m.Role, m.ID, m.Name, ws.ID))
		},
	}

	cmd.Flags().Int64Var(&opts.WorkspaceID, "workspace", 0, "workspace id")
	cmd.Flags().StringVar(&opts.Name, "name", "", "display name")
	cmd.Flags().StringVar(&opts.Email, "email", "", "email for assignment notifications")
	cmd.Flags().BoolVar(&opts.Manager, "manager", false, "grant the manager role")
	cmd.MarkFlagRequired("workspace")
	cmd.MarkFlagRequired("name")

	return cmd
}

func newMemberKeyCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "key <member-id>",
		Short: "Issue a new API key, replacing any existing one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			members := store.NewMemberStore(db)
			m, err := members.GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("member %d not found", id)
			}

			key, hash, err := auth.GenerateAPIKey(m.ID)
			if err != nil {
				return err
			}
			if err := members.SetAPIKeyHash(cmd.Context(), m.ID, hash); err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.Format,
				map[string]any{"member_id": m.ID, "api_key": key},
				key)
		},
	}
}

func newMemberListCommand(opts *RootOptions) *cobra.Command {
	var workspaceID int64
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a workspace's members by points",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			members, err := store.NewMemberStore(db).ListByWorkspace(cmd.Context(), workspaceID)
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				if members == nil {
					members = []model.Member{}
				}
				return printResult(cmd.OutOrStdout(), opts.Format, members, "")
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tROLE\tPOINTS\tKEY")
			for _, m := range members {
				key := "-"
				if m.HasAPIKey {
					key = "yes"
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", m.ID, m.Name, m.Role, m.Points, key)
			}
			return w.Flush()
		},
	}
	cmd.Flags().Int64Var(&workspaceID, "workspace", 0, "workspace id")
	cmd.MarkFlagRequired("workspace")
	return cmd
}
