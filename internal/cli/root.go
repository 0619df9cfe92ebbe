// Package cli implements taskquestctl, the operator command line for seeding
// workspaces and inspecting the incentive engine.
package cli

import (
	"database/sql"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/database"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DBPath string
	Format string // "json" | "text"
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// NewRootCommand creates the root command for taskquestctl.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "taskquestctl",
		Short: "Operate a taskquest database",
		Long:  "Seed workspaces, members and store items, issue API keys, and inspect member stats.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidFormats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", envOr("TASKQUEST_DB_PATH", "taskquest.db"), "path to the SQLite database")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewWorkspaceCommand(opts))
	cmd.AddCommand(NewMemberCommand(opts))
	cmd.AddCommand(NewProjectCommand(opts))
	cmd.AddCommand(NewItemCommand(opts))
	cmd.AddCommand(NewStatsCommand(opts))
	cmd.AddCommand(NewCatalogCommand(opts))

	return cmd
}

// openDB opens the configured database, applying pending migrations.
func (o *RootOptions) openDB() (*sql.DB, error) {
	db, err := database.Open(o.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", o.DBPath, err)
	}
	return db, nil
}
