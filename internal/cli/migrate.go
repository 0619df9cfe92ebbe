package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/database"
)

func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			v, err := database.Version(db)
			if err != nil {
				return err
			}
			return printResult(cmd.OutOrStdout(), opts.Format,
				map[string]int64{"version": v},
				fmt.Sprintf("schema at version %d", v))
		},
	}
}
