package cli

import (
	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/config"
)

// CatalogOptions holds flags for the catalog command.
type CatalogOptions struct {
	*RootOptions
	File string
}

func NewCatalogCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CatalogOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Validate and print the badge catalog",
		Long: `Validate and print the badge catalog.

Without --file the built-in catalog is printed as YAML, ready to be edited
and passed back through TASKQUEST_BADGE_CATALOG.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := config.Config{CatalogPath: opts.File}.Catalog()
			if err != nil {
				return err
			}
			if opts.Format == "json" {
				return printResult(cmd.OutOrStdout(), opts.Format, c.Definitions(), "")
			}
			return c.WriteYAML(cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.File, "file", "f", "", "catalog YAML to validate")
	return cmd
}
