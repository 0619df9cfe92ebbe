package cli

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/config"
	"github.com/dukerupert/taskquest/internal/incentive"
	"github.com/dukerupert/taskquest/internal/logging"
	"github.com/dukerupert/taskquest/internal/store"
)

// StatsOptions holds flags for the stats command.
type StatsOptions struct {
	*RootOptions
	CatalogPath string
}

func NewStatsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &StatsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "stats <member-id>",
		Short: "Print a member's points, streak and badges",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid member id %q", args[0])
			}

			catalog, err := config.Config{CatalogPath: opts.CatalogPath}.Catalog()
			if err != nil {
				return err
			}

			db, err := opts.openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			m, err := store.NewMemberStore(db).GetByID(cmd.Context(), id)
			if err != nil {
				return err
			}
			if m == nil {
				return fmt.Errorf("member %d not found", id)
			}

			logger := logging.New(cmd.ErrOrStderr(), "warn")
			svc := incentive.New(db, catalog, logger.With(slog.String("component", "incentive")))
			actor := auth.AuthContext{MemberID: m.ID, WorkspaceID: m.WorkspaceID, Role: m.Role}
			st, err := svc.GetMemberStats(cmd.Context(), actor, m.ID)
			if err != nil {
				return err
			}

			badges := "none"
			if len(st.EarnedBadgeIDs) > 0 {
				badges = strings.Join(st.EarnedBadgeIDs, ", ")
			}
			text := fmt.Sprintf("%s: %d points, %d tasks completed, streak %d, badges: %s",
				m.Name, st.Points, st.TotalCompleted, st.Streak, badges)
			return printResult(cmd.OutOrStdout(), opts.Format, st, text)
		},
	}

	cmd.Flags().StringVar(&opts.CatalogPath, "catalog", envOr("TASKQUEST_BADGE_CATALOG", ""), "badge catalog YAML (default: built-in)")
	return cmd
}
