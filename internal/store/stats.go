package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/taskquest/internal/model"
)

// StatsStore reads the completion history statistics are computed from.
type StatsStore struct {
	db Querier
}

func NewStatsStore(db Querier) *StatsStore {
	return &StatsStore{db: db}
}

// CompletedByDifficulty counts the member's DONE tasks per difficulty.
func (s *StatsStore) CompletedByDifficulty(ctx context.Context, memberID int64) (map[model.Difficulty]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT difficulty, COUNT(*) FROM tasks WHERE assignee_id = ? AND status = 'DONE' GROUP BY difficulty`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("count completions: %w", err)
	}
	defer rows.Close()

	counts := make(map[model.Difficulty]int)
	for rows.Next() {
		var d model.Difficulty
		var n int
		if err := rows.Scan(&d, &n); err != nil {
			return nil, fmt.Errorf("scan completion count: %w", err)
		}
		counts[d] = n
	}
	return counts, rows.Err()
}

// CompletionsSince returns completion timestamps of the member's DONE tasks
// at or after since, most recent first.
func (s *StatsStore) CompletionsSince(ctx context.Context, memberID int64, since time.Time) ([]time.Time, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT completed_at FROM tasks
		 WHERE assignee_id = ? AND status = 'DONE' AND completed_at IS NOT NULL AND completed_at >= ?
		 ORDER BY completed_at DESC`,
		memberID, since.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	defer rows.Close()

	var completions []time.Time
	for rows.Next() {
		var c sql.NullTime
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan completion: %w", err)
		}
		if c.Valid {
			completions = append(completions, c.Time.UTC())
		}
	}
	return completions, rows.Err()
}
