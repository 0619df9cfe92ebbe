package store

import (
	"context"
	"fmt"
	"time"
)

// BadgeStore persists each member's earned badge set. The (member_id,
// badge_id) primary key guarantees a badge is recorded at most once.
type BadgeStore struct {
	db Querier
}

func NewBadgeStore(db Querier) *BadgeStore {
	return &BadgeStore{db: db}
}

// Earned returns the member's badge ids in the order they were earned.
func (s *BadgeStore) Earned(ctx context.Context, memberID int64) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT badge_id FROM member_badges WHERE member_id = ? ORDER BY earned_at ASC, badge_id ASC`,
		memberID,
	)
	if err != nil {
		return nil, fmt.Errorf("list earned badges: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan badge id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Grant unions badgeIDs into the member's earned set and returns the ids
// that were not already present.
func (s *BadgeStore) Grant(ctx context.Context, memberID int64, badgeIDs []string, at time.Time) ([]string, error) {
	var added []string
	for _, id := range badgeIDs {
		result, err := s.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO member_badges (member_id, badge_id, earned_at) VALUES (?, ?, ?)`,
			memberID, id, at.UTC(),
		)
		if err != nil {
			return added, fmt.Errorf("grant badge %q: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n == 1 {
			added = append(added, id)
		}
	}
	return added, nil
}
