package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dukerupert/taskquest/internal/model"
)

type RedemptionStore struct {
	db Querier
}

func NewRedemptionStore(db Querier) *RedemptionStore {
	return &RedemptionStore{db: db}
}

func scanRedemption(scanner interface{ Scan(...any) error }) (*model.RedemptionRequest, error) {
	var r model.RedemptionRequest
	var reviewedBy sql.NullInt64
	var reviewedAt sql.NullTime

	err := scanner.Scan(
		&r.ID, &r.WorkspaceID, &r.MemberID, &r.StoreItemID, &r.PointsSpent, &r.Status,
		&r.Notes, &r.AdminNotes, &reviewedBy, &reviewedAt, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if reviewedBy.Valid {
		r.ReviewedBy = &reviewedBy.Int64
	}
	if reviewedAt.Valid {
		t := reviewedAt.Time.UTC()
		r.ReviewedAt = &t
	}
	return &r, nil
}

const redemptionCols = `id, workspace_id, member_id, store_item_id, points_spent, status, notes, admin_notes, reviewed_by, reviewed_at, created_at`

// Insert records a pending request. pointsSpent is fixed from here on.
func (s *RedemptionStore) Insert(ctx context.Context, workspaceID, memberID, itemID int64, pointsSpent int, notes string) (*model.RedemptionRequest, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO redemption_requests (workspace_id, member_id, store_item_id, points_spent, status, notes)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		workspaceID, memberID, itemID, pointsSpent, model.RedemptionPending, notes,
	)
	if err != nil {
		return nil, fmt.Errorf("insert redemption: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *RedemptionStore) GetByID(ctx context.Context, id int64) (*model.RedemptionRequest, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+redemptionCols+` FROM redemption_requests WHERE id = ?`, id)
	r, err := scanRedemption(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get redemption: %w", err)
	}
	return r, nil
}

// Review moves a pending request to status. It reports false without
// writing if the request is no longer pending.
func (s *RedemptionStore) Review(ctx context.Context, id int64, status model.RedemptionStatus, reviewerID int64, adminNotes string, at time.Time) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE redemption_requests SET status = ?, admin_notes = ?, reviewed_by = ?, reviewed_at = ?
		 WHERE id = ? AND status = ?`,
		status, adminNotes, reviewerID, at.UTC(), id, model.RedemptionPending,
	)
	if err != nil {
		return false, fmt.Errorf("review redemption: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("review redemption: rows affected: %w", err)
	}
	return n == 1, nil
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	MemberID int64
	Status   model.RedemptionStatus
}

// List returns a workspace's requests, newest first.
func (s *RedemptionStore) List(ctx context.Context, workspaceID int64, f ListFilter) ([]model.RedemptionRequest, error) {
	query := `SELECT ` + redemptionCols + ` FROM redemption_requests WHERE workspace_id = ?`
	args := []any{workspaceID}
	if f.MemberID != 0 {
		query += ` AND member_id = ?`
		args = append(args, f.MemberID)
	}
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, f.Status)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()

	var requests []model.RedemptionRequest
	for rows.Next() {
		r, err := scanRedemption(rows)
		if err != nil {
			return nil, fmt.Errorf("scan redemption: %w", err)
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

// SpentBy sums points_spent over the member's non-rejected requests.
func (s *RedemptionStore) SpentBy(ctx context.Context, memberID int64) (int, error) {
	var spent int
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(points_spent), 0) FROM redemption_requests WHERE member_id = ? AND status != ?`,
		memberID, model.RedemptionRejected,
	).Scan(&spent)
	if err != nil {
		return 0, fmt.Errorf("sum points spent: %w", err)
	}
	return spent, nil
}
