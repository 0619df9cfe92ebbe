package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/taskquest/internal/model"
)

type MemberStore struct {
	db Querier
}

func NewMemberStore(db Querier) *MemberStore {
	return &MemberStore{db: db}
}

func scanMember(scanner interface{ Scan(...any) error }) (*model.Member, error) {
	var m model.Member
	var keyHash string

	err := scanner.Scan(&m.ID, &m.WorkspaceID, &m.Name, &m.Email, &m.Role, &m.Points, &keyHash, &m.CreatedAt)
	if err != nil {
		return nil, err
	}

	m.HasAPIKey = keyHash != ""
	return &m, nil
}

const memberCols = `id, workspace_id, name, email, role, points, api_key_hash, created_at`

func (s *MemberStore) Create(ctx context.Context, workspaceID int64, name, email, role string) (*model.Member, error) {
	if role == "" {
		role = model.RoleMember
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO members (workspace_id, name, email, role) VALUES (?, ?, ?, ?)`,
		workspaceID, name, email, role,
	)
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

// GetByID loads a member together with their earned badge ids.
func (s *MemberStore) GetByID(ctx context.Context, id int64) (*model.Member, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+memberCols+` FROM members WHERE id = ?`, id)
	m, err := scanMember(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get member: %w", err)
	}

	m.EarnedBadgeIDs, err = NewBadgeStore(s.db).Earned(ctx, id)
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MemberStore) ListByWorkspace(ctx context.Context, workspaceID int64) ([]model.Member, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+memberCols+` FROM members WHERE workspace_id = ? ORDER BY points DESC, name ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (s *MemberStore) SetAPIKeyHash(ctx context.Context, id int64, hash string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE members SET api_key_hash = ? WHERE id = ?`, hash, id)
	if err != nil {
		return fmt.Errorf("set api key hash: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("set api key hash: member %d not found", id)
	}
	return nil
}

// GetAPIKeyHash returns the stored key hash, or "" if the member does not
// exist or has no key.
func (s *MemberStore) GetAPIKeyHash(ctx context.Context, id int64) (string, error) {
	var hash string
	err := s.db.QueryRowContext(ctx, `SELECT api_key_hash FROM members WHERE id = ?`, id).Scan(&hash)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get api key hash: %w", err)
	}
	return hash, nil
}
