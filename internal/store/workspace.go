package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/taskquest/internal/model"
)

type WorkspaceStore struct {
	db Querier
}

func NewWorkspaceStore(db Querier) *WorkspaceStore {
	return &WorkspaceStore{db: db}
}

func (s *WorkspaceStore) Create(ctx context.Context, name string) (*model.Workspace, error) {
	result, err := s.db.ExecContext(ctx, `INSERT INTO workspaces (name) VALUES (?)`, name)
	if err != nil {
		return nil, fmt.Errorf("insert workspace: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *WorkspaceStore) GetByID(ctx context.Context, id int64) (*model.Workspace, error) {
	var w model.Workspace
	err := s.db.QueryRowContext(ctx,
		`SELECT id, name, created_at FROM workspaces WHERE id = ?`, id,
	).Scan(&w.ID, &w.Name, &w.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return &w, nil
}

func (s *WorkspaceStore) CreateProject(ctx context.Context, workspaceID int64, name string) (*model.Project, error) {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO projects (workspace_id, name) VALUES (?, ?)`, workspaceID, name,
	)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}

	return s.GetProject(ctx, id)
}

func (s *WorkspaceStore) GetProject(ctx context.Context, id int64) (*model.Project, error) {
	var p model.Project
	err := s.db.QueryRowContext(ctx,
		`SELECT id, workspace_id, name, created_at FROM projects WHERE id = ?`, id,
	).Scan(&p.ID, &p.WorkspaceID, &p.Name, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}
