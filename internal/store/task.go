package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/dukerupert/taskquest/internal/model"
)

type TaskStore struct {
	db Querier
}

func NewTaskStore(db Querier) *TaskStore {
	return &TaskStore{db: db}
}

func scanTask(scanner interface{ Scan(...any) error }) (*model.Task, error) {
	var t model.Task
	var projectID, assigneeID sql.NullInt64
	var archived int
	var completedAt sql.NullTime

	err := scanner.Scan(
		&t.ID, &t.WorkspaceID, &projectID, &t.Title, &t.Status, &t.Difficulty,
		&assigneeID, &archived, &t.Position, &completedAt,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if projectID.Valid {
		t.ProjectID = &projectID.Int64
	}
	if assigneeID.Valid {
		t.AssigneeID = &assigneeID.Int64
	}
	if completedAt.Valid {
		c := completedAt.Time.UTC()
		t.CompletedAt = &c
	}
	t.Archived = archived != 0
	return &t, nil
}

const taskCols = `id, workspace_id, project_id, title, status, difficulty, assignee_id, archived, position, completed_at, created_at, updated_at`

func (s *TaskStore) Create(ctx context.Context, t model.Task) (*model.Task, error) {
	if t.Status == "" {
		t.Status = model.StatusNew
	}
	var completedAt any
	if t.Status == model.StatusDone {
		now := time.Now().UTC()
		if t.CompletedAt != nil {
			now = t.CompletedAt.UTC()
		}
		completedAt = now
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO tasks (workspace_id, project_id, title, status, difficulty, assignee_id, position, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.WorkspaceID, nullInt64(t.ProjectID), t.Title, t.Status, t.Difficulty,
		nullInt64(t.AssigneeID), t.Position, completedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *TaskStore) GetByID(ctx context.Context, id int64) (*model.Task, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get task: %w", err)
	}
	return t, nil
}

// GetByIDs loads the given tasks keyed by id. Missing ids are absent from
// the result.
func (s *TaskStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]*model.Task, error) {
	tasks := make(map[int64]*model.Task, len(ids))
	if len(ids) == 0 {
		return tasks, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, `SELECT `+taskCols+` FROM tasks WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return nil, fmt.Errorf("get tasks: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks[t.ID] = t
	}
	return tasks, rows.Err()
}

// List returns a workspace's non-archived tasks in board order.
func (s *TaskStore) List(ctx context.Context, workspaceID int64) ([]model.Task, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+taskCols+` FROM tasks WHERE workspace_id = ? AND archived = 0 ORDER BY status ASC, position ASC, id ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []model.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scan task: %w", err)
		}
		tasks = append(tasks, *t)
	}
	return tasks, rows.Err()
}

// Save writes the mutable fields of t. When expectStatus is non-empty the
// write only happens if the stored status still equals it, and Save
// reports false otherwise.
func (s *TaskStore) Save(ctx context.Context, t *model.Task, expectStatus model.TaskStatus) (bool, error) {
	var completedAt any
	if t.CompletedAt != nil {
		completedAt = t.CompletedAt.UTC()
	}

	query := `UPDATE tasks SET title = ?, status = ?, difficulty = ?, assignee_id = ?, archived = ?,
		position = ?, completed_at = ?, updated_at = ? WHERE id = ?`
	args := []any{
		t.Title, t.Status, t.Difficulty, nullInt64(t.AssigneeID), boolInt(t.Archived),
		t.Position, completedAt, t.UpdatedAt.UTC(), t.ID,
	}
	if expectStatus != "" {
		query += ` AND status = ?`
		args = append(args, expectStatus)
	}

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update task: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update task: rows affected: %w", err)
	}
	return n == 1, nil
}
