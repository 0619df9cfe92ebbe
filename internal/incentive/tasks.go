package incentive

import (
	"context"
	"database/sql"
	"strings"

	"github.com/dukerupert/taskquest/internal/apperr"
	"github.com/dukerupert/taskquest/internal/auth"
	"github.com/dukerupert/taskquest/internal/model"
	"github.com/dukerupert/taskquest/internal/store"
	"github.com/dukerupert/taskquest/internal/task"
	"github.com/dukerupert/taskquest/internal/websocket"
)

// NewTask describes a task to create. Tasks always start open.
type NewTask struct {
	Title      string           `json:"title"`
	Difficulty model.Difficulty `json:"difficulty"`
	Status     model.TaskStatus `json:"status"`
	AssigneeID *int64           `json:"assignee_id"`
	ProjectID  *int64           `json:"project_id"`
	Position   int              `json:"position"`
}

// TaskUpdate is a partial update of one task. Nil fields are left unchanged;
// Unassign clears the assignee.
type TaskUpdate struct {
	Title      *string           `json:"title"`
	Status     *model.TaskStatus `json:"status"`
	Difficulty *model.Difficulty `json:"difficulty"`
	AssigneeID *int64            `json:"assignee_id"`
	Unassign   bool              `json:"unassign"`
	Position   *int              `json:"position"`
	Archived   *bool             `json:"archived"`
}

// BulkResult summarizes a bulk board update.
type BulkResult struct {
	UpdatedCount    int `json:"updated_count"`
	SideEffectCount int `json:"side_effect_count"`
}

func (s *Service) CreateTask(ctx context.Context, actor auth.AuthContext, nt NewTask) (*model.Task, error) {
	nt.Title = strings.TrimSpace(nt.Title)
	if nt.Title == "" {
		return nil, apperr.InvalidInput("title is required")
	}
	if nt.Difficulty == "" {
		nt.Difficulty = model.DifficultyEasy
	}
	if !nt.Difficulty.Valid() {
		return nil, apperr.InvalidState("unknown difficulty %q", nt.Difficulty)
	}
	if nt.Status == "" {
		nt.Status = model.StatusNew
	}
	if !nt.Status.Valid() {
		return nil, apperr.InvalidInput("unknown status %q", nt.Status)
	}
	if nt.Status == model.StatusDone {
		return nil, apperr.InvalidInput("tasks cannot be created as %s", model.StatusDone)
	}

	var created *model.Task
	var assignee *model.Member
	err := store.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		if nt.ProjectID != nil {
			p, err := store.NewWorkspaceStore(tx).GetProject(ctx, *nt.ProjectID)
			if err != nil {
				return err
			}
			if p == nil || p.WorkspaceID != actor.WorkspaceID {
				return apperr.NotFound("project %d not found", *nt.ProjectID)
			}
		}
		if nt.AssigneeID != nil {
			var err error
			if assignee, err = workspaceMember(ctx, tx, actor.WorkspaceID, *nt.AssigneeID); err != nil {
				return err
			}
		}

		var err error
		created, err = store.NewTaskStore(tx).Create(ctx, model.Task{
			WorkspaceID: actor.WorkspaceID,
			ProjectID:   nt.ProjectID,
			Title:       nt.Title,
			Status:      nt.Status,
			Difficulty:  nt.Difficulty,
			AssigneeID:  nt.AssigneeID,
			Position:    nt.Position,
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("task", "created", created.ID, nil))
	if assignee != nil {
		s.notifyAssigned(ctx, *assignee, *created)
	}
	return created, nil
}

func (s *Service) ListTasks(ctx context.Context, actor auth.AuthContext) ([]model.Task, error) {
	return store.NewTaskStore(s.db).List(ctx, actor.WorkspaceID)
}

// UpdateTaskStatus applies u to a task and settles the incentive side
// effects of any move into or out of DONE. The task row is committed before
// points and badges move; their failures are logged and do not fail the
// update.
func (s *Service) UpdateTaskStatus(ctx context.Context, actor auth.AuthContext, taskID int64, u TaskUpdate) (*model.Task, error) {
	var prev task.State
	var updated *model.Task
	var newAssignee *model.Member

	err := store.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := store.NewTaskStore(tx)
		t, err := tasks.GetByID(ctx, taskID)
		if err != nil {
			return err
		}
		if t == nil {
			return apperr.NotFound("task %d not found", taskID)
		}
		if t.WorkspaceID != actor.WorkspaceID {
			return apperr.Unauthorized("task %d belongs to another workspace", taskID)
		}
		prev = task.State{Status: t.Status, AssigneeID: t.AssigneeID, Difficulty: t.Difficulty}

		if u.Title != nil {
			title := strings.TrimSpace(*u.Title)
			if title == "" {
				return apperr.InvalidInput("title is required")
			}
			t.Title = title
		}
		if u.Status != nil {
			if !u.Status.Valid() {
				return apperr.InvalidInput("unknown status %q", *u.Status)
			}
			t.Status = *u.Status
		}
		if u.Difficulty != nil {
			if !u.Difficulty.Valid() {
				return apperr.InvalidState("unknown difficulty %q", *u.Difficulty)
			}
			t.Difficulty = *u.Difficulty
		}
		switch {
		case u.Unassign:
			t.AssigneeID = nil
		case u.AssigneeID != nil:
			m, err := workspaceMember(ctx, tx, actor.WorkspaceID, *u.AssigneeID)
			if err != nil {
				return err
			}
			if !sameMember(prev.AssigneeID, u.AssigneeID) {
				newAssignee = m
			}
			t.AssigneeID = u.AssigneeID
		}
		if u.Position != nil {
			t.Position = *u.Position
		}
		if u.Archived != nil {
			t.Archived = *u.Archived
		}

		if err := checkCompletedEdit(prev, t); err != nil {
			return err
		}
		s.stampCompletion(prev.Status, t)

		ok, err := tasks.Save(ctx, t, prev.Status)
		if err != nil {
			return err
		}
		if !ok {
			return apperr.InvalidState("task %d changed concurrently, reload and retry", taskID)
		}
		updated = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	next := task.State{Status: updated.Status, AssigneeID: updated.AssigneeID, Difficulty: updated.Difficulty}
	if ev, ok := task.Transition(updated.ID, prev, next); ok {
		s.settle(ctx, actor.WorkspaceID, []task.Event{ev})
	}

	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("task", "updated", updated.ID, map[string]any{
		"status": updated.Status,
	}))
	if newAssignee != nil {
		s.notifyAssigned(ctx, *newAssignee, *updated)
	}
	return updated, nil
}

// BulkUpdate applies a board reorder or multi-task move. Every entry is
// classified against the state its task had before the entry, starting from
// the pre-batch persisted state, and each task contributes at most one award
// and one removal. All rows are written in one transaction before any
// points move.
func (s *Service) BulkUpdate(ctx context.Context, actor auth.AuthContext, entries []task.BatchEntry) (BulkResult, error) {
	if len(entries) == 0 {
		return BulkResult{}, apperr.InvalidInput("no updates given")
	}
	ids := make([]int64, 0, len(entries))
	seen := make(map[int64]struct{}, len(entries))
	for _, e := range entries {
		if !e.Status.Valid() {
			return BulkResult{}, apperr.InvalidInput("task %d: unknown status %q", e.TaskID, e.Status)
		}
		if _, ok := seen[e.TaskID]; !ok {
			seen[e.TaskID] = struct{}{}
			ids = append(ids, e.TaskID)
		}
	}

	prior := make(map[int64]task.State, len(ids))
	err := store.RunInTx(ctx, s.db, func(tx *sql.Tx) error {
		tasks := store.NewTaskStore(tx)
		loaded, err := tasks.GetByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for _, id := range ids {
			t, ok := loaded[id]
			if !ok {
				return apperr.NotFound("task %d not found", id)
			}
			if t.WorkspaceID != actor.WorkspaceID {
				return apperr.Unauthorized("task %d belongs to another workspace", id)
			}
			prior[id] = task.State{Status: t.Status, AssigneeID: t.AssigneeID, Difficulty: t.Difficulty}
		}

		members := make(map[int64]struct{})
		for _, e := range entries {
			t := loaded[e.TaskID]
			before := task.State{Status: t.Status, AssigneeID: t.AssigneeID, Difficulty: t.Difficulty}

			if e.AssigneeID != nil {
				if _, ok := members[*e.AssigneeID]; !ok {
					if _, err := workspaceMember(ctx, tx, actor.WorkspaceID, *e.AssigneeID); err != nil {
						return err
					}
					members[*e.AssigneeID] = struct{}{}
				}
				t.AssigneeID = e.AssigneeID
			}
			t.Status = e.Status
			t.Position = e.Position

			if err := checkCompletedEdit(before, t); err != nil {
				return err
			}
			s.stampCompletion(before.Status, t)

			ok, err := tasks.Save(ctx, t, before.Status)
			if err != nil {
				return err
			}
			if !ok {
				return apperr.InvalidState("task %d changed concurrently, reload and retry", e.TaskID)
			}
		}
		return nil
	})
	if err != nil {
		return BulkResult{}, err
	}

	events := task.PlanBatch(prior, entries)
	applied := s.settle(ctx, actor.WorkspaceID, events)

	s.hub.BroadcastTo(actor.WorkspaceID, websocket.NewMessage("tasks", "bulk_updated", 0, map[string]any{
		"count": len(entries),
	}))
	return BulkResult{UpdatedCount: len(entries), SideEffectCount: applied}, nil
}

// checkCompletedEdit rejects changing who or what was credited while a task
// stays DONE, so a later removal takes back exactly what was awarded.
func checkCompletedEdit(prev task.State, t *model.Task) error {
	if prev.Status != model.StatusDone || t.Status != model.StatusDone {
		return nil
	}
	if t.Difficulty != prev.Difficulty {
		return apperr.InvalidState("task %d is done; reopen it before changing difficulty", t.ID)
	}
	if !sameMember(prev.AssigneeID, t.AssigneeID) {
		return apperr.InvalidState("task %d is done; reopen it before reassigning", t.ID)
	}
	return nil
}

// stampCompletion sets completed_at on entry to DONE and clears it on exit.
func (s *Service) stampCompletion(prevStatus model.TaskStatus, t *model.Task) {
	now := s.clock()
	switch {
	case t.Status == model.StatusDone && prevStatus != model.StatusDone:
		t.CompletedAt = &now
	case t.Status != model.StatusDone:
		t.CompletedAt = nil
	}
	t.UpdatedAt = now
}

func (s *Service) notifyAssigned(ctx context.Context, m model.Member, t model.Task) {
	if m.Email == "" {
		return
	}
	if err := s.notifier.TaskAssigned(ctx, m, t); err != nil {
		s.logger.Error("notify assignee", "task_id", t.ID, "member_id", m.ID, "error", err)
	}
}

func workspaceMember(ctx context.Context, q store.Querier, workspaceID, memberID int64) (*model.Member, error) {
	m, err := store.NewMemberStore(q).GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.WorkspaceID != workspaceID {
		return nil, apperr.InvalidInput("member %d is not in this workspace", memberID)
	}
	return m, nil
}

func sameMember(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
