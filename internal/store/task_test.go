package store

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/taskquest/internal/model"
)

func TestTaskCreateAndSave(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, m := seedMember(t, db, 0)
	ts := NewTaskStore(db)

	task, err := ts.Create(ctx, model.Task{
		WorkspaceID: ws.ID,
		Title:       "Write docs",
		Difficulty:  model.DifficultyMedium,
		AssigneeID:  &m.ID,
	})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}
	if task.Status != model.StatusNew {
		t.Errorf("status = %q, want %q", task.Status, model.StatusNew)
	}
	if task.AssigneeID == nil || *task.AssigneeID != m.ID {
		t.Errorf("assignee = %v, want %d", task.AssigneeID, m.ID)
	}

	done := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	task.Status = model.StatusDone
	task.CompletedAt = &done
	task.UpdatedAt = done
	ok, err := ts.Save(ctx, task, model.StatusNew)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if !ok {
		t.Fatal("save with matching expected status should apply")
	}

	got, err := ts.GetByID(ctx, task.ID)
	if err != nil {
		t.Fatalf("get task: %v", err)
	}
	if got.Status != model.StatusDone {
		t.Errorf("status = %q, want %q", got.Status, model.StatusDone)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(done) {
		t.Errorf("completed_at = %v, want %v", got.CompletedAt, done)
	}
}

func TestTaskSaveStaleStatus(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, _ := seedMember(t, db, 0)
	ts := NewTaskStore(db)

	task, err := ts.Create(ctx, model.Task{WorkspaceID: ws.ID, Title: "Ship", Status: model.StatusToDo, Difficulty: model.DifficultyEasy})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	task.Status = model.StatusInProgress
	ok, err := ts.Save(ctx, task, model.StatusDone)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	if ok {
		t.Error("save with stale expected status should not apply")
	}
}

func TestTaskGetByIDs(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, _ := seedMember(t, db, 0)
	ts := NewTaskStore(db)

	a, _ := ts.Create(ctx, model.Task{WorkspaceID: ws.ID, Title: "A", Difficulty: model.DifficultyEasy})
	b, _ := ts.Create(ctx, model.Task{WorkspaceID: ws.ID, Title: "B", Difficulty: model.DifficultyHard})

	got, err := ts.GetByIDs(ctx, []int64{a.ID, b.ID, 999})
	if err != nil {
		t.Fatalf("get by ids: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[b.ID].Difficulty != model.DifficultyHard {
		t.Errorf("difficulty = %q, want %q", got[b.ID].Difficulty, model.DifficultyHard)
	}
}

func TestStatsQueries(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, m := seedMember(t, db, 0)
	ts := NewTaskStore(db)
	now := time.Date(2026, 10, 19, 15, 0, 0, 0, time.UTC)

	for i, d := range []model.Difficulty{model.DifficultyEasy, model.DifficultyEasy, model.DifficultyHard} {
		completed := now.AddDate(0, 0, -i)
		if _, err := ts.Create(ctx, model.Task{
			WorkspaceID: ws.ID, Title: "t", Difficulty: d, AssigneeID: &m.ID,
			Status: model.StatusDone, CompletedAt: &completed,
		}); err != nil {
			t.Fatalf("create task: %v", err)
		}
	}
	old := now.AddDate(0, 0, -60)
	ts.Create(ctx, model.Task{WorkspaceID: ws.ID, Title: "old", Difficulty: model.DifficultyMedium, AssigneeID: &m.ID, Status: model.StatusDone, CompletedAt: &old})
	ts.Create(ctx, model.Task{WorkspaceID: ws.ID, Title: "open", Difficulty: model.DifficultyHard, AssigneeID: &m.ID, Status: model.StatusToDo})

	ss := NewStatsStore(db)
	counts, err := ss.CompletedByDifficulty(ctx, m.ID)
	if err != nil {
		t.Fatalf("completed by difficulty: %v", err)
	}
	if counts[model.DifficultyEasy] != 2 || counts[model.DifficultyHard] != 1 || counts[model.DifficultyMedium] != 1 {
		t.Errorf("counts = %v", counts)
	}

	recent, err := ss.CompletionsSince(ctx, m.ID, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("completions since: %v", err)
	}
	if len(recent) != 3 {
		t.Errorf("len(recent) = %d, want 3", len(recent))
	}
}
