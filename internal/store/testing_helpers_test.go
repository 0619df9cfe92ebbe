package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dukerupert/taskquest/internal/database"
	"github.com/dukerupert/taskquest/internal/model"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func seedMember(t *testing.T, db *sql.DB, points int) (*model.Workspace, *model.Member) {
	t.Helper()
	ctx := context.Background()
	ws, err := NewWorkspaceStore(db).Create(ctx, "Acme")
	if err != nil {
		t.Fatalf("create workspace: %v", err)
	}
	m, err := NewMemberStore(db).Create(ctx, ws.ID, "Alice", "alice@example.com", model.RoleMember)
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	if points > 0 {
		if err := NewLedger(db).Award(ctx, m.ID, points); err != nil {
			t.Fatalf("seed points: %v", err)
		}
	}
	return ws, m
}
