package store

import (
	"context"
	"testing"
	"time"

	"github.com/dukerupert/taskquest/internal/model"
)

func TestStoreItemStock(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, _ := seedMember(t, db, 0)
	is := NewStoreItemStore(db)

	one := 1
	item, err := is.Create(ctx, ws.ID, "Sticker", "", 5, &one, true)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}

	ok, err := is.TakeStock(ctx, item.ID)
	if err != nil || !ok {
		t.Fatalf("take stock = %v, %v; want true", ok, err)
	}
	ok, err = is.TakeStock(ctx, item.ID)
	if err != nil {
		t.Fatalf("take stock: %v", err)
	}
	if ok {
		t.Error("take stock on empty item should fail")
	}

	if err := is.RestoreStock(ctx, item.ID); err != nil {
		t.Fatalf("restore stock: %v", err)
	}
	got, _ := is.GetByID(ctx, item.ID)
	if got.Stock == nil || *got.Stock != 1 {
		t.Errorf("stock = %v, want 1", got.Stock)
	}
}

func TestStoreItemUnlimitedStock(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, _ := seedMember(t, db, 0)
	is := NewStoreItemStore(db)

	item, err := is.Create(ctx, ws.ID, "Coffee", "", 5, nil, true)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	for i := 0; i < 3; i++ {
		if ok, err := is.TakeStock(ctx, item.ID); err != nil || !ok {
			t.Fatalf("take stock %d = %v, %v", i, ok, err)
		}
	}
	if err := is.RestoreStock(ctx, item.ID); err != nil {
		t.Fatalf("restore stock: %v", err)
	}
	got, _ := is.GetByID(ctx, item.ID)
	if got.Stock != nil {
		t.Errorf("stock = %v, want unlimited", *got.Stock)
	}
}

func TestRedemptionReviewOnlyFromPending(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	ws, m := seedMember(t, db, 0)
	item, _ := NewStoreItemStore(db).Create(ctx, ws.ID, "Lunch", "", 40, nil, true)
	rs := NewRedemptionStore(db)

	req, err := rs.Insert(ctx, ws.ID, m.ID, item.ID, 40, "thanks")
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if req.Status != model.RedemptionPending {
		t.Errorf("status = %q, want pending", req.Status)
	}

	at := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	ok, err := rs.Review(ctx, req.ID, model.RedemptionApproved, m.ID, "enjoy", at)
	if err != nil || !ok {
		t.Fatalf("review = %v, %v; want true", ok, err)
	}
	ok, err = rs.Review(ctx, req.ID, model.RedemptionRejected, m.ID, "", at)
	if err != nil {
		t.Fatalf("second review: %v", err)
	}
	if ok {
		t.Error("second review should not apply")
	}

	got, _ := rs.GetByID(ctx, req.ID)
	if got.Status != model.RedemptionApproved {
		t.Errorf("status = %q, want approved", got.Status)
	}
	if got.ReviewedBy == nil || *got.ReviewedBy != m.ID {
		t.Errorf("reviewed_by = %v, want %d", got.ReviewedBy, m.ID)
	}
	if got.AdminNotes != "enjoy" {
		t.Errorf("admin_notes = %q, want %q", got.AdminNotes, "enjoy")
	}

	spent, err := rs.SpentBy(ctx, m.ID)
	if err != nil {
		t.Fatalf("spent by: %v", err)
	}
	if spent != 40 {
		t.Errorf("spent = %d, want 40", spent)
	}

	list, err := rs.List(ctx, ws.ID, ListFilter{Status: model.RedemptionPending})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("pending list = %d, want 0", len(list))
	}
}
