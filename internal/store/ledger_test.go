package store

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
)

func TestLedgerAwardAndRemove(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, m := seedMember(t, db, 0)
	l := NewLedger(db)

	if err := l.Award(ctx, m.ID, 30); err != nil {
		t.Fatalf("award: %v", err)
	}
	if err := l.Remove(ctx, m.ID, 10); err != nil {
		t.Fatalf("remove: %v", err)
	}

	got, err := l.Balance(ctx, m.ID)
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if got != 20 {
		t.Errorf("balance = %d, want 20", got)
	}
}

func TestLedgerRemoveClampsAtZero(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, m := seedMember(t, db, 15)
	l := NewLedger(db)

	if err := l.Remove(ctx, m.ID, 40); err != nil {
		t.Fatalf("remove: %v", err)
	}
	got, _ := l.Balance(ctx, m.ID)
	if got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}
}

func TestLedgerUnknownMember(t *testing.T) {
	db := setupTestDB(t)
	if err := NewLedger(db).Award(context.Background(), 999, 10); err == nil {
		t.Error("expected error for unknown member")
	}
}

func TestLedgerSpend(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, m := seedMember(t, db, 50)
	l := NewLedger(db)

	ok, err := l.Spend(ctx, m.ID, 60)
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	if ok {
		t.Error("spend beyond balance should be refused")
	}
	if got, _ := l.Balance(ctx, m.ID); got != 50 {
		t.Errorf("balance = %d, want 50 after refused spend", got)
	}

	ok, err = l.Spend(ctx, m.ID, 50)
	if err != nil {
		t.Fatalf("spend: %v", err)
	}
	if !ok {
		t.Error("spend of full balance should succeed")
	}
	if got, _ := l.Balance(ctx, m.ID); got != 0 {
		t.Errorf("balance = %d, want 0", got)
	}
}

func TestLedgerConcurrentAwards(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, m := seedMember(t, db, 0)
	l := NewLedger(db)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := l.Award(ctx, m.ID, 10); err != nil {
				t.Errorf("award: %v", err)
			}
		}()
	}
	wg.Wait()

	if got, _ := l.Balance(ctx, m.ID); got != 200 {
		t.Errorf("balance = %d, want 200", got)
	}
}

func TestLedgerInsideTx(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	_, m := seedMember(t, db, 0)

	errAbort := errors.New("abort")
	err := RunInTx(ctx, db, func(tx *sql.Tx) error {
		if err := NewLedger(tx).Award(ctx, m.ID, 25); err != nil {
			return err
		}
		return errAbort
	})
	if !errors.Is(err, errAbort) {
		t.Fatalf("err = %v, want %v", err, errAbort)
	}
	if got, _ := NewLedger(db).Balance(ctx, m.ID); got != 0 {
		t.Errorf("balance after rollback = %d, want 0", got)
	}

	err = RunInTx(ctx, db, func(tx *sql.Tx) error {
		return NewLedger(tx).Award(ctx, m.ID, 25)
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}
	if got, _ := NewLedger(db).Balance(ctx, m.ID); got != 25 {
		t.Errorf("balance after commit = %d, want 25", got)
	}
}
