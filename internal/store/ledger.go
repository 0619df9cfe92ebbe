package store

import (
	"context"
	"fmt"
)

// Ledger moves points on member balances. Every operation is a single
// UPDATE so concurrent completions by one member cannot lose an update.
type Ledger struct {
	db Querier
}

func NewLedger(db Querier) *Ledger {
	return &Ledger{db: db}
}

// Award adds amount to the member's balance.
func (l *Ledger) Award(ctx context.Context, memberID int64, amount int) error {
	if amount < 0 {
		return fmt.Errorf("award points: negative amount %d", amount)
	}
	return l.exec(ctx, "award points", `UPDATE members SET points = points + ? WHERE id = ?`, amount, memberID)
}

// Remove subtracts amount from the member's balance, clamping at zero
// instead of failing when the balance is smaller than amount.
func (l *Ledger) Remove(ctx context.Context, memberID int64, amount int) error {
	if amount < 0 {
		return fmt.Errorf("remove points: negative amount %d", amount)
	}
	return l.exec(ctx, "remove points", `UPDATE members SET points = MAX(points - ?, 0) WHERE id = ?`, amount, memberID)
}

// Spend subtracts amount only if the balance covers it. It reports false,
// leaving the balance untouched, when it does not.
func (l *Ledger) Spend(ctx context.Context, memberID int64, amount int) (bool, error) {
	result, err := l.db.ExecContext(ctx,
		`UPDATE members SET points = points - ? WHERE id = ? AND points >= ?`,
		amount, memberID, amount,
	)
	if err != nil {
		return false, fmt.Errorf("spend points: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("spend points: rows affected: %w", err)
	}
	return n == 1, nil
}

func (l *Ledger) Balance(ctx context.Context, memberID int64) (int, error) {
	var points int
	err := l.db.QueryRowContext(ctx, `SELECT points FROM members WHERE id = ?`, memberID).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}
	return points, nil
}

func (l *Ledger) exec(ctx context.Context, op, query string, amount int, memberID int64) error {
	result, err := l.db.ExecContext(ctx, query, amount, memberID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: member %d not found", op, memberID)
	}
	return nil
}
