package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dukerupert/taskquest/internal/model"
)

type StoreItemStore struct {
	db Querier
}

func NewStoreItemStore(db Querier) *StoreItemStore {
	return &StoreItemStore{db: db}
}

func scanStoreItem(scanner interface{ Scan(...any) error }) (*model.StoreItem, error) {
	var i model.StoreItem
	var stock sql.NullInt64
	var active int

	err := scanner.Scan(&i.ID, &i.WorkspaceID, &i.Name, &i.Description, &i.PointsCost, &stock, &active, &i.CreatedAt)
	if err != nil {
		return nil, err
	}

	if stock.Valid {
		n := int(stock.Int64)
		i.Stock = &n
	}
	i.Active = active != 0
	return &i, nil
}

const storeItemCols = `id, workspace_id, name, description, points_cost, stock, is_active, created_at`

func (s *StoreItemStore) Create(ctx context.Context, workspaceID int64, name, description string, pointsCost int, stock *int, active bool) (*model.StoreItem, error) {
	var st sql.NullInt64
	if stock != nil {
		st = sql.NullInt64{Int64: int64(*stock), Valid: true}
	}

	result, err := s.db.ExecContext(ctx,
		`INSERT INTO store_items (workspace_id, name, description, points_cost, stock, is_active) VALUES (?, ?, ?, ?, ?, ?)`,
		workspaceID, name, description, pointsCost, st, boolInt(active),
	)
	if err != nil {
		return nil, fmt.Errorf("insert store item: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(ctx, id)
}

func (s *StoreItemStore) GetByID(ctx context.Context, id int64) (*model.StoreItem, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+storeItemCols+` FROM store_items WHERE id = ?`, id)
	i, err := scanStoreItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get store item: %w", err)
	}
	return i, nil
}

// ListActive returns a workspace's active items, cheapest first.
func (s *StoreItemStore) ListActive(ctx context.Context, workspaceID int64) ([]model.StoreItem, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+storeItemCols+` FROM store_items WHERE workspace_id = ? AND is_active = 1 ORDER BY points_cost ASC, name ASC`,
		workspaceID,
	)
	if err != nil {
		return nil, fmt.Errorf("list store items: %w", err)
	}
	defer rows.Close()

	var items []model.StoreItem
	for rows.Next() {
		i, err := scanStoreItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan store item: %w", err)
		}
		items = append(items, *i)
	}
	return items, rows.Err()
}

// TakeStock decrements a finite stock by one if any is left. Items with
// unlimited stock always succeed without change.
func (s *StoreItemStore) TakeStock(ctx context.Context, id int64) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`UPDATE store_items SET stock = CASE WHEN stock IS NULL THEN NULL ELSE stock - 1 END
		 WHERE id = ? AND (stock IS NULL OR stock > 0)`,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("take stock: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("take stock: rows affected: %w", err)
	}
	return n == 1, nil
}

// RestoreStock returns one unit to a finite stock.
func (s *StoreItemStore) RestoreStock(ctx context.Context, id int64) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE store_items SET stock = stock + 1 WHERE id = ? AND stock IS NOT NULL`, id,
	)
	if err != nil {
		return fmt.Errorf("restore stock: %w", err)
	}
	return nil
}
