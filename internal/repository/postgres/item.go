package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type itemRepository struct {
	db *sql.DB
}

func NewItemRepository(db *sql.DB) repository.ItemRepository {
	return &itemRepository{db: db}
}

const itemColumns = `id, item_id, item_name, price, stock_quantity, COALESCE(description, ''), category, is_active, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }, it *domain.Item) error {
	return row.Scan(&it.ID, &it.ItemID, &it.ItemName, &it.Price, &it.StockQuantity, &it.Description, &it.Category, &it.IsActive, &it.CreatedAt, &it.UpdatedAt)
}

func (r *itemRepository) Create(ctx context.Context, it *domain.Item) error {
	query := `INSERT INTO items (item_id, item_name, price, stock_quantity, description, category, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	it.CreatedAt = now
	it.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query, it.ItemID, it.ItemName, it.Price, it.StockQuantity, it.Description, it.Category, it.IsActive, now, now).Scan(&it.ID)
}

func (r *itemRepository) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE id = $1`
	if err := scanItem(r.db.QueryRowContext(ctx, query, id), it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) GetByItemID(ctx context.Context, itemID int32) (*domain.Item, error) {
	it := &domain.Item{}
	query := `SELECT ` + itemColumns + ` FROM items WHERE item_id = $1`
	if err := scanItem(r.db.QueryRowContext(ctx, query, itemID), it); err != nil {
		return nil, err
	}
	return it, nil
}

func (r *itemRepository) List(ctx context.Context, filters repository.ItemFilters) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE is_active = TRUE`
	args := []interface{}{}
	argIdx := 1
	if filters.Category != "" {
		query += fmt.Sprintf(" AND category = $%d", argIdx)
		args = append(args, filters.Category)
		argIdx++
	}
	if filters.Search != "" {
		query += fmt.Sprintf(" AND (item_name ILIKE '%%' || $%d || '%%' OR description ILIKE '%%' || $%d || '%%')", argIdx, argIdx)
		args = append(args, filters.Search)
	}
	query += ` ORDER BY item_id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepository) ListLowStock(ctx context.Context, threshold int32) ([]domain.Item, error) {
	query := `SELECT ` + itemColumns + ` FROM items WHERE is_active = TRUE AND stock_quantity <= $1 ORDER BY stock_quantity`
	rows, err := r.db.QueryContext(ctx, query, threshold)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		var it domain.Item
		if err := scanItem(rows, &it); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func (r *itemRepository) Update(ctx context.Context, it *domain.Item) error {
	query := `UPDATE items SET item_name=$1, price=$2, stock_quantity=$3, description=$4, category=$5, is_active=$6, updated_at=$7 WHERE id=$8`
	res, err := r.db.ExecContext(ctx, query, it.ItemName, it.Price, it.StockQuantity, it.Description, it.Category, it.IsActive, time.Now(), it.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *itemRepository) Deactivate(ctx context.Context, id int64) error {
	query := `UPDATE items SET is_active = FALSE, updated_at = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// AdjustStock is a single atomic update so concurrent sale and rental
// writers never lose a decrement. The caller inspects the returned quantity
// for a negative result.
func (r *itemRepository) AdjustStock(ctx context.Context, itemID int32, delta int32) (int32, error) {
	query := `UPDATE items SET stock_quantity = stock_quantity + $1, updated_at = $2 WHERE item_id = $3 RETURNING stock_quantity`
	var remaining int32
	err := r.db.QueryRowContext(ctx, query, delta, time.Now(), itemID).Scan(&remaining)
	return remaining, err
}

func (r *itemRepository) InventoryValue(ctx context.Context) (float64, error) {
	query := `SELECT COALESCE(SUM(price * stock_quantity), 0) FROM items WHERE is_active = TRUE`
	var value float64
	err := r.db.QueryRowContext(ctx, query).Scan(&value)
	return value, err
}
