package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type saleRepository struct {
	db *sql.DB
}

func NewSaleRepository(db *sql.DB) repository.SaleRepository {
	return &saleRepository{db: db}
}

const saleColumns = `id, sale_id, subtotal, discount, discount_percent, tax, total, payment_method, cashier_id, customer_id, coupon_id, sale_date, COALESCE(notes, '')`

func scanSale(row interface{ Scan(...any) error }, s *domain.Sale) error {
	var customerID, couponID sql.NullInt64
	err := row.Scan(&s.ID, &s.SaleID, &s.Subtotal, &s.Discount, &s.DiscountPercent, &s.Tax, &s.Total, &s.PaymentMethod, &s.CashierID, &customerID, &couponID, &s.SaleDate, &s.Notes)
	if err != nil {
		return err
	}
	if customerID.Valid {
		v := customerID.Int64
		s.CustomerID = &v
	}
	if couponID.Valid {
		v := couponID.Int64
		s.CouponID = &v
	}
	return nil
}

// Create persists the sale header and its lines in one transaction. Stock,
// coupon, and customer side effects are the service's concern.
func (r *saleRepository) Create(ctx context.Context, s *domain.Sale) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO sales (sale_id, subtotal, discount, discount_percent, tax, total, payment_method, cashier_id, customer_id, coupon_id, sale_date, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12) RETURNING id`
	var customerID, couponID interface{}
	if s.CustomerID != nil {
		customerID = *s.CustomerID
	}
	if s.CouponID != nil {
		couponID = *s.CouponID
	}
	if err := tx.QueryRowContext(ctx, query, s.SaleID, s.Subtotal, s.Discount, s.DiscountPercent, s.Tax, s.Total, s.PaymentMethod, s.CashierID, customerID, couponID, s.SaleDate, s.Notes).Scan(&s.ID); err != nil {
		return err
	}

	lineQuery := `INSERT INTO sale_items (sale_id, item_id, item_name, price, quantity, subtotal) VALUES ($1, $2, $3, $4, $5, $6)`
	for _, line := range s.Items {
		if _, err := tx.ExecContext(ctx, lineQuery, s.ID, line.ItemID, line.ItemName, line.Price, line.Quantity, line.Subtotal); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *saleRepository) GetByID(ctx context.Context, id int64) (*domain.Sale, error) {
	s := &domain.Sale{}
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	if err := scanSale(r.db.QueryRowContext(ctx, query, id), s); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *saleRepository) loadLines(ctx context.Context, s *domain.Sale) error {
	query := `SELECT item_id, item_name, price, quantity, subtotal FROM sale_items WHERE sale_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, s.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.SaleLine
		if err := rows.Scan(&line.ItemID, &line.ItemName, &line.Price, &line.Quantity, &line.Subtotal); err != nil {
			return err
		}
		s.Items = append(s.Items, line)
	}
	return rows.Err()
}

func (r *saleRepository) List(ctx context.Context, filters repository.SaleFilters) ([]domain.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filters.CashierID != 0 {
		query += fmt.Sprintf(" AND cashier_id = $%d", argIdx)
		args = append(args, filters.CashierID)
		argIdx++
	}
	if filters.CustomerID != 0 {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filters.CustomerID)
		argIdx++
	}
	if filters.DateFrom != nil {
		query += fmt.Sprintf(" AND sale_date >= $%d", argIdx)
		args = append(args, *filters.DateFrom)
		argIdx++
	}
	if filters.DateTo != nil {
		query += fmt.Sprintf(" AND sale_date <= $%d", argIdx)
		args = append(args, *filters.DateTo)
		argIdx++
	}
	query += ` ORDER BY sale_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sales []domain.Sale
	for rows.Next() {
		var s domain.Sale
		if err := scanSale(rows, &s); err != nil {
			return nil, err
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range sales {
		if err := r.loadLines(ctx, &sales[i]); err != nil {
			return nil, err
		}
	}
	return sales, nil
}
