package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type rentalRepository struct {
	db *sql.DB
}

func NewRentalRepository(db *sql.DB) repository.RentalRepository {
	return &rentalRepository{db: db}
}

const rentalColumns = `id, rental_id, customer_id, cashier_id, rental_date, due_date, returned_date, status, total_cost, late_fee, COALESCE(notes, '')`

func scanRental(row interface{ Scan(...any) error }, rt *domain.Rental) error {
	var returned sql.NullTime
	err := row.Scan(&rt.ID, &rt.RentalID, &rt.CustomerID, &rt.CashierID, &rt.RentalDate, &rt.DueDate, &returned, &rt.Status, &rt.TotalCost, &rt.LateFee, &rt.Notes)
	if err != nil {
		return err
	}
	if returned.Valid {
		t := returned.Time
		rt.ReturnedDate = &t
	}
	return nil
}

func (r *rentalRepository) Create(ctx context.Context, rt *domain.Rental) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO rentals (rental_id, customer_id, cashier_id, rental_date, due_date, status, total_cost, late_fee, notes)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	if err := tx.QueryRowContext(ctx, query, rt.RentalID, rt.CustomerID, rt.CashierID, rt.RentalDate, rt.DueDate, rt.Status, rt.TotalCost, rt.LateFee, rt.Notes).Scan(&rt.ID); err != nil {
		return err
	}

	lineQuery := `INSERT INTO rental_items (rental_id, item_id, item_name, quantity) VALUES ($1, $2, $3, $4)`
	for _, line := range rt.Items {
		if _, err := tx.ExecContext(ctx, lineQuery, rt.ID, line.ItemID, line.ItemName, line.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *rentalRepository) GetByID(ctx context.Context, id int64) (*domain.Rental, error) {
	rt := &domain.Rental{}
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE id = $1`
	if err := scanRental(r.db.QueryRowContext(ctx, query, id), rt); err != nil {
		return nil, err
	}
	if err := r.loadLines(ctx, rt); err != nil {
		return nil, err
	}
	return rt, nil
}

func (r *rentalRepository) loadLines(ctx context.Context, rt *domain.Rental) error {
	query := `SELECT item_id, item_name, quantity FROM rental_items WHERE rental_id = $1 ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, rt.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var line domain.RentalLine
		if err := rows.Scan(&line.ItemID, &line.ItemName, &line.Quantity); err != nil {
			return err
		}
		rt.Items = append(rt.Items, line)
	}
	return rows.Err()
}

func (r *rentalRepository) Update(ctx context.Context, rt *domain.Rental) error {
	query := `UPDATE rentals SET status=$1, returned_date=$2, late_fee=$3, notes=$4 WHERE id=$5`
	var returned interface{}
	if rt.ReturnedDate != nil {
		returned = *rt.ReturnedDate
	}
	res, err := r.db.ExecContext(ctx, query, rt.Status, returned, rt.LateFee, rt.Notes, rt.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *rentalRepository) List(ctx context.Context, filters repository.RentalFilters) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE 1=1`
	args := []interface{}{}
	argIdx := 1
	if filters.CustomerID != 0 {
		query += fmt.Sprintf(" AND customer_id = $%d", argIdx)
		args = append(args, filters.CustomerID)
		argIdx++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, filters.Status)
		argIdx++
	}
	query += ` ORDER BY rental_date DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range rentals {
		if err := r.loadLines(ctx, &rentals[i]); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

func (r *rentalRepository) ListOutstandingByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	// Outstanding means not yet returned, so overdue rentals count too.
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE customer_id = $1 AND status IN ('active', 'overdue') ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query, customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range rentals {
		if err := r.loadLines(ctx, &rentals[i]); err != nil {
			return nil, err
		}
	}
	return rentals, nil
}

// MarkOverdue is a bulk unconditional transition; running it twice in a row
// changes nothing the second time.
func (r *rentalRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `UPDATE rentals SET status = 'overdue' WHERE status = 'active' AND due_date < $1`
	res, err := r.db.ExecContext(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *rentalRepository) ListOverdue(ctx context.Context) ([]domain.Rental, error) {
	query := `SELECT ` + rentalColumns + ` FROM rentals WHERE status = 'overdue' ORDER BY due_date`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rentals []domain.Rental
	for rows.Next() {
		var rt domain.Rental
		if err := scanRental(rows, &rt); err != nil {
			return nil, err
		}
		rentals = append(rentals, rt)
	}
	return rentals, rows.Err()
}
