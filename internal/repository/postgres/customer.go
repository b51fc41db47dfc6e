package postgres

import (
	"context"
	"database/sql"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `id, phone_number, first_name, last_name, COALESCE(email, ''), total_spent, is_active, created_at, updated_at`

func scanCustomer(row interface{ Scan(...any) error }, c *domain.Customer) error {
	return row.Scan(&c.ID, &c.PhoneNumber, &c.FirstName, &c.LastName, &c.Email, &c.TotalSpent, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
}

func (r *customerRepository) Create(ctx context.Context, c *domain.Customer) error {
	query := `INSERT INTO customers (phone_number, first_name, last_name, email, total_spent, is_active, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8) RETURNING id`
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query, c.PhoneNumber, c.FirstName, c.LastName, c.Email, c.TotalSpent, c.IsActive, now, now).Scan(&c.ID)
}

func (r *customerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) GetByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	c := &domain.Customer{}
	query := `SELECT ` + customerColumns + ` FROM customers WHERE phone_number = $1`
	if err := scanCustomer(r.db.QueryRowContext(ctx, query, phoneNumber), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *customerRepository) ListActive(ctx context.Context) ([]domain.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE is_active = TRUE ORDER BY last_name, first_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var customers []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := scanCustomer(rows, &c); err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (r *customerRepository) Update(ctx context.Context, c *domain.Customer) error {
	query := `UPDATE customers SET phone_number=$1, first_name=$2, last_name=$3, email=$4, is_active=$5, updated_at=$6 WHERE id=$7`
	res, err := r.db.ExecContext(ctx, query, c.PhoneNumber, c.FirstName, c.LastName, c.Email, c.IsActive, time.Now(), c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *customerRepository) AddToTotalSpent(ctx context.Context, id int64, amount float64) error {
	query := `UPDATE customers SET total_spent = total_spent + $1, updated_at = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, amount, time.Now(), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
