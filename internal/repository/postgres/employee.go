package postgres

import (
	"context"
	"database/sql"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type employeeRepository struct {
	db *sql.DB
}

func NewEmployeeRepository(db *sql.DB) repository.EmployeeRepository {
	return &employeeRepository{db: db}
}

const employeeColumns = `id, username, name, password_hash, position, is_active, created_at`

func scanEmployee(row interface{ Scan(...any) error }, e *domain.Employee) error {
	return row.Scan(&e.ID, &e.Username, &e.Name, &e.PasswordHash, &e.Position, &e.IsActive, &e.CreatedAt)
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	query := `INSERT INTO employees (username, name, password_hash, position, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`
	e.CreatedAt = time.Now()
	return r.db.QueryRowContext(ctx, query, e.Username, e.Name, e.PasswordHash, e.Position, e.IsActive, e.CreatedAt).Scan(&e.ID)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	e := &domain.Employee{}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`
	if err := scanEmployee(r.db.QueryRowContext(ctx, query, id), e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) GetByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	e := &domain.Employee{}
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE username = $1`
	if err := scanEmployee(r.db.QueryRowContext(ctx, query, username), e); err != nil {
		return nil, err
	}
	return e, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees ORDER BY username`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []domain.Employee
	for rows.Next() {
		var e domain.Employee
		if err := scanEmployee(rows, &e); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	query := `UPDATE employees SET name=$1, password_hash=$2, position=$3, is_active=$4 WHERE id=$5`
	res, err := r.db.ExecContext(ctx, query, e.Name, e.PasswordHash, e.Position, e.IsActive, e.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *employeeRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE employees SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
