package repository

import (
	"context"
	"time"

	"retail-pos-backend/internal/domain"
)

type ItemFilters struct {
	Category string
	Search   string
}

type SaleFilters struct {
	CashierID  int64
	CustomerID int64
	DateFrom   *time.Time
	DateTo     *time.Time
}

type RentalFilters struct {
	CustomerID int64
	Status     domain.RentalStatus
}

type ItemRepository interface {
	Create(ctx context.Context, item *domain.Item) error
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	GetByItemID(ctx context.Context, itemID int32) (*domain.Item, error)
	List(ctx context.Context, filters ItemFilters) ([]domain.Item, error)
	ListLowStock(ctx context.Context, threshold int32) ([]domain.Item, error)
	Update(ctx context.Context, item *domain.Item) error
	Deactivate(ctx context.Context, id int64) error
	// AdjustStock applies a single-statement atomic delta to the item's
	// stock quantity and returns the resulting quantity, which may be
	// negative under concurrent writers.
	AdjustStock(ctx context.Context, itemID int32, delta int32) (int32, error)
	InventoryValue(ctx context.Context) (float64, error)
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *domain.Coupon) error
	GetByID(ctx context.Context, id int64) (*domain.Coupon, error)
	GetByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListActive(ctx context.Context) ([]domain.Coupon, error)
	Update(ctx context.Context, coupon *domain.Coupon) error
	Deactivate(ctx context.Context, id int64) error
	IncrementUsage(ctx context.Context, id int64) error
}

type CustomerRepository interface {
	Create(ctx context.Context, customer *domain.Customer) error
	GetByID(ctx context.Context, id int64) (*domain.Customer, error)
	GetByPhone(ctx context.Context, phoneNumber string) (*domain.Customer, error)
	ListActive(ctx context.Context) ([]domain.Customer, error)
	Update(ctx context.Context, customer *domain.Customer) error
	AddToTotalSpent(ctx context.Context, id int64, amount float64) error
}

type SaleRepository interface {
	Create(ctx context.Context, sale *domain.Sale) error
	GetByID(ctx context.Context, id int64) (*domain.Sale, error)
	List(ctx context.Context, filters SaleFilters) ([]domain.Sale, error)
}

type RentalRepository interface {
	Create(ctx context.Context, rental *domain.Rental) error
	GetByID(ctx context.Context, id int64) (*domain.Rental, error)
	Update(ctx context.Context, rental *domain.Rental) error
	List(ctx context.Context, filters RentalFilters) ([]domain.Rental, error)
	ListOutstandingByCustomer(ctx context.Context, customerID int64) ([]domain.Rental, error)
	// MarkOverdue transitions every active rental past due to overdue and
	// returns the number of rows changed. Idempotent.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
	ListOverdue(ctx context.Context) ([]domain.Rental, error)
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByUsername(ctx context.Context, username string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, employee *domain.Employee) error
	Deactivate(ctx context.Context, id int64) error
}
