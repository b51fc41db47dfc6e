package service

import (
	"context"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, username, password string) (string, *domain.Employee, error)
}

type InventoryService interface {
	AddItem(ctx context.Context, item *domain.Item) error
	GetItem(ctx context.Context, id int64) (*domain.Item, error)
	ListItems(ctx context.Context, filters repository.ItemFilters) ([]domain.Item, error)
	ListLowStock(ctx context.Context, threshold int32) ([]domain.Item, error)
	UpdateItem(ctx context.Context, item *domain.Item) error
	DeactivateItem(ctx context.Context, id int64) error
	InventoryValue(ctx context.Context) (float64, error)
}

type CouponService interface {
	CreateCoupon(ctx context.Context, coupon *domain.Coupon) error
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error
	DeactivateCoupon(ctx context.Context, id int64) error
}

type CustomerService interface {
	CreateCustomer(ctx context.Context, customer *domain.Customer) error
	GetCustomer(ctx context.Context, id int64) (*domain.Customer, error)
	FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer *domain.Customer) error
}

// LineInput is one requested (item, quantity) pair on a sale or rental.
// Price is only honored on totals previews; persisted records always price
// from the catalog.
type LineInput struct {
	ItemID   int32   `json:"itemID"`
	Quantity int32   `json:"quantity"`
	Price    float64 `json:"price"`
}

type CreateSaleInput struct {
	Items           []LineInput
	CashierID       int64
	CustomerID      *int64
	CouponID        *int64
	DiscountPercent float64
	PaymentMethod   domain.PaymentMethod
	Notes           string
}

type SaleService interface {
	CalculateTotals(ctx context.Context, items []LineInput, discountPercent float64, couponID *int64) (domain.SaleTotals, error)
	CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error)
	GetSale(ctx context.Context, id int64) (*domain.Sale, error)
	ListSales(ctx context.Context, filters repository.SaleFilters) ([]domain.Sale, error)
}

type CreateRentalInput struct {
	Items      []LineInput
	CustomerID int64
	CashierID  int64
	DueDate    time.Time
	TotalCost  float64
	Notes      string
}

type RentalService interface {
	CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error)
	ReturnRental(ctx context.Context, rentalID int64, returnItems []LineInput) (*domain.Rental, error)
	GetRental(ctx context.Context, id int64) (*domain.Rental, error)
	ListRentals(ctx context.Context, filters repository.RentalFilters) ([]domain.Rental, error)
	GetOutstandingRentals(ctx context.Context, customerID int64) ([]domain.Rental, error)
	CheckOverdueRentals(ctx context.Context) (int64, error)
}

type CreateEmployeeInput struct {
	Username string
	Name     string
	Password string
	Position domain.Position
	IsActive bool
}

type UpdateEmployeeInput struct {
	Name     string
	Password string // empty means keep current
	Position domain.Position
	IsActive *bool
}

type EmployeeService interface {
	CreateEmployee(ctx context.Context, input CreateEmployeeInput) (*domain.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*domain.Employee, error)
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
	UpdateEmployee(ctx context.Context, id int64, input UpdateEmployeeInput) (*domain.Employee, error)
	DeactivateEmployee(ctx context.Context, id int64) error
}

type EmailService interface {
	SendReceipt(ctx context.Context, email, name string, sale *domain.Sale) error
	SendOverdueReminder(ctx context.Context, email, name string, rental *domain.Rental) error
}
