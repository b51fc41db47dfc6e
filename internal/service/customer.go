package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type customerService struct {
	customerRepo repository.CustomerRepository
	rentalRepo   repository.RentalRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, rentalRepo repository.RentalRepository) CustomerService {
	return &customerService{
		customerRepo: customerRepo,
		rentalRepo:   rentalRepo,
	}
}

func (s *customerService) CreateCustomer(ctx context.Context, customer *domain.Customer) error {
	if customer.PhoneNumber == "" || customer.FirstName == "" || customer.LastName == "" {
		return fmt.Errorf("%w: phone, first name, and last name are required", ErrValidation)
	}
	customer.IsActive = true

	if _, err := s.customerRepo.GetByPhone(ctx, customer.PhoneNumber); err == nil {
		return ErrDuplicateCustomer
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return s.customerRepo.Create(ctx, customer)
}

func (s *customerService) GetCustomer(ctx context.Context, id int64) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if err := s.attachOutstandingRentals(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

func (s *customerService) FindByPhoneNumber(ctx context.Context, phoneNumber string) (*domain.Customer, error) {
	customer, err := s.customerRepo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if err := s.attachOutstandingRentals(ctx, customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// attachOutstandingRentals derives the customer's unreturned-rental stubs
// from the rental records, so the list cannot drift from the source of truth.
// The stub identifies the rental by its first line, matching receipts.
func (s *customerService) attachOutstandingRentals(ctx context.Context, customer *domain.Customer) error {
	rentals, err := s.rentalRepo.ListOutstandingByCustomer(ctx, customer.ID)
	if err != nil {
		return err
	}
	customer.OutstandingRentals = make([]domain.RentalStub, 0, len(rentals))
	for _, rt := range rentals {
		stub := domain.RentalStub{
			RentalID:     rt.RentalID,
			DueDate:      rt.DueDate,
			ReturnedDate: rt.ReturnedDate,
		}
		if len(rt.Items) > 0 {
			stub.ItemID = rt.Items[0].ItemID
			stub.ItemName = rt.Items[0].ItemName
		}
		customer.OutstandingRentals = append(customer.OutstandingRentals, stub)
	}
	return nil
}

func (s *customerService) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	return s.customerRepo.ListActive(ctx)
}

func (s *customerService) UpdateCustomer(ctx context.Context, customer *domain.Customer) error {
	err := s.customerRepo.Update(ctx, customer)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCustomerNotFound
	}
	return err
}
