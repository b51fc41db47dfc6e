package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/logger"
	"retail-pos-backend/internal/repository"
)

// LateFeePerDay is the flat charge for each full day past the due date.
const LateFeePerDay = 5.0

type rentalService struct {
	rentalRepo   repository.RentalRepository
	itemRepo     repository.ItemRepository
	customerRepo repository.CustomerRepository
}

func NewRentalService(
	rentalRepo repository.RentalRepository,
	itemRepo repository.ItemRepository,
	customerRepo repository.CustomerRepository,
) RentalService {
	return &rentalService{
		rentalRepo:   rentalRepo,
		itemRepo:     itemRepo,
		customerRepo: customerRepo,
	}
}

func (s *rentalService) CreateRental(ctx context.Context, input CreateRentalInput) (*domain.Rental, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: rental requires at least one item", ErrValidation)
	}
	if input.CustomerID == 0 {
		return nil, fmt.Errorf("%w: customer is required", ErrValidation)
	}
	if input.DueDate.IsZero() {
		return nil, fmt.Errorf("%w: due date is required", ErrValidation)
	}

	if _, err := s.customerRepo.GetByID(ctx, input.CustomerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}

	lines := make([]domain.RentalLine, 0, len(input.Items))
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d quantity must be at least 1", ErrValidation, line.ItemID)
		}
		item, err := s.itemRepo.GetByItemID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("item %d: %w", line.ItemID, ErrItemNotFound)
			}
			return nil, err
		}
		lines = append(lines, domain.RentalLine{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Quantity: line.Quantity,
		})
	}

	rental := &domain.Rental{
		RentalID:   "RENTAL-" + strings.ToUpper(uuid.NewString()[:8]),
		Items:      lines,
		CustomerID: input.CustomerID,
		CashierID:  input.CashierID,
		RentalDate: time.Now(),
		DueDate:    input.DueDate,
		Status:     domain.RentalStatusActive,
		// Total cost is caller-priced (rate x days x quantity); this
		// engine does not recompute it.
		TotalCost: input.TotalCost,
		Notes:     input.Notes,
	}

	for _, line := range lines {
		remaining, err := s.itemRepo.AdjustStock(ctx, line.ItemID, -line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("adjusting stock for item %d: %w", line.ItemID, err)
		}
		if remaining < 0 {
			logger.Warn("item stock went negative", "item_id", line.ItemID, "stock", remaining)
		}
	}

	if err := s.rentalRepo.Create(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

// ReturnRental closes the rental. When returnItems is empty a full return is
// assumed; a subset restocks only the lines given but still closes the whole
// rental. The late fee is computed against the clock at return time, whatever
// the stored status says.
func (s *rentalService) ReturnRental(ctx context.Context, rentalID int64, returnItems []LineInput) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, rentalID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}

	restock := make([]domain.RentalLine, 0, len(rental.Items))
	if len(returnItems) == 0 {
		restock = rental.Items
	} else {
		for _, line := range returnItems {
			restock = append(restock, domain.RentalLine{ItemID: line.ItemID, Quantity: line.Quantity})
		}
	}

	for _, line := range restock {
		if _, err := s.itemRepo.AdjustStock(ctx, line.ItemID, line.Quantity); err != nil {
			return nil, fmt.Errorf("restocking item %d: %w", line.ItemID, err)
		}
	}

	now := time.Now()
	rental.LateFee = float64(rental.DaysOverdue(now)) * LateFeePerDay
	rental.ReturnedDate = &now
	rental.Status = domain.RentalStatusReturned

	if err := s.rentalRepo.Update(ctx, rental); err != nil {
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) GetRental(ctx context.Context, id int64) (*domain.Rental, error) {
	rental, err := s.rentalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRentalNotFound
		}
		return nil, err
	}
	return rental, nil
}

func (s *rentalService) ListRentals(ctx context.Context, filters repository.RentalFilters) ([]domain.Rental, error) {
	return s.rentalRepo.List(ctx, filters)
}

func (s *rentalService) GetOutstandingRentals(ctx context.Context, customerID int64) ([]domain.Rental, error) {
	return s.rentalRepo.ListOutstandingByCustomer(ctx, customerID)
}

func (s *rentalService) CheckOverdueRentals(ctx context.Context) (int64, error) {
	return s.rentalRepo.MarkOverdue(ctx, time.Now())
}
