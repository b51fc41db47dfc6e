package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"retail-pos-backend/internal/domain"
)

func newRentalServiceForTest() (RentalService, *MockRentalRepo, *MockItemRepo, *MockCustomerRepo) {
	rentalRepo := new(MockRentalRepo)
	itemRepo := new(MockItemRepo)
	customerRepo := new(MockCustomerRepo)
	svc := NewRentalService(rentalRepo, itemRepo, customerRepo)
	return svc, rentalRepo, itemRepo, customerRepo
}

func TestCreateRental(t *testing.T) {
	t.Run("Creates active rental and decrements stock", func(t *testing.T) {
		svc, rentalRepo, itemRepo, customerRepo := newRentalServiceForTest()

		customerRepo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9}, nil)
		item := &domain.Item{ID: 1, ItemID: 1, ItemName: "Pressure Washer", Price: 80, StockQuantity: 3, IsActive: true}
		itemRepo.On("GetByItemID", mock.Anything, int32(1)).Return(item, nil)
		itemRepo.On("AdjustStock", mock.Anything, int32(1), int32(-1)).Return(int32(2), nil)
		rentalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)

		rental, err := svc.CreateRental(context.Background(), CreateRentalInput{
			Items:      []LineInput{{ItemID: 1, Quantity: 1}},
			CustomerID: 9,
			CashierID:  42,
			DueDate:    time.Now().Add(72 * time.Hour),
			TotalCost:  45,
		})
		assert.NoError(t, err)
		assert.True(t, strings.HasPrefix(rental.RentalID, "RENTAL-"))
		assert.Equal(t, domain.RentalStatusActive, rental.Status)
		assert.InDelta(t, 45.0, rental.TotalCost, 1e-9)
		itemRepo.AssertCalled(t, "AdjustStock", mock.Anything, int32(1), int32(-1))
	})

	t.Run("Missing customer rejected", func(t *testing.T) {
		svc, _, _, customerRepo := newRentalServiceForTest()

		customerRepo.On("GetByID", mock.Anything, int64(9)).Return(nil, sql.ErrNoRows)

		_, err := svc.CreateRental(context.Background(), CreateRentalInput{
			Items:      []LineInput{{ItemID: 1, Quantity: 1}},
			CustomerID: 9,
			CashierID:  42,
			DueDate:    time.Now().Add(72 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrCustomerNotFound)
	})

	t.Run("Empty item list rejected", func(t *testing.T) {
		svc, _, _, _ := newRentalServiceForTest()

		_, err := svc.CreateRental(context.Background(), CreateRentalInput{
			CustomerID: 9,
			CashierID:  42,
			DueDate:    time.Now().Add(72 * time.Hour),
		})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Missing due date rejected", func(t *testing.T) {
		svc, _, _, _ := newRentalServiceForTest()

		_, err := svc.CreateRental(context.Background(), CreateRentalInput{
			Items:      []LineInput{{ItemID: 1, Quantity: 1}},
			CustomerID: 9,
			CashierID:  42,
		})
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestReturnRental(t *testing.T) {
	t.Run("Three days overdue charges fifteen dollars", func(t *testing.T) {
		svc, rentalRepo, itemRepo, _ := newRentalServiceForTest()

		// Just under three full days past due rounds up to three.
		rental := &domain.Rental{
			ID:       5,
			RentalID: "RENTAL-AAAA1111",
			Items:    []domain.RentalLine{{ItemID: 1, ItemName: "Pressure Washer", Quantity: 1}},
			DueDate:  time.Now().Add(-71 * time.Hour),
			Status:   domain.RentalStatusOverdue,
		}
		rentalRepo.On("GetByID", mock.Anything, int64(5)).Return(rental, nil)
		itemRepo.On("AdjustStock", mock.Anything, int32(1), int32(1)).Return(int32(3), nil)
		rentalRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)

		returned, err := svc.ReturnRental(context.Background(), 5, nil)
		assert.NoError(t, err)
		assert.InDelta(t, 15.0, returned.LateFee, 1e-9)
		assert.Equal(t, domain.RentalStatusReturned, returned.Status)
		assert.NotNil(t, returned.ReturnedDate)
	})

	t.Run("Future due date charges nothing", func(t *testing.T) {
		svc, rentalRepo, itemRepo, _ := newRentalServiceForTest()

		rental := &domain.Rental{
			ID:       6,
			RentalID: "RENTAL-BBBB2222",
			Items:    []domain.RentalLine{{ItemID: 1, ItemName: "Pressure Washer", Quantity: 1}},
			DueDate:  time.Now().Add(48 * time.Hour),
			Status:   domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", mock.Anything, int64(6)).Return(rental, nil)
		itemRepo.On("AdjustStock", mock.Anything, int32(1), int32(1)).Return(int32(3), nil)
		rentalRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)

		returned, err := svc.ReturnRental(context.Background(), 6, nil)
		assert.NoError(t, err)
		assert.InDelta(t, 0.0, returned.LateFee, 1e-9)
		assert.Equal(t, domain.RentalStatusReturned, returned.Status)
	})

	t.Run("Full return restocks every line", func(t *testing.T) {
		svc, rentalRepo, itemRepo, _ := newRentalServiceForTest()

		rental := &domain.Rental{
			ID:      7,
			Items:   []domain.RentalLine{{ItemID: 1, Quantity: 2}, {ItemID: 2, Quantity: 1}},
			DueDate: time.Now().Add(24 * time.Hour),
			Status:  domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", mock.Anything, int64(7)).Return(rental, nil)
		itemRepo.On("AdjustStock", mock.Anything, int32(1), int32(2)).Return(int32(5), nil)
		itemRepo.On("AdjustStock", mock.Anything, int32(2), int32(1)).Return(int32(4), nil)
		rentalRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)

		_, err := svc.ReturnRental(context.Background(), 7, nil)
		assert.NoError(t, err)
		itemRepo.AssertCalled(t, "AdjustStock", mock.Anything, int32(1), int32(2))
		itemRepo.AssertCalled(t, "AdjustStock", mock.Anything, int32(2), int32(1))
	})

	t.Run("Partial return restocks subset but still closes", func(t *testing.T) {
		svc, rentalRepo, itemRepo, _ := newRentalServiceForTest()

		rental := &domain.Rental{
			ID:      8,
			Items:   []domain.RentalLine{{ItemID: 1, Quantity: 2}, {ItemID: 2, Quantity: 1}},
			DueDate: time.Now().Add(24 * time.Hour),
			Status:  domain.RentalStatusActive,
		}
		rentalRepo.On("GetByID", mock.Anything, int64(8)).Return(rental, nil)
		itemRepo.On("AdjustStock", mock.Anything, int32(1), int32(2)).Return(int32(5), nil)
		rentalRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)

		returned, err := svc.ReturnRental(context.Background(), 8, []LineInput{{ItemID: 1, Quantity: 2}})
		assert.NoError(t, err)
		assert.Equal(t, domain.RentalStatusReturned, returned.Status)
		itemRepo.AssertNotCalled(t, "AdjustStock", mock.Anything, int32(2), mock.Anything)
	})

	t.Run("Unknown rental rejected", func(t *testing.T) {
		svc, rentalRepo, _, _ := newRentalServiceForTest()

		rentalRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, sql.ErrNoRows)

		_, err := svc.ReturnRental(context.Background(), 99, nil)
		assert.ErrorIs(t, err, ErrRentalNotFound)
	})
}

func TestRentalStockRoundTrip(t *testing.T) {
	// createRental then returnRental must restore stock to where it started.
	svc, rentalRepo, itemRepo, customerRepo := newRentalServiceForTest()

	stock := int32(3)
	customerRepo.On("GetByID", mock.Anything, int64(9)).Return(&domain.Customer{ID: 9}, nil)
	item := &domain.Item{ID: 1, ItemID: 1, ItemName: "Pressure Washer", Price: 80, StockQuantity: stock, IsActive: true}
	itemRepo.On("GetByItemID", mock.Anything, int32(1)).Return(item, nil)
	itemRepo.On("AdjustStock", mock.Anything, int32(1), mock.AnythingOfType("int32")).
		Run(func(args mock.Arguments) { stock += args.Get(2).(int32) }).
		Return(int32(0), nil)
	rentalRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)
	rentalRepo.On("Update", mock.Anything, mock.AnythingOfType("*domain.Rental")).Return(nil)

	rental, err := svc.CreateRental(context.Background(), CreateRentalInput{
		Items:      []LineInput{{ItemID: 1, Quantity: 2}},
		CustomerID: 9,
		CashierID:  42,
		DueDate:    time.Now().Add(72 * time.Hour),
	})
	assert.NoError(t, err)
	assert.Equal(t, int32(1), stock)

	rental.ID = 11
	rentalRepo.On("GetByID", mock.Anything, int64(11)).Return(rental, nil)

	_, err = svc.ReturnRental(context.Background(), 11, nil)
	assert.NoError(t, err)
	assert.Equal(t, int32(3), stock)
}

func TestCheckOverdueRentals(t *testing.T) {
	svc, rentalRepo, _, _ := newRentalServiceForTest()

	rentalRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()
	rentalRepo.On("MarkOverdue", mock.Anything, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()

	count, err := svc.CheckOverdueRentals(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), count)

	// Second run finds nothing left to flip.
	count, err = svc.CheckOverdueRentals(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(0), count)
}
