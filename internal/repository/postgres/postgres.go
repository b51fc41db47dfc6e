package postgres

import (
	"database/sql"

	"retail-pos-backend/internal/repository"

	_ "github.com/lib/pq"
)

type Store struct {
	db *sql.DB
	repository.ItemRepository
	repository.CouponRepository
	repository.CustomerRepository
	repository.SaleRepository
	repository.RentalRepository
	repository.EmployeeRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                 db,
		ItemRepository:     NewItemRepository(db),
		CouponRepository:   NewCouponRepository(db),
		CustomerRepository: NewCustomerRepository(db),
		SaleRepository:     NewSaleRepository(db),
		RentalRepository:   NewRentalRepository(db),
		EmployeeRepository: NewEmployeeRepository(db),
	}
}
