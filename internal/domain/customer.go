package domain

import "time"

type Customer struct {
	ID          int64   `json:"id"`
	PhoneNumber string  `json:"phoneNumber"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Email       string  `json:"email"`
	TotalSpent  float64 `json:"totalSpent"`
	// OutstandingRentals is derived on read from the rentals table, never
	// stored, so it cannot drift from the rental records.
	OutstandingRentals []RentalStub `json:"outstandingRentals"`
	IsActive           bool         `json:"isActive"`
	CreatedAt          time.Time    `json:"createdAt"`
	UpdatedAt          time.Time    `json:"updatedAt"`
}

// RentalStub is the summary of an unreturned rental carried on customer
// responses. ItemID/ItemName identify the first line of the rental.
type RentalStub struct {
	RentalID     string     `json:"rentalId"`
	ItemID       int32      `json:"itemID"`
	ItemName     string     `json:"itemName"`
	DueDate      time.Time  `json:"dueDate"`
	ReturnedDate *time.Time `json:"returnedDate"`
}
