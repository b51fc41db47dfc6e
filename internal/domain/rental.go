package domain

import "time"

type RentalStatus string

const (
	RentalStatusActive   RentalStatus = "active"
	RentalStatusOverdue  RentalStatus = "overdue"
	RentalStatusReturned RentalStatus = "returned"
)

type RentalLine struct {
	ItemID   int32  `json:"itemID"`
	ItemName string `json:"itemName"`
	Quantity int32  `json:"quantity"`
}

type Rental struct {
	ID           int64        `json:"id"`
	RentalID     string       `json:"rentalID"`
	Items        []RentalLine `json:"items"`
	CustomerID   int64        `json:"customerId"`
	CashierID    int64        `json:"cashierId"`
	RentalDate   time.Time    `json:"rentalDate"`
	DueDate      time.Time    `json:"dueDate"`
	ReturnedDate *time.Time   `json:"returnedDate"`
	Status       RentalStatus `json:"status"`
	TotalCost    float64      `json:"totalCost"`
	LateFee      float64      `json:"lateFee"`
	Notes        string       `json:"notes"`
}

// DaysOverdue returns the number of chargeable late days at the given moment:
// zero when the due date has not passed, otherwise the elapsed time past due
// rounded up to whole days.
func (r *Rental) DaysOverdue(now time.Time) int {
	if !now.After(r.DueDate) {
		return 0
	}
	elapsed := now.Sub(r.DueDate)
	days := int(elapsed / (24 * time.Hour))
	if elapsed%(24*time.Hour) > 0 {
		days++
	}
	return days
}
