package domain

import "time"

type Item struct {
	ID            int64     `json:"id"`
	ItemID        int32     `json:"itemID"`
	ItemName      string    `json:"itemName"`
	Price         float64   `json:"price"`
	StockQuantity int32     `json:"stockQuantity"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
