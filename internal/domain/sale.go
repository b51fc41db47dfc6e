package domain

import "time"

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodCheck PaymentMethod = "check"
)

type SaleLine struct {
	ItemID   int32   `json:"itemID"`
	ItemName string  `json:"itemName"`
	Price    float64 `json:"price"`
	Quantity int32   `json:"quantity"`
	Subtotal float64 `json:"subtotal"`
}

type Sale struct {
	ID       int64      `json:"id"`
	SaleID   string     `json:"saleID"`
	Items    []SaleLine `json:"items"`
	Subtotal float64    `json:"subtotal"`
	// Discount is the resolved amount actually taken off the subtotal;
	// DiscountPercent is kept for flat-percent sales and is 0 for
	// fixed-amount coupon discounts.
	Discount        float64       `json:"discount"`
	DiscountPercent float64       `json:"discountPercent"`
	Tax             float64       `json:"tax"`
	Total           float64       `json:"total"`
	PaymentMethod   PaymentMethod `json:"paymentMethod"`
	CashierID       int64         `json:"cashierId"`
	CustomerID      *int64        `json:"customerId"`
	CouponID        *int64        `json:"couponId"`
	SaleDate        time.Time     `json:"saleDate"`
	Notes           string        `json:"notes"`
}

// SaleTotals is the money breakdown for a set of line items. No currency
// rounding is applied here; two-decimal rounding is a presentation concern.
type SaleTotals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}
