package domain

import "time"

// Coupon discounts are either a percentage of the subtotal or a fixed
// amount, selected by IsPercentage.
type Coupon struct {
	ID              int64     `json:"id"`
	CouponCode      string    `json:"couponCode"`
	DiscountPercent float64   `json:"discountPercent"`
	DiscountAmount  float64   `json:"discountAmount"`
	IsPercentage    bool      `json:"isPercentage"`
	MaxUses         *int32    `json:"maxUses"`
	UsedCount       int32     `json:"usedCount"`
	ExpiryDate      time.Time `json:"expiryDate"`
	IsActive        bool      `json:"isActive"`
	CreatedAt       time.Time `json:"createdAt"`
}

// IsValidAt reports whether the coupon can be applied at the given moment:
// active, unexpired, and under its usage cap. Must be evaluated at the moment
// of use since usedCount changes between calls.
func (c *Coupon) IsValidAt(now time.Time) bool {
	if !c.IsActive {
		return false
	}
	if !now.Before(c.ExpiryDate) {
		return false
	}
	if c.MaxUses != nil && c.UsedCount >= *c.MaxUses {
		return false
	}
	return true
}
