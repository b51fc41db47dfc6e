package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmployeeInactive   = errors.New("employee account is inactive")

	ErrItemNotFound     = errors.New("item not found")
	ErrCouponNotFound   = errors.New("coupon not found")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrSaleNotFound     = errors.New("sale not found")
	ErrRentalNotFound   = errors.New("rental not found")
	ErrEmployeeNotFound = errors.New("employee not found")

	ErrCouponInvalid = errors.New("coupon is expired or no longer valid")

	ErrDuplicateItem     = errors.New("item already exists")
	ErrDuplicateCustomer = errors.New("customer already exists")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateCoupon   = errors.New("coupon code already exists")

	ErrValidation = errors.New("validation failed")
)
