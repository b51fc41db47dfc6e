package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type couponService struct {
	couponRepo repository.CouponRepository
}

func NewCouponService(couponRepo repository.CouponRepository) CouponService {
	return &couponService{couponRepo: couponRepo}
}

func (s *couponService) CreateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	coupon.CouponCode = strings.ToUpper(strings.TrimSpace(coupon.CouponCode))
	if coupon.CouponCode == "" || coupon.ExpiryDate.IsZero() {
		return fmt.Errorf("%w: coupon code and expiry date are required", ErrValidation)
	}
	if coupon.IsPercentage && (coupon.DiscountPercent < 0 || coupon.DiscountPercent > 100) {
		return fmt.Errorf("%w: discount percent must be between 0 and 100", ErrValidation)
	}
	coupon.IsActive = true

	if _, err := s.couponRepo.GetByCode(ctx, coupon.CouponCode); err == nil {
		return ErrDuplicateCoupon
	} else if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	return s.couponRepo.Create(ctx, coupon)
}

// GetCouponByCode returns the coupon when it exists; a coupon that exists but
// is no longer applicable comes back with ErrCouponInvalid so the caller can
// distinguish it from an unknown code.
func (s *couponService) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCouponNotFound
		}
		return nil, err
	}
	if !coupon.IsValidAt(time.Now()) {
		return coupon, ErrCouponInvalid
	}
	return coupon, nil
}

func (s *couponService) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	return s.couponRepo.ListActive(ctx)
}

func (s *couponService) UpdateCoupon(ctx context.Context, coupon *domain.Coupon) error {
	err := s.couponRepo.Update(ctx, coupon)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCouponNotFound
	}
	return err
}

func (s *couponService) DeactivateCoupon(ctx context.Context, id int64) error {
	err := s.couponRepo.Deactivate(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrCouponNotFound
	}
	return err
}
