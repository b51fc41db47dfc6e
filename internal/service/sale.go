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

// TaxRate is the flat sales tax applied to the discounted subtotal.
const TaxRate = 0.06

type saleService struct {
	saleRepo     repository.SaleRepository
	itemRepo     repository.ItemRepository
	couponRepo   repository.CouponRepository
	customerRepo repository.CustomerRepository
	emailSvc     EmailService
}

func NewSaleService(
	saleRepo repository.SaleRepository,
	itemRepo repository.ItemRepository,
	couponRepo repository.CouponRepository,
	customerRepo repository.CustomerRepository,
	emailSvc EmailService,
) SaleService {
	return &saleService{
		saleRepo:     saleRepo,
		itemRepo:     itemRepo,
		couponRepo:   couponRepo,
		customerRepo: customerRepo,
		emailSvc:     emailSvc,
	}
}

// resolveDiscount picks the discount to apply: a valid coupon wins over the
// caller-supplied flat percent; an invalid or missing coupon silently falls
// back to the flat percent. Returns the discount amount and the percent it
// represents (0 for fixed-amount coupons).
func (s *saleService) resolveDiscount(ctx context.Context, subtotal, discountPercent float64, couponID *int64) (float64, float64, *domain.Coupon) {
	if couponID != nil {
		coupon, err := s.couponRepo.GetByID(ctx, *couponID)
		if err != nil {
			logger.Debug("coupon lookup failed, falling back to flat discount", "coupon_id", *couponID, "error", err)
		} else if coupon.IsValidAt(time.Now()) {
			if coupon.IsPercentage {
				return subtotal * coupon.DiscountPercent / 100, coupon.DiscountPercent, coupon
			}
			return coupon.DiscountAmount, 0, coupon
		}
	}
	return subtotal * discountPercent / 100, discountPercent, nil
}

func (s *saleService) CalculateTotals(ctx context.Context, items []LineInput, discountPercent float64, couponID *int64) (domain.SaleTotals, error) {
	var subtotal float64
	for _, line := range items {
		subtotal += line.Price * float64(line.Quantity)
	}

	discount, _, _ := s.resolveDiscount(ctx, subtotal, discountPercent, couponID)
	taxable := subtotal - discount
	tax := taxable * TaxRate

	return domain.SaleTotals{
		Subtotal: subtotal,
		Discount: discount,
		Tax:      tax,
		Total:    taxable + tax,
	}, nil
}

func (s *saleService) CreateSale(ctx context.Context, input CreateSaleInput) (*domain.Sale, error) {
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: sale requires at least one item", ErrValidation)
	}
	for _, line := range input.Items {
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d quantity must be at least 1", ErrValidation, line.ItemID)
		}
	}

	// Resolve each line against the catalog; pricing always comes from the
	// item record, not the request.
	lines := make([]domain.SaleLine, 0, len(input.Items))
	var subtotal float64
	for _, line := range input.Items {
		item, err := s.itemRepo.GetByItemID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("item %d: %w", line.ItemID, ErrItemNotFound)
			}
			return nil, err
		}
		lineSubtotal := item.Price * float64(line.Quantity)
		lines = append(lines, domain.SaleLine{
			ItemID:   item.ItemID,
			ItemName: item.ItemName,
			Price:    item.Price,
			Quantity: line.Quantity,
			Subtotal: lineSubtotal,
		})
		subtotal += lineSubtotal
	}

	discount, appliedPercent, coupon := s.resolveDiscount(ctx, subtotal, input.DiscountPercent, input.CouponID)
	taxable := subtotal - discount
	tax := taxable * TaxRate

	sale := &domain.Sale{
		SaleID:          "SALE-" + strings.ToUpper(uuid.NewString()[:8]),
		Items:           lines,
		Subtotal:        subtotal,
		Discount:        discount,
		DiscountPercent: appliedPercent,
		Tax:             tax,
		Total:           taxable + tax,
		PaymentMethod:   input.PaymentMethod,
		CashierID:       input.CashierID,
		CustomerID:      input.CustomerID,
		CouponID:        input.CouponID,
		SaleDate:        time.Now(),
		Notes:           input.Notes,
	}

	// Side effects are independent atomic updates, not a transaction with
	// the sale record; a failure partway leaves earlier effects applied.
	for _, line := range lines {
		remaining, err := s.itemRepo.AdjustStock(ctx, line.ItemID, -line.Quantity)
		if err != nil {
			return nil, fmt.Errorf("adjusting stock for item %d: %w", line.ItemID, err)
		}
		if remaining < 0 {
			logger.Warn("item stock went negative", "item_id", line.ItemID, "stock", remaining)
		}
	}

	if coupon != nil {
		if err := s.couponRepo.IncrementUsage(ctx, coupon.ID); err != nil {
			return nil, fmt.Errorf("incrementing coupon usage: %w", err)
		}
	}

	if err := s.saleRepo.Create(ctx, sale); err != nil {
		return nil, err
	}

	if input.CustomerID != nil {
		if err := s.customerRepo.AddToTotalSpent(ctx, *input.CustomerID, sale.Total); err != nil {
			return nil, fmt.Errorf("updating customer total spent: %w", err)
		}
		s.sendReceipt(ctx, sale)
	}

	return sale, nil
}

// sendReceipt emails the customer a receipt when an address is on file.
// Failures are logged, never surfaced.
func (s *saleService) sendReceipt(ctx context.Context, sale *domain.Sale) {
	if s.emailSvc == nil || sale.CustomerID == nil {
		return
	}
	customer, err := s.customerRepo.GetByID(ctx, *sale.CustomerID)
	if err != nil || customer.Email == "" {
		return
	}
	name := customer.FirstName + " " + customer.LastName
	if err := s.emailSvc.SendReceipt(ctx, customer.Email, name, sale); err != nil {
		logger.Warn("failed to send receipt email", "sale_id", sale.SaleID, "error", err)
	}
}

func (s *saleService) GetSale(ctx context.Context, id int64) (*domain.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSaleNotFound
		}
		return nil, err
	}
	return sale, nil
}

func (s *saleService) ListSales(ctx context.Context, filters repository.SaleFilters) ([]domain.Sale, error) {
	return s.saleRepo.List(ctx, filters)
}
