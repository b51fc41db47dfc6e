package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"retail-pos-backend/internal/domain"
	"retail-pos-backend/internal/repository"
)

type couponRepository struct {
	db *sql.DB
}

func NewCouponRepository(db *sql.DB) repository.CouponRepository {
	return &couponRepository{db: db}
}

const couponColumns = `id, coupon_code, discount_percent, discount_amount, is_percentage, max_uses, used_count, expiry_date, is_active, created_at`

func scanCoupon(row interface{ Scan(...any) error }, c *domain.Coupon) error {
	var maxUses sql.NullInt32
	err := row.Scan(&c.ID, &c.CouponCode, &c.DiscountPercent, &c.DiscountAmount, &c.IsPercentage, &maxUses, &c.UsedCount, &c.ExpiryDate, &c.IsActive, &c.CreatedAt)
	if err != nil {
		return err
	}
	if maxUses.Valid {
		v := maxUses.Int32
		c.MaxUses = &v
	}
	return nil
}

func (r *couponRepository) Create(ctx context.Context, c *domain.Coupon) error {
	query := `INSERT INTO coupons (coupon_code, discount_percent, discount_amount, is_percentage, max_uses, used_count, expiry_date, is_active, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	c.CouponCode = strings.ToUpper(strings.TrimSpace(c.CouponCode))
	c.CreatedAt = time.Now()
	var maxUses interface{}
	if c.MaxUses != nil {
		maxUses = *c.MaxUses
	}
	return r.db.QueryRowContext(ctx, query, c.CouponCode, c.DiscountPercent, c.DiscountAmount, c.IsPercentage, maxUses, c.UsedCount, c.ExpiryDate, c.IsActive, c.CreatedAt).Scan(&c.ID)
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE id = $1`
	if err := scanCoupon(r.db.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) GetByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	c := &domain.Coupon{}
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE coupon_code = $1`
	if err := scanCoupon(r.db.QueryRowContext(ctx, query, strings.ToUpper(strings.TrimSpace(code))), c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *couponRepository) ListActive(ctx context.Context) ([]domain.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons WHERE is_active = TRUE ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var coupons []domain.Coupon
	for rows.Next() {
		var c domain.Coupon
		if err := scanCoupon(rows, &c); err != nil {
			return nil, err
		}
		coupons = append(coupons, c)
	}
	return coupons, rows.Err()
}

func (r *couponRepository) Update(ctx context.Context, c *domain.Coupon) error {
	query := `UPDATE coupons SET discount_percent=$1, discount_amount=$2, is_percentage=$3, max_uses=$4, expiry_date=$5, is_active=$6 WHERE id=$7`
	var maxUses interface{}
	if c.MaxUses != nil {
		maxUses = *c.MaxUses
	}
	res, err := r.db.ExecContext(ctx, query, c.DiscountPercent, c.DiscountAmount, c.IsPercentage, maxUses, c.ExpiryDate, c.IsActive, c.ID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *couponRepository) Deactivate(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE coupons SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// IncrementUsage is atomic so two concurrent sales cannot read-modify-write
// the same count.
func (r *couponRepository) IncrementUsage(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE coupons SET used_count = used_count + 1 WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}
