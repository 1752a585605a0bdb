package coupons

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound      = errors.New("coupon not found")
	ErrExpired       = errors.New("coupon is not valid right now")
	ErrUsageExceeded = errors.New("coupon usage limit reached")
	ErrMinOrder      = errors.New("order subtotal below coupon minimum")
)

// UsagePolicy controls when usage_count is incremented. The original
// behavior only counts usage for COD / bank transfer at dispatch time;
// gateway-paid orders never increment. That asymmetry is preserved as the
// default until product decides otherwise.
type UsagePolicy int

const (
	UsageOnDispatch         UsagePolicy = iota // count at dispatch, non-gateway methods only
	UsageOnPaymentConfirmed                    // count once when any method reaches paid
)

type Service struct {
	db     *gorm.DB
	Policy UsagePolicy
}

func NewService(db *gorm.DB) *Service { return &Service{db: db, Policy: UsageOnDispatch} }

// Discount computes the clamped discount for a coupon against a subtotal.
// Min-order and limit checks are Validate's job; this is pure arithmetic.
func Discount(c Coupon, subtotalVND int64) int64 {
	var d int64
	switch c.Type {
	case TypePercentage:
		d = subtotalVND * c.Value / 100
	case TypeFixed:
		d = c.Value
	default:
		return 0
	}
	if d > subtotalVND {
		d = subtotalVND
	}
	if d < 0 {
		d = 0
	}
	return d
}

// Validate looks the coupon up (case-insensitive) and returns the discount
// it yields for the given subtotal, or a typed rejection.
func (s *Service) Validate(ctx context.Context, code string, subtotalVND int64) (Coupon, int64, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return Coupon{}, 0, ErrNotFound
	}

	var c Coupon
	err := s.db.WithContext(ctx).First(&c, "LOWER(code) = LOWER(?)", code).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Coupon{}, 0, ErrNotFound
		}
		return Coupon{}, 0, err
	}

	now := time.Now()
	if c.ValidFrom != nil && now.Before(*c.ValidFrom) {
		return Coupon{}, 0, ErrExpired
	}
	if c.ValidUntil != nil && now.After(*c.ValidUntil) {
		return Coupon{}, 0, ErrExpired
	}
	if c.UsageLimit != nil && c.UsageCount >= *c.UsageLimit {
		return Coupon{}, 0, ErrUsageExceeded
	}
	if subtotalVND < c.MinOrderVND {
		return Coupon{}, 0, ErrMinOrder
	}

	return c, Discount(c, subtotalVND), nil
}

// RecordUsageInTx increments usage_count exactly once per call, guarded so a
// limited coupon can never exceed its limit under concurrency.
func RecordUsageInTx(ctx context.Context, tx *gorm.DB, code string) error {
	res := tx.WithContext(ctx).
		Model(&Coupon{}).
		Where("LOWER(code) = LOWER(?) AND (usage_limit IS NULL OR usage_count < usage_limit)", code).
		UpdateColumn("usage_count", gorm.Expr("usage_count + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUsageExceeded
	}
	return nil
}
