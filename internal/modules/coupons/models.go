package coupons

import "time"

const (
	TypePercentage = "percentage"
	TypeFixed      = "fixed"
)

type Coupon struct {
	ID   string `gorm:"type:char(36);primaryKey"`
	Code string `gorm:"type:varchar(64);not null;uniqueIndex:ux_coupons_code"`

	Type  string `gorm:"type:varchar(16);not null"`
	Value int64  `gorm:"not null"`

	MinOrderVND int64 `gorm:"not null;default:0"`

	// UsageLimit nil means unlimited.
	UsageLimit *int `gorm:"column:usage_limit"`
	UsageCount int  `gorm:"not null;default:0"`

	ValidFrom  *time.Time `gorm:"type:datetime(3)"`
	ValidUntil *time.Time `gorm:"type:datetime(3)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Coupon) TableName() string { return "coupons" }
