package refunds

import "time"

const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// RefundWindow is how long after delivery a customer may still ask for a
// refund.
const RefundWindow = 7 * 24 * time.Hour

// RefundRequest is a customer-initiated reversal. One per order, resolved
// exactly once.
type RefundRequest struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	OrderID string `gorm:"type:char(36);not null;uniqueIndex:ux_refund_requests_order_id"`

	AmountVND int64  `gorm:"not null"`
	Reason    string `gorm:"type:varchar(500);not null"`
	Status    string `gorm:"type:varchar(16);not null"`

	RequesterID string  `gorm:"type:char(36);not null"`
	ProcessorID *string `gorm:"type:char(36)"`

	AdminNote       *string `gorm:"type:varchar(500)"`
	RejectionReason *string `gorm:"type:varchar(500)"`

	ProcessedAt *time.Time `gorm:"type:datetime(3)"`
	CreatedAt   time.Time  `gorm:"type:datetime(3);not null"`
	UpdatedAt   time.Time  `gorm:"type:datetime(3);not null"`
}

func (RefundRequest) TableName() string { return "refund_requests" }
