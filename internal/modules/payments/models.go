package payments

import (
	"time"

	"gorm.io/datatypes"
)

const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// Payment records one payment attempt/settlement for an order. At most one
// completed payment moves the order's payment status to paid.
type Payment struct {
	ID      string `gorm:"type:char(36);primaryKey"`
	OrderID string `gorm:"type:char(36);not null;index:ix_payments_order_id"`

	Method string `gorm:"type:varchar(32);not null"`
	Status string `gorm:"type:varchar(32);not null"`

	AmountVND int64   `gorm:"not null"`
	TxnID     *string `gorm:"type:varchar(128)"`

	GatewayResponse datatypes.JSON `gorm:"type:json"`
	ProcessedAt     *time.Time     `gorm:"type:datetime(3)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Payment) TableName() string { return "payments" }

// GatewayEvent dedupes IPN deliveries on unique(gateway, event_id). A
// redelivered notification hits the unique key and is acknowledged without
// reprocessing.
type GatewayEvent struct {
	ID          string         `gorm:"type:char(36);primaryKey"`
	Gateway     string         `gorm:"type:varchar(32);not null;uniqueIndex:ux_gateway_events_gateway_event,priority:1"`
	EventID     string         `gorm:"type:varchar(191);not null;uniqueIndex:ux_gateway_events_gateway_event,priority:2"`
	PayloadJSON datatypes.JSON `gorm:"type:json;not null"`

	ReceivedAt   time.Time  `gorm:"type:datetime(3);not null"`
	ProcessedAt  *time.Time `gorm:"type:datetime(3)"`
	ProcessError *string    `gorm:"type:varchar(255)"`
}

func (GatewayEvent) TableName() string { return "gateway_events" }

// PaymentProof is an uploaded bank-transfer receipt.
type PaymentProof struct {
	ID       string    `gorm:"type:char(36);primaryKey"`
	OrderID  string    `gorm:"type:char(36);not null;index:ix_payment_proofs_order_id"`
	FileKey  string    `gorm:"type:varchar(255);not null"`
	FileURL  string    `gorm:"type:varchar(512);not null"`
	Uploaded time.Time `gorm:"column:uploaded_at;type:datetime(3);not null"`
}

func (PaymentProof) TableName() string { return "payment_proofs" }
