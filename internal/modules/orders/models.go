package orders

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"gorm.io/datatypes"
)

type Order struct {
	ID          string `gorm:"type:char(36);primaryKey"`
	OrderNumber string `gorm:"type:varchar(32);not null;uniqueIndex:ux_orders_order_number"`
	UserID      string `gorm:"type:char(36);not null;index:ix_orders_user_id"`

	Status        OrderStatus   `gorm:"type:varchar(32);not null"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(32);not null"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(32);not null"`

	SubtotalVND    int64 `gorm:"not null"`
	ShippingFeeVND int64 `gorm:"not null"`
	TaxVND         int64 `gorm:"not null"`
	DiscountVND    int64 `gorm:"not null"`
	TotalVND       int64 `gorm:"not null"`

	CouponCode     *string `gorm:"type:varchar(64)"`
	ShippingMethod string  `gorm:"type:varchar(32);not null"`

	// Address snapshots are denormalized text, not live references, so later
	// address edits never rewrite order history.
	ShippingAddress string `gorm:"type:text;not null"`
	BillingAddress  string `gorm:"type:text;not null"`

	// Cart item ids that produced this order. Gateway-paid orders clear their
	// cart only when the payment callback confirms, so the selection has to
	// survive the redirect round-trip.
	CartItemIDs datatypes.JSON `gorm:"type:json"`

	SellerConfirmed   bool       `gorm:"not null;default:false"`
	SellerConfirmedAt *time.Time `gorm:"type:datetime(3)"`
	PaidAt            *time.Time `gorm:"type:datetime(3)"`
	ShippedAt         *time.Time `gorm:"type:datetime(3)"`
	DeliveredAt       *time.Time `gorm:"type:datetime(3)"`
	CancelledAt       *time.Time `gorm:"type:datetime(3)"`

	TrackingNumber *string `gorm:"type:varchar(64)"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is a frozen line-item snapshot. Name/SKU/price are copied at
// order time and never updated, even if the product is edited or deleted.
type OrderItem struct {
	ID        string `gorm:"type:char(36);primaryKey"`
	OrderID   string `gorm:"type:char(36);not null;index:ix_order_items_order_id"`
	ProductID string `gorm:"type:char(36);not null;index:ix_order_items_product_id"`

	ProductName string `gorm:"type:varchar(255);not null"`
	SKU         string `gorm:"type:varchar(64);not null"`
	ImageURL    string `gorm:"type:varchar(512)"`

	Quantity     int   `gorm:"not null"`
	UnitPriceVND int64 `gorm:"not null"`
	LineTotalVND int64 `gorm:"not null"`

	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (OrderItem) TableName() string { return "order_items" }

type OrderStatusHistory struct {
	ID         string      `gorm:"type:char(36);primaryKey"`
	OrderID    string      `gorm:"type:char(36);not null;index:ix_order_status_history_order_id"`
	FromStatus OrderStatus `gorm:"type:varchar(32);not null"`
	ToStatus   OrderStatus `gorm:"type:varchar(32);not null"`
	ActorID    string      `gorm:"type:char(36);not null"`
	Note       *string     `gorm:"type:varchar(255)"`
	CreatedAt  time.Time   `gorm:"type:datetime(3);not null"`
}

func (OrderStatusHistory) TableName() string { return "order_status_history" }

// NewOrderNumber builds the human-readable number: JH + date + random suffix.
func NewOrderNumber(now time.Time) string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return "JH" + now.Format("20060102") + "-" + hex.EncodeToString(b)
}
