package cart

import "time"

type Cart struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:char(36);not null;uniqueIndex:ux_carts_user_id"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Cart) TableName() string { return "carts" }

type CartItem struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	CartID    string    `gorm:"type:char(36);not null;index:ix_cart_items_cart_id"`
	ProductID string    `gorm:"type:char(36);not null;index:ix_cart_items_product_id"`
	Quantity  int       `gorm:"not null"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (CartItem) TableName() string { return "cart_items" }
