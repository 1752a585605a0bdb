package catalog

import "time"

const (
	ProductActive     = "active"
	ProductOutOfStock = "out_of_stock"
	ProductInactive   = "inactive"
)

type Product struct {
	ID            string    `gorm:"type:char(36);primaryKey"`
	Name          string    `gorm:"type:varchar(255);not null"`
	SKU           string    `gorm:"type:varchar(64);not null;uniqueIndex:ux_products_sku"`
	ImageURL      string    `gorm:"type:varchar(512)"`
	PriceVND      int64     `gorm:"not null"`
	StockQuantity int       `gorm:"not null;default:0"`
	Status        string    `gorm:"type:varchar(32);not null;default:'active'"`
	SellerID      *string   `gorm:"type:char(36);index:ix_products_seller_id"`
	CreatedAt     time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt     time.Time `gorm:"type:datetime(3);not null"`
}

func (Product) TableName() string { return "products" }

type Address struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	UserID    string    `gorm:"type:char(36);not null;index:ix_addresses_user_id"`
	FullName  string    `gorm:"type:varchar(255);not null"`
	Phone     string    `gorm:"type:varchar(32);not null"`
	Line1     string    `gorm:"type:varchar(255);not null"`
	Ward      string    `gorm:"type:varchar(100)"`
	District  string    `gorm:"type:varchar(100)"`
	City      string    `gorm:"type:varchar(100);not null"`
	IsDefault bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"type:datetime(3);not null"`
	UpdatedAt time.Time `gorm:"type:datetime(3);not null"`
}

func (Address) TableName() string { return "addresses" }
