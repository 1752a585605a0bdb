package cart

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

func (r *Repo) GetOrCreateUserCart(ctx context.Context, userID string) (Cart, error) {
	var c Cart
	err := r.db.WithContext(ctx).
		Where(Cart{UserID: userID}).
		Attrs(Cart{ID: uuid.NewString()}).
		FirstOrCreate(&c).Error
	return c, err
}

// SelectedRow joins a cart item with its live product for checkout pricing.
type SelectedRow struct {
	ItemID        string `gorm:"column:item_id"`
	ProductID     string `gorm:"column:product_id"`
	Quantity      int    `gorm:"column:quantity"`
	ProductName   string `gorm:"column:product_name"`
	SKU           string `gorm:"column:sku"`
	ImageURL      string `gorm:"column:image_url"`
	UnitPriceVND  int64  `gorm:"column:unit_price_vnd"`
	StockQuantity int    `gorm:"column:stock_quantity"`
}

// SelectedItems resolves an explicit item-id selection against the user's
// cart. Items whose product has been deleted are NOT silently skipped; the
// caller decides how to fail.
func (r *Repo) SelectedItems(ctx context.Context, userID string, itemIDs []string) ([]SelectedRow, error) {
	ids := append([]string(nil), itemIDs...)
	sort.Strings(ids)

	const q = `
SELECT
  ci.id          AS item_id,
  ci.product_id  AS product_id,
  ci.quantity    AS quantity,
  COALESCE(p.name, '')  AS product_name,
  COALESCE(p.sku, '')   AS sku,
  COALESCE(p.image_url, '') AS image_url,
  COALESCE(p.price_vnd, 0)  AS unit_price_vnd,
  COALESCE(p.stock_quantity, 0) AS stock_quantity
FROM cart_items ci
JOIN carts c ON c.id = ci.cart_id
LEFT JOIN products p ON p.id = ci.product_id
WHERE c.user_id = ? AND ci.id IN ?
ORDER BY ci.created_at ASC;
`
	var rows []SelectedRow
	if err := r.db.WithContext(ctx).Raw(q, userID, ids).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// RemoveItemsInTx deletes the given cart items inside the caller's tx.
// Used after a non-gateway dispatch succeeds, or on gateway payment confirm.
func RemoveItemsInTx(ctx context.Context, tx *gorm.DB, userID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return nil
	}
	return tx.WithContext(ctx).
		Where("id IN ? AND cart_id IN (SELECT id FROM carts WHERE user_id = ?)", itemIDs, userID).
		Delete(&CartItem{}).Error
}
