package catalog

import (
	"context"
	"sort"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// FreshStock re-reads stock from the row store, bypassing any request-scoped
// cache. Stale reads either block valid purchases or let oversells through,
// so every stock-affecting decision goes through here.
func (r *Repo) FreshStock(ctx context.Context, productIDs []string) (map[string]int, error) {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids)

	type row struct {
		ID            string `gorm:"column:id"`
		StockQuantity int    `gorm:"column:stock_quantity"`
	}
	var rows []row
	if err := r.db.WithContext(ctx).Session(&gorm.Session{NewDB: true}).
		Table("products").
		Select("id, stock_quantity").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make(map[string]int, len(rows))
	for _, w := range rows {
		out[w.ID] = w.StockQuantity
	}
	return out, nil
}

func (r *Repo) Get(ctx context.Context, id string) (Product, error) {
	var p Product
	err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error
	return p, err
}

func (r *Repo) GetAddressForUser(ctx context.Context, addressID, userID string) (Address, error) {
	var a Address
	err := r.db.WithContext(ctx).First(&a, "id = ? AND user_id = ?", addressID, userID).Error
	return a, err
}
