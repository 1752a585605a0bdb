package orders

import (
	"context"
	"log"
	"strings"

	"gorm.io/gorm"
)

type Repo struct{ db *gorm.DB }

func NewRepo(db *gorm.DB) *Repo { return &Repo{db: db} }

// DB returns the underlying database connection for direct queries.
func (r *Repo) DB() *gorm.DB { return r.db }

type ListByUserParams struct {
	UserID   string
	Page     int
	PageSize int
	Status   string // optional filter
}

type ListByUserResult struct {
	Items []ListByUserItem
	Total int64
}

type ListByUserItem struct {
	Order Order
	Count int
}

func (r *Repo) ListByUser(ctx context.Context, in ListByUserParams) (ListByUserResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 20
	}
	status := strings.TrimSpace(in.Status)

	q := r.db.WithContext(ctx).Model(&Order{}).Where("user_id = ?", in.UserID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return ListByUserResult{}, err
	}

	var list []Order
	if err := q.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&list).Error; err != nil {
		log.Printf("ListByUser: find error: %v", err)
		return ListByUserResult{}, err
	}

	items := make([]ListByUserItem, len(list))
	for i, o := range list {
		var count int64
		if err := r.db.WithContext(ctx).Model(&OrderItem{}).Where("order_id = ?", o.ID).Count(&count).Error; err != nil {
			count = 0
		}
		items[i] = ListByUserItem{Order: o, Count: int(count)}
	}

	return ListByUserResult{Items: items, Total: total}, nil
}

func (r *Repo) GetWithItems(ctx context.Context, id string) (Order, []OrderItem, error) {
	var o Order
	if err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	var items []OrderItem
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&items, "order_id = ?", id).Error; err != nil {
		return Order{}, nil, err
	}
	return o, items, nil
}

func (r *Repo) GetByOrderNumber(ctx context.Context, number string) (Order, error) {
	var o Order
	err := r.db.WithContext(ctx).First(&o, "order_number = ?", number).Error
	return o, err
}

type SellerListParams struct {
	Q        string
	Status   string
	Page     int
	PageSize int
}

type SellerListResult struct {
	Items []Order
	Total int64
}

func (r *Repo) SellerList(ctx context.Context, in SellerListParams) (SellerListResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size < 1 || size > 100 {
		size = 30
	}

	q := strings.TrimSpace(in.Q)
	status := strings.TrimSpace(in.Status)

	base := r.db.WithContext(ctx).Model(&Order{})
	if status != "" {
		base = base.Where("status = ?", status)
	}
	if q != "" {
		like := "%" + q + "%"
		base = base.Where("(id LIKE ? OR order_number LIKE ?)", like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return SellerListResult{}, err
	}

	var items []Order
	if err := base.
		Order("created_at DESC").
		Limit(size).
		Offset((page - 1) * size).
		Find(&items).Error; err != nil {
		return SellerListResult{}, err
	}

	return SellerListResult{Items: items, Total: total}, nil
}

func (r *Repo) History(ctx context.Context, orderID string) ([]OrderStatusHistory, error) {
	var out []OrderStatusHistory
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&out, "order_id = ?", orderID).Error
	return out, err
}
