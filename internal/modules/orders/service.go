package orders

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/cart"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/catalog"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/checkout"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/shipping"
)

// Service materializes pending orders from a cart selection or a buy-now
// payload. It prices the order once and never touches stock; deduction is
// deferred to the delivered transition (see checkout package).
type Service struct {
	db      *gorm.DB
	carts   *cart.Repo
	catalog *catalog.Repo
	coupons *coupons.Service
}

func NewService(db *gorm.DB, carts *cart.Repo, cat *catalog.Repo, cps *coupons.Service) *Service {
	return &Service{db: db, carts: carts, catalog: cat, coupons: cps}
}

type CreateInput struct {
	UserID         string
	ItemIDs        []string // explicit selection, no session state
	CouponCode     string
	ShippingMethod string
	AddressID      string
}

type BuyNowInput struct {
	UserID         string
	ProductID      string
	Quantity       int
	CouponCode     string
	ShippingMethod string
	AddressID      string
}

// CreateFromCart builds a pending order from the user's selected cart items.
func (s *Service) CreateFromCart(ctx context.Context, in CreateInput) (Order, []OrderItem, error) {
	if len(in.ItemIDs) == 0 {
		return Order{}, nil, ErrCartEmpty
	}

	rows, err := s.carts.SelectedItems(ctx, in.UserID, in.ItemIDs)
	if err != nil {
		return Order{}, nil, err
	}
	if len(rows) == 0 {
		return Order{}, nil, ErrCartEmpty
	}

	lines := make([]PricedLine, 0, len(rows))
	itemIDs := make([]string, 0, len(rows))
	for _, r := range rows {
		if r.ProductName == "" {
			return Order{}, nil, ErrProductUnavailable
		}
		lines = append(lines, PricedLine{
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			SKU:          r.SKU,
			ImageURL:     r.ImageURL,
			Quantity:     r.Quantity,
			UnitPriceVND: r.UnitPriceVND,
		})
		itemIDs = append(itemIDs, r.ItemID)
	}

	return s.create(ctx, in.UserID, lines, itemIDs, in.CouponCode, in.ShippingMethod, in.AddressID)
}

// CreateBuyNow prices a single product directly, bypassing the cart.
func (s *Service) CreateBuyNow(ctx context.Context, in BuyNowInput) (Order, []OrderItem, error) {
	if in.Quantity < 1 {
		in.Quantity = 1
	}

	p, err := s.catalog.Get(ctx, in.ProductID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Order{}, nil, ErrProductUnavailable
		}
		return Order{}, nil, err
	}

	lines := []PricedLine{{
		ProductID:    p.ID,
		ProductName:  p.Name,
		SKU:          p.SKU,
		ImageURL:     p.ImageURL,
		Quantity:     in.Quantity,
		UnitPriceVND: p.PriceVND,
	}}

	return s.create(ctx, in.UserID, lines, nil, in.CouponCode, in.ShippingMethod, in.AddressID)
}

func (s *Service) create(ctx context.Context, userID string, lines []PricedLine, cartItemIDs []string, couponCode, shippingMethod, addressID string) (Order, []OrderItem, error) {
	addr, err := s.catalog.GetAddressForUser(ctx, addressID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Order{}, nil, ErrAddressNotOwned
		}
		return Order{}, nil, err
	}

	// Fresh availability check. Stock is not deducted here, but an order
	// that can never be fulfilled should not be created either.
	want := make(map[string]int, len(lines))
	names := make(map[string]string, len(lines))
	ids := make([]string, 0, len(lines))
	for _, ln := range lines {
		if _, ok := want[ln.ProductID]; !ok {
			ids = append(ids, ln.ProductID)
		}
		want[ln.ProductID] += ln.Quantity
		names[ln.ProductID] = ln.ProductName
	}
	stock, err := s.catalog.FreshStock(ctx, ids)
	if err != nil {
		return Order{}, nil, err
	}
	if err := checkout.EnsureAvailable(want, stock, names); err != nil {
		return Order{}, nil, err
	}

	subtotal := Subtotal(lines)

	var couponPtr *string
	var discount int64
	if code := strings.TrimSpace(couponCode); code != "" {
		_, d, err := s.coupons.Validate(ctx, code, subtotal)
		if err != nil {
			return Order{}, nil, err
		}
		discount = d
		couponPtr = &code
	}

	fee, err := shipping.Quote(shippingMethod, subtotal)
	if err != nil {
		return Order{}, nil, err
	}

	totals := ComputeTotals(lines, fee, discount)

	now := time.Now()
	addrText := formatAddress(addr)
	itemIDsJSON, _ := json.Marshal(cartItemIDs)

	o := Order{
		ID:              uuid.NewString(),
		OrderNumber:     NewOrderNumber(now),
		UserID:          userID,
		Status:          StatusPending,
		PaymentStatus:   PaymentPending, // dispatcher sets the method pairing
		SubtotalVND:     totals.SubtotalVND,
		ShippingFeeVND:  totals.ShippingFeeVND,
		TaxVND:          totals.TaxVND,
		DiscountVND:     totals.DiscountVND,
		TotalVND:        totals.TotalVND,
		CouponCode:      couponPtr,
		ShippingMethod:  shippingMethod,
		ShippingAddress: addrText,
		BillingAddress:  addrText,
		CartItemIDs:     itemIDsJSON,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if o.ShippingMethod == "" {
		o.ShippingMethod = shipping.MethodStandard
	}

	items := make([]OrderItem, 0, len(lines))
	for _, ln := range lines {
		items = append(items, OrderItem{
			ID:           uuid.NewString(),
			OrderID:      o.ID,
			ProductID:    ln.ProductID,
			ProductName:  ln.ProductName,
			SKU:          ln.SKU,
			ImageURL:     ln.ImageURL,
			Quantity:     ln.Quantity,
			UnitPriceVND: ln.UnitPriceVND,
			LineTotalVND: ln.UnitPriceVND * int64(ln.Quantity),
			CreatedAt:    now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&o).Error; err != nil {
			return err
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		return Order{}, nil, err
	}

	return o, items, nil
}

// SelectedCartItemIDs decodes the cart selection stored on the order.
func (o Order) SelectedCartItemIDs() []string {
	if len(o.CartItemIDs) == 0 {
		return nil
	}
	var ids []string
	if err := json.Unmarshal(o.CartItemIDs, &ids); err != nil {
		return nil
	}
	return ids
}

func formatAddress(a catalog.Address) string {
	parts := []string{a.FullName, a.Line1}
	if a.Ward != "" {
		parts = append(parts, a.Ward)
	}
	if a.District != "" {
		parts = append(parts, a.District)
	}
	parts = append(parts, a.City, "Tel: "+a.Phone)
	return strings.Join(parts, ", ")
}
