package payments

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/cart"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
)

// Dispatcher routes a freshly created order onto one of the payment paths
// and sets the method-specific status pairing:
//
//	cod           -> pending / cod_pending
//	bank_transfer -> pending / awaiting_transfer
//	vnpay, momo   -> pending / pending, plus a redirect URL
//
// A gateway that cannot even produce a pay URL leaves nothing behind: the
// order and its items are deleted so no unpayable order survives.
type Dispatcher struct {
	db       *gorm.DB
	gateways map[orders.PaymentMethod]Gateway
	coupons  *coupons.Service
	baseURL  string
	logger   *slog.Logger
}

func NewDispatcher(db *gorm.DB, gws map[orders.PaymentMethod]Gateway, cps *coupons.Service, baseURL string) *Dispatcher {
	return &Dispatcher{db: db, gateways: gws, coupons: cps, baseURL: baseURL, logger: slog.Default()}
}

func (d *Dispatcher) SetLogger(l *slog.Logger) { d.logger = l }

type DispatchInput struct {
	OrderID  string
	UserID   string
	Method   orders.PaymentMethod
	ClientIP string
}

type DispatchResult struct {
	Success     bool
	Message     string
	RedirectURL string
	PaymentID   string
}

func (d *Dispatcher) Dispatch(ctx context.Context, in DispatchInput) (DispatchResult, error) {
	switch in.Method {
	case orders.MethodCOD, orders.MethodBankTransfer:
		return d.dispatchOffline(ctx, in)
	case orders.MethodVNPay, orders.MethodMoMo:
		return d.dispatchGateway(ctx, in)
	default:
		return DispatchResult{}, ErrUnknownMethod
	}
}

func (d *Dispatcher) dispatchOffline(ctx context.Context, in DispatchInput) (DispatchResult, error) {
	payStatus := orders.PaymentCODPending
	msg := "Order placed. Pay the courier on delivery."
	if in.Method == orders.MethodBankTransfer {
		payStatus = orders.PaymentAwaitingTransfer
		msg = "Order placed. Transfer the total and upload your receipt."
	}

	var paymentID string
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o, err := d.lockPayableOrder(ctx, tx, in.OrderID, in.UserID)
		if err != nil {
			return err
		}

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"payment_method": in.Method,
				"payment_status": payStatus,
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}

		p := Payment{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			Method:    string(in.Method),
			Status:    StatusPending,
			AmountVND: o.TotalVND,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
		paymentID = p.ID

		// Non-gateway methods settle the cart immediately.
		if err := cart.RemoveItemsInTx(ctx, tx, o.UserID, o.SelectedCartItemIDs()); err != nil {
			return err
		}

		// Usage-count asymmetry preserved: only non-gateway methods count
		// here under the default policy.
		if o.CouponCode != nil && d.coupons.Policy == coupons.UsageOnDispatch {
			if err := coupons.RecordUsageInTx(ctx, tx, *o.CouponCode); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{Success: true, Message: msg, PaymentID: paymentID}, nil
}

func (d *Dispatcher) dispatchGateway(ctx context.Context, in DispatchInput) (DispatchResult, error) {
	gw, ok := d.gateways[in.Method]
	if !ok {
		return DispatchResult{}, ErrUnknownGateway
	}

	// Phase 1: mark method + create the pending payment attempt.
	var o orders.Order
	var paymentID string
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		locked, err := d.lockPayableOrder(ctx, tx, in.OrderID, in.UserID)
		if err != nil {
			return err
		}
		o = locked

		now := time.Now()
		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"payment_method": in.Method,
				"payment_status": orders.PaymentPending,
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}

		p := Payment{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			Method:    string(in.Method),
			Status:    StatusPending,
			AmountVND: o.TotalVND,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
		paymentID = p.ID
		return nil
	})
	if err != nil {
		return DispatchResult{}, err
	}

	// Phase 2: gateway call, outside the tx.
	redirect, gerr := gw.BuildPayURL(ctx, PayURLRequest{
		OrderID:     o.ID,
		OrderNumber: o.OrderNumber,
		AmountVND:   o.TotalVND,
		OrderInfo:   "Order " + o.OrderNumber,
		ReturnURL:   fmt.Sprintf("%s/payments/%s/return", d.baseURL, gw.Name()),
		IPNURL:      fmt.Sprintf("%s/payments/%s/ipn", d.baseURL, gw.Name()),
		ClientIP:    in.ClientIP,
	})
	if gerr != nil {
		// Phase 3a: roll the whole order back so stock/coupon state is not
		// corrupted by an order nobody can pay.
		d.logger.ErrorContext(ctx, "gateway dispatch failed, deleting order",
			"order_id", o.ID, "gateway", gw.Name(), "err", gerr)
		if derr := d.DiscardOrder(ctx, o.ID); derr != nil {
			d.logger.ErrorContext(ctx, "order rollback delete failed", "order_id", o.ID, "err", derr)
			return DispatchResult{}, derr
		}
		return DispatchResult{}, gerr
	}

	return DispatchResult{
		Success:     true,
		Message:     "Redirecting to " + gw.Name(),
		RedirectURL: redirect,
		PaymentID:   paymentID,
	}, nil
}

func (d *Dispatcher) lockPayableOrder(ctx context.Context, tx *gorm.DB, orderID, userID string) (orders.Order, error) {
	var o orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", orderID).Error; err != nil {
		return orders.Order{}, err
	}
	if o.UserID != userID {
		return orders.Order{}, ErrForbidden
	}
	if o.Status != orders.StatusPending || o.PaymentStatus == orders.PaymentPaid {
		return orders.Order{}, ErrOrderNotPayable
	}
	return o, nil
}

// DiscardOrder removes an order whose dispatch never completed, together
// with its items and payment attempts. Callers use it to undo a checkout
// when no payment method could be attached; discarding an already-removed
// order is a no-op.
func (d *Dispatcher) DiscardOrder(ctx context.Context, orderID string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", orderID).Delete(&Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("order_id = ?", orderID).Delete(&orders.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", orderID).Delete(&orders.Order{}).Error
	})
}
