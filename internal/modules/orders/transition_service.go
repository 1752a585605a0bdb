package orders

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/checkout"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/notifications"
)

// TransitionService applies the status allow-list to seller and customer
// initiated order updates. Delivery deducts stock, cancellation restores it;
// those are the only two stock call sites reachable from here.
type TransitionService struct {
	db      *gorm.DB
	notif   *notifications.Service
	coupons *coupons.Service
	logger  *slog.Logger
}

func NewTransitionService(db *gorm.DB, notif *notifications.Service, cps *coupons.Service) *TransitionService {
	return &TransitionService{db: db, notif: notif, coupons: cps, logger: slog.Default()}
}

func (s *TransitionService) SetLogger(l *slog.Logger) { s.logger = l }

type TransitionInput struct {
	OrderID        string
	ActorID        string
	To             OrderStatus
	Note           string
	TrackingNumber string
}

type TransitionResult struct {
	OrderID string
	From    OrderStatus
	To      OrderStatus
	At      time.Time
	Next    []OrderStatus
}

func (s *TransitionService) Transition(ctx context.Context, in TransitionInput) (TransitionResult, error) {
	if in.OrderID == "" || in.ActorID == "" {
		return TransitionResult{}, &InvalidTransitionError{To: in.To}
	}

	var result TransitionResult
	var notifyUserID string

	err := checkout.WithTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		var o Order
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			return err
		}

		from := o.Status
		if !in.To.Valid() || !from.CanTransitionTo(in.To) {
			return &InvalidTransitionError{From: from, To: in.To}
		}

		now := time.Now()
		updates := map[string]any{
			"status":     in.To,
			"updated_at": now,
		}

		switch in.To {
		case StatusProcessing:
			// seller confirmation is recorded once, on first entry
			if !o.SellerConfirmed {
				updates["seller_confirmed"] = true
				updates["seller_confirmed_at"] = &now
			}
		case StatusShipped:
			updates["shipped_at"] = &now
			if in.TrackingNumber != "" {
				tn := in.TrackingNumber
				updates["tracking_number"] = &tn
			}
		case StatusDelivered:
			updates["delivered_at"] = &now
			lines, err := stockLines(ctx, tx, o.ID)
			if err != nil {
				return err
			}
			if err := checkout.DeductOnDeliveryInTx(ctx, tx, lines); err != nil {
				return err
			}
		case StatusCancelled:
			updates["cancelled_at"] = &now
			lines, err := stockLines(ctx, tx, o.ID)
			if err != nil {
				return err
			}
			if err := checkout.RestoreInTx(ctx, tx, lines); err != nil {
				return err
			}
		}

		// COD collects on the doorstep: moving forward implies the courier
		// will (or did) take the money.
		if o.PaymentMethod == MethodCOD && o.PaymentStatus == PaymentCODPending {
			switch in.To {
			case StatusProcessing, StatusShipped, StatusDelivered:
				updates["payment_status"] = PaymentPaid
				updates["paid_at"] = &now
				// the consistent-usage hook counts the coupon here, at the
				// point COD actually reaches paid
				if o.CouponCode != nil && s.coupons != nil && s.coupons.Policy == coupons.UsageOnPaymentConfirmed {
					if err := coupons.RecordUsageInTx(ctx, tx, *o.CouponCode); err != nil {
						return err
					}
				}
			}
		}

		res := tx.WithContext(ctx).
			Model(&Order{}).
			Where("id = ? AND status = ?", o.ID, from). // optimistic guard
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrConcurrentUpdate
		}

		var notePtr *string
		if n := in.Note; n != "" {
			notePtr = &n
		}
		hist := OrderStatusHistory{
			ID:         uuid.NewString(),
			OrderID:    o.ID,
			FromStatus: from,
			ToStatus:   in.To,
			ActorID:    in.ActorID,
			Note:       notePtr,
			CreatedAt:  now,
		}
		if err := tx.WithContext(ctx).Create(&hist).Error; err != nil {
			return err
		}

		notifyUserID = o.UserID
		result = TransitionResult{
			OrderID: o.ID,
			From:    from,
			To:      in.To,
			At:      now,
			Next:    in.To.NextStatuses(),
		}
		return nil
	})
	if err != nil {
		return TransitionResult{}, err
	}

	// best-effort, after commit
	if s.notif != nil {
		s.notif.Notify(ctx, notifyUserID,
			"Order update",
			fmt.Sprintf("Your order is now %s.", result.To))
	}

	return result, nil
}

// CustomerCancel cancels the customer's own not-yet-delivered order. The
// transition table decides what "not yet delivered" means.
func (s *TransitionService) CustomerCancel(ctx context.Context, orderID, userID, reason string) (TransitionResult, error) {
	var o Order
	if err := s.db.WithContext(ctx).First(&o, "id = ?", orderID).Error; err != nil {
		return TransitionResult{}, err
	}
	if o.UserID != userID {
		return TransitionResult{}, ErrNotCancellable
	}
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return TransitionResult{}, ErrNotCancellable
	}

	return s.Transition(ctx, TransitionInput{
		OrderID: orderID,
		ActorID: userID,
		To:      StatusCancelled,
		Note:    reason,
	})
}

func stockLines(ctx context.Context, tx *gorm.DB, orderID string) ([]checkout.StockLine, error) {
	var items []OrderItem
	if err := tx.WithContext(ctx).Find(&items, "order_id = ?", orderID).Error; err != nil {
		return nil, err
	}
	lines := make([]checkout.StockLine, 0, len(items))
	for _, it := range items {
		lines = append(lines, checkout.StockLine{ProductID: it.ProductID, Qty: it.Quantity})
	}
	return lines, nil
}
