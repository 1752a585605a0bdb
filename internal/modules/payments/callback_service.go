package payments

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/url"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/cart"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
)

// CallbackService applies gateway return redirects and IPN notifications.
// Both paths are idempotent: a duplicate "success" for an already-paid order
// is a no-op, so retried or out-of-order deliveries cannot double-settle.
type CallbackService struct {
	db       *gorm.DB
	gateways map[orders.PaymentMethod]Gateway
	coupons  *coupons.Service
	logger   *slog.Logger
}

func NewCallbackService(db *gorm.DB, gws map[orders.PaymentMethod]Gateway, cps *coupons.Service) *CallbackService {
	return &CallbackService{db: db, gateways: gws, coupons: cps, logger: slog.Default()}
}

func (s *CallbackService) SetLogger(l *slog.Logger) { s.logger = l }

type ReturnResult struct {
	OrderID string
	Paid    bool
	Message string
}

func (s *CallbackService) gatewayByName(name string) (Gateway, error) {
	for _, gw := range s.gateways {
		if gw.Name() == name {
			return gw, nil
		}
	}
	return nil, ErrUnknownGateway
}

// HandleReturn processes the browser redirect back from the gateway.
func (s *CallbackService) HandleReturn(ctx context.Context, gatewayName string, params url.Values) (ReturnResult, error) {
	gw, err := s.gatewayByName(gatewayName)
	if err != nil {
		return ReturnResult{}, err
	}
	cb, err := gw.ParseCallback(params)
	if err != nil {
		return ReturnResult{}, err
	}

	if !cb.Success {
		// leave the order pending for a manual retry
		if err := s.markAttemptFailed(ctx, gw.Name(), cb); err != nil {
			s.logger.WarnContext(ctx, "failed to mark payment attempt failed",
				"order_id", cb.OrderID, "gateway", gw.Name(), "err", err)
		}
		return ReturnResult{OrderID: cb.OrderID, Paid: false, Message: "Payment was not completed. You can try again."}, nil
	}

	if err := s.applySuccess(ctx, gw.Name(), cb); err != nil {
		return ReturnResult{}, err
	}
	return ReturnResult{OrderID: cb.OrderID, Paid: true, Message: "Payment received. Thank you!"}, nil
}

// HandleIPN processes the asynchronous server-to-server notification. The
// HTTP handler acknowledges the gateway regardless of the outcome here, so
// the event row must commit before the order mutation runs: a failed apply
// rolls back only its own transaction, and the stored event keeps the
// failure note for later inspection.
func (s *CallbackService) HandleIPN(ctx context.Context, gatewayName string, params url.Values) error {
	gw, err := s.gatewayByName(gatewayName)
	if err != nil {
		return err
	}
	cb, err := gw.ParseCallback(params)
	if err != nil {
		return err
	}

	payload, _ := json.Marshal(params)

	ev := GatewayEvent{
		ID:          uuid.NewString(),
		Gateway:     gw.Name(),
		EventID:     cb.EventID,
		PayloadJSON: datatypes.JSON(payload),
		ReceivedAt:  time.Now(),
	}
	if err := s.db.WithContext(ctx).Create(&ev).Error; err != nil {
		if isDup(err) {
			s.logger.InfoContext(ctx, "gateway event deduplicated",
				"gateway", gw.Name(), "event_id", cb.EventID)
			return nil
		}
		return err
	}

	var applyErr error
	if cb.Success {
		applyErr = s.applySuccess(ctx, gw.Name(), cb)
	} else {
		applyErr = s.markAttemptFailed(ctx, gw.Name(), cb)
	}
	if applyErr != nil {
		s.logger.ErrorContext(ctx, "gateway event apply failed",
			"gateway", gw.Name(), "event_id", cb.EventID, "err", applyErr)
	}

	if err := s.db.WithContext(ctx).Model(&GatewayEvent{}).
		Where("id = ?", ev.ID).
		Updates(eventOutcome(applyErr, time.Now())).Error; err != nil {
		return err
	}
	return applyErr
}

// eventOutcome is the column update stamping a stored event with its apply
// result. A failed apply keeps processed_at NULL so the row shows up when
// scanning for notifications that never settled an order.
func eventOutcome(applyErr error, now time.Time) map[string]any {
	if applyErr != nil {
		return map[string]any{"process_error": truncate(applyErr.Error(), 250)}
	}
	return map[string]any{"processed_at": &now, "process_error": nil}
}

func (s *CallbackService) applySuccess(ctx context.Context, gatewayName string, cb CallbackData) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.applySuccessInTx(ctx, tx, gatewayName, cb)
	})
}

func (s *CallbackService) applySuccessInTx(ctx context.Context, tx *gorm.DB, gatewayName string, cb CallbackData) error {
	var o orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", cb.OrderID).Error; err != nil {
		return err
	}

	// idempotent: duplicate success for a paid order changes nothing
	if o.PaymentStatus == orders.PaymentPaid {
		return nil
	}

	if cb.AmountVND != o.TotalVND {
		return ErrAmountMismatch
	}

	now := time.Now()
	raw, _ := json.Marshal(cb.Raw)

	var p Payment
	err := tx.WithContext(ctx).
		Order("created_at DESC").
		First(&p, "order_id = ? AND method = ? AND status = ?", o.ID, gatewayName, StatusPending).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// attempt row got lost somewhere; settle with a fresh one
		p = Payment{
			ID:        uuid.NewString(),
			OrderID:   o.ID,
			Method:    gatewayName,
			Status:    StatusPending,
			AmountVND: o.TotalVND,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.WithContext(ctx).Create(&p).Error; err != nil {
			return err
		}
	}

	txnID := cb.TxnID
	if err := tx.WithContext(ctx).Model(&Payment{}).
		Where("id = ?", p.ID).
		Updates(map[string]any{
			"status":           StatusCompleted,
			"txn_id":           &txnID,
			"gateway_response": datatypes.JSON(raw),
			"processed_at":     &now,
			"updated_at":       now,
		}).Error; err != nil {
		return err
	}

	if err := tx.WithContext(ctx).Model(&orders.Order{}).
		Where("id = ? AND payment_status <> ?", o.ID, orders.PaymentPaid).
		Updates(map[string]any{
			"payment_status": orders.PaymentPaid,
			"paid_at":        &now,
			"updated_at":     now,
		}).Error; err != nil {
		return err
	}

	// gateway orders clear their cart only now, on confirmation
	if err := cart.RemoveItemsInTx(ctx, tx, o.UserID, o.SelectedCartItemIDs()); err != nil {
		return err
	}

	if o.CouponCode != nil && s.coupons.Policy == coupons.UsageOnPaymentConfirmed {
		if err := coupons.RecordUsageInTx(ctx, tx, *o.CouponCode); err != nil {
			return err
		}
	}
	return nil
}

func (s *CallbackService) markAttemptFailed(ctx context.Context, gatewayName string, cb CallbackData) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.markAttemptFailedInTx(ctx, tx, gatewayName, cb)
	})
}

func (s *CallbackService) markAttemptFailedInTx(ctx context.Context, tx *gorm.DB, gatewayName string, cb CallbackData) error {
	var o orders.Order
	if err := tx.WithContext(ctx).First(&o, "id = ?", cb.OrderID).Error; err != nil {
		return err
	}
	// a late failure for an already-paid order is noise
	if o.PaymentStatus == orders.PaymentPaid {
		return nil
	}

	now := time.Now()
	raw, _ := json.Marshal(cb.Raw)
	return tx.WithContext(ctx).Model(&Payment{}).
		Where("order_id = ? AND method = ? AND status = ?", o.ID, gatewayName, StatusPending).
		Updates(map[string]any{
			"status":           StatusFailed,
			"gateway_response": datatypes.JSON(raw),
			"updated_at":       now,
		}).Error
}

func isDup(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	return s[:n]
}
