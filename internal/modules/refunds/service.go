package refunds

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/checkout"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/notifications"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
)

// Service runs the refund workflow: pending -> approved | rejected, resolved
// exactly once. Approval is the only path besides cancellation that puts
// stock back.
type Service struct {
	db     *gorm.DB
	notif  *notifications.Service
	logger *slog.Logger
	now    func() time.Time
}

func NewService(db *gorm.DB, notif *notifications.Service) *Service {
	return &Service{db: db, notif: notif, logger: slog.Default(), now: time.Now}
}

func (s *Service) SetLogger(l *slog.Logger) { s.logger = l }

// Eligible is the creation gate: delivered, inside the window, pulled out so
// it can be checked without a database.
func Eligible(status orders.OrderStatus, deliveredAt *time.Time, now time.Time) error {
	if status != orders.StatusDelivered || deliveredAt == nil {
		return ErrNotDelivered
	}
	if now.Sub(*deliveredAt) > RefundWindow {
		return ErrWindowExpired
	}
	return nil
}

type CreateInput struct {
	OrderID   string
	UserID    string
	Reason    string
	AmountVND int64 // 0 means full order total
}

func (s *Service) Create(ctx context.Context, in CreateInput) (RefundRequest, error) {
	var req RefundRequest

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var o orders.Order
		if err := tx.WithContext(ctx).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&o, "id = ?", in.OrderID).Error; err != nil {
			return err
		}
		if o.UserID != in.UserID {
			return ErrNotOwner
		}
		if err := Eligible(o.Status, o.DeliveredAt, s.now()); err != nil {
			return err
		}

		// one request per order, checked before insert; the unique index on
		// order_id backs this up under concurrency
		var cnt int64
		if err := tx.WithContext(ctx).Model(&RefundRequest{}).
			Where("order_id = ?", o.ID).
			Count(&cnt).Error; err != nil {
			return err
		}
		if cnt > 0 {
			return ErrAlreadyRequested
		}

		amount := in.AmountVND
		if amount <= 0 || amount > o.TotalVND {
			amount = o.TotalVND
		}

		now := s.now()
		req = RefundRequest{
			ID:          uuid.NewString(),
			OrderID:     o.ID,
			AmountVND:   amount,
			Reason:      strings.TrimSpace(in.Reason),
			Status:      StatusPending,
			RequesterID: in.UserID,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		return tx.WithContext(ctx).Create(&req).Error
	})
	if err != nil {
		return RefundRequest{}, err
	}
	return req, nil
}

type DecisionInput struct {
	RefundID string
	AdminID  string
	Note     string // admin note on approve, rejection reason on reject
}

// Approve resolves the request and restores stock for every order item in
// the same transaction.
func (s *Service) Approve(ctx context.Context, in DecisionInput) (RefundRequest, error) {
	var req RefundRequest
	var userID string

	err := checkout.WithTxRetry(ctx, s.db, 3, func(tx *gorm.DB) error {
		r, o, err := s.lockPending(ctx, tx, in.RefundID)
		if err != nil {
			return err
		}

		now := s.now()
		updates := map[string]any{
			"status":       StatusApproved,
			"processor_id": &in.AdminID,
			"processed_at": &now,
			"updated_at":   now,
		}
		if n := strings.TrimSpace(in.Note); n != "" {
			updates["admin_note"] = &n
		}

		res := tx.WithContext(ctx).Model(&RefundRequest{}).
			Where("id = ? AND status = ?", r.ID, StatusPending).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyResolved
		}

		var items []orders.OrderItem
		if err := tx.WithContext(ctx).Find(&items, "order_id = ?", o.ID).Error; err != nil {
			return err
		}
		lines := make([]checkout.StockLine, 0, len(items))
		for _, it := range items {
			lines = append(lines, checkout.StockLine{ProductID: it.ProductID, Qty: it.Quantity})
		}
		if err := checkout.RestoreInTx(ctx, tx, lines); err != nil {
			return err
		}

		if err := tx.WithContext(ctx).Model(&orders.Order{}).
			Where("id = ?", o.ID).
			Updates(map[string]any{
				"payment_status": orders.PaymentRefunded,
				"updated_at":     now,
			}).Error; err != nil {
			return err
		}

		r.Status = StatusApproved
		req = r
		userID = o.UserID
		return nil
	})
	if err != nil {
		return RefundRequest{}, err
	}

	// best-effort, after commit
	if s.notif != nil {
		s.notif.Notify(ctx, userID, "Refund approved",
			fmt.Sprintf("Your refund of %d VND was approved.", req.AmountVND))
	}
	return req, nil
}

// Reject resolves the request with a mandatory reason. No stock side effect.
func (s *Service) Reject(ctx context.Context, in DecisionInput) (RefundRequest, error) {
	reason := strings.TrimSpace(in.Note)
	if reason == "" {
		return RefundRequest{}, ErrReasonRequired
	}

	var req RefundRequest
	var userID string

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r, o, err := s.lockPending(ctx, tx, in.RefundID)
		if err != nil {
			return err
		}

		now := s.now()
		res := tx.WithContext(ctx).Model(&RefundRequest{}).
			Where("id = ? AND status = ?", r.ID, StatusPending).
			Updates(map[string]any{
				"status":           StatusRejected,
				"processor_id":     &in.AdminID,
				"rejection_reason": &reason,
				"processed_at":     &now,
				"updated_at":       now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyResolved
		}

		r.Status = StatusRejected
		req = r
		userID = o.UserID
		return nil
	})
	if err != nil {
		return RefundRequest{}, err
	}

	if s.notif != nil {
		s.notif.Notify(ctx, userID, "Refund rejected", "Your refund request was rejected: "+reason)
	}
	return req, nil
}

func (s *Service) lockPending(ctx context.Context, tx *gorm.DB, refundID string) (RefundRequest, orders.Order, error) {
	var r RefundRequest
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&r, "id = ?", refundID).Error; err != nil {
		return RefundRequest{}, orders.Order{}, err
	}
	if r.Status != StatusPending {
		return RefundRequest{}, orders.Order{}, ErrAlreadyResolved
	}

	var o orders.Order
	if err := tx.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&o, "id = ?", r.OrderID).Error; err != nil {
		return RefundRequest{}, orders.Order{}, err
	}
	return r, o, nil
}

// ListPending is the admin queue.
func (s *Service) ListPending(ctx context.Context, limit int) ([]RefundRequest, error) {
	if limit < 1 || limit > 100 {
		limit = 50
	}
	var out []RefundRequest
	err := s.db.WithContext(ctx).
		Where("status = ?", StatusPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&out).Error
	return out, err
}
