package payments

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
)

// ExpireStale cancels unpaid gateway orders older than the payment window.
// Best-effort: run from a periodic sweep, one order per transaction so a
// single bad row cannot wedge the batch. Stock is untouched here; nothing
// was ever deducted for an undelivered order.
func ExpireStale(ctx context.Context, db *gorm.DB, window time.Duration, logger *slog.Logger) int {
	cutoff := time.Now().Add(-window)

	var ids []string
	err := db.WithContext(ctx).Model(&orders.Order{}).
		Where("status = ? AND payment_status = ? AND payment_method IN ? AND created_at < ?",
			orders.StatusPending, orders.PaymentPending,
			[]orders.PaymentMethod{orders.MethodVNPay, orders.MethodMoMo}, cutoff).
		Limit(100).
		Pluck("id", &ids).Error
	if err != nil {
		logger.ErrorContext(ctx, "expire sweep query failed", "err", err)
		return 0
	}

	expired := 0
	for _, id := range ids {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			now := time.Now()
			res := tx.WithContext(ctx).Model(&orders.Order{}).
				Where("id = ? AND status = ? AND payment_status = ?",
					id, orders.StatusPending, orders.PaymentPending).
				Updates(map[string]any{
					"status":       orders.StatusCancelled,
					"cancelled_at": &now,
					"updated_at":   now,
				})
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return nil // paid or cancelled in the meantime
			}

			note := "payment window expired"
			hist := orders.OrderStatusHistory{
				ID:         uuid.NewString(),
				OrderID:    id,
				FromStatus: orders.StatusPending,
				ToStatus:   orders.StatusCancelled,
				ActorID:    "system",
				Note:       &note,
				CreatedAt:  now,
			}
			return tx.WithContext(ctx).Create(&hist).Error
		})
		if err != nil {
			logger.WarnContext(ctx, "expire sweep skipped order", "order_id", id, "err", err)
			continue
		}
		expired++
	}

	if expired > 0 {
		logger.InfoContext(ctx, "expired stale gateway orders", "count", expired)
	}
	return expired
}
