package checkout

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/catalog"
)

type StockLine struct {
	ProductID string
	Qty       int
}

// Stock policy: quantities are NOT deducted at order creation. Deduction
// happens exactly once, when the order transitions to delivered. Restoration
// happens in exactly two places: cancellation of a not-yet-delivered order
// and admin approval of a refund.

// EnsureAvailable checks a fresh stock read against the requested
// quantities. Names feed the user-facing shortage messages.
func EnsureAvailable(want map[string]int, stock map[string]int, names map[string]string) error {
	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var short []StockShortage
	for _, id := range ids {
		req := want[id]
		av, ok := stock[id]
		if !ok || av < req {
			short = append(short, StockShortage{
				ProductID:   id,
				ProductName: names[id],
				Requested:   req,
				Available:   av,
			})
		}
	}
	if len(short) > 0 {
		return &InsufficientStockError{Items: short}
	}
	return nil
}

// DeductOnDeliveryInTx runs inside the caller's transaction (no nested tx).
// Called from the delivered transition only.
func DeductOnDeliveryInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	// deterministic lock order
	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	want := make(map[string]int, len(lines))
	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		want[ln.ProductID] += q
	}

	ids := make([]string, 0, len(want))
	for id := range want {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	type productRow struct {
		ID            string `gorm:"column:id"`
		Name          string `gorm:"column:name"`
		StockQuantity int    `gorm:"column:stock_quantity"`
	}
	var rows []productRow

	// SELECT ... FOR UPDATE
	if err := tx.WithContext(ctx).
		Table("products").
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return err
	}

	avail := make(map[string]int, len(rows))
	names := make(map[string]string, len(rows))
	for _, r := range rows {
		avail[r.ID] = r.StockQuantity
		names[r.ID] = r.Name
	}
	if err := EnsureAvailable(want, avail, names); err != nil {
		return err
	}

	for _, id := range ids {
		req := want[id]
		res := tx.WithContext(ctx).
			Table("products").
			Where("id = ? AND stock_quantity >= ?", id, req).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", req))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected != 1 {
			// lost the race between the locked read and the update
			return &InsufficientStockError{Items: []StockShortage{{
				ProductID: id, ProductName: names[id], Requested: req, Available: 0,
			}}}
		}
		if err := tx.WithContext(ctx).
			Table("products").
			Where("id = ? AND stock_quantity <= 0", id).
			UpdateColumn("status", catalog.ProductOutOfStock).Error; err != nil {
			return err
		}
	}

	return nil
}

// RestoreInTx puts quantities back and clears the out_of_stock flag when the
// result is positive. Runs inside the caller's transaction.
func RestoreInTx(ctx context.Context, tx *gorm.DB, lines []StockLine) error {
	if len(lines) == 0 {
		return nil
	}

	sort.Slice(lines, func(i, j int) bool { return lines[i].ProductID < lines[j].ProductID })

	for _, ln := range lines {
		q := ln.Qty
		if q < 1 {
			q = 1
		}
		if err := tx.WithContext(ctx).
			Table("products").
			Where("id = ?", ln.ProductID).
			UpdateColumn("stock_quantity", gorm.Expr("stock_quantity + ?", q)).Error; err != nil {
			return err
		}
		if err := tx.WithContext(ctx).
			Table("products").
			Where("id = ? AND status = ? AND stock_quantity > 0", ln.ProductID, catalog.ProductOutOfStock).
			UpdateColumn("status", catalog.ProductActive).Error; err != nil {
			return err
		}
	}
	return nil
}

// WithTxRetry wraps fn in a transaction and retries on MySQL deadlock /
// lock-wait timeout.
func WithTxRetry(ctx context.Context, db *gorm.DB, attempts int, fn func(tx *gorm.DB) error) error {
	if attempts < 1 {
		attempts = 1
	}
	var lastErr error

	for i := 0; i < attempts; i++ {
		err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return fn(tx)
		})
		if err == nil {
			return nil
		}
		lastErr = err

		if isRetryableMySQLError(err) && i < attempts-1 {
			time.Sleep(time.Duration(50*(i+1)) * time.Millisecond)
			continue
		}
		return err
	}
	return lastErr
}

func isRetryableMySQLError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		// 1213: Deadlock found; 1205: Lock wait timeout
		return me.Number == 1213 || me.Number == 1205
	}
	return false
}
