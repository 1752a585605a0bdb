package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/checkout"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/coupons"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/payments"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/refunds"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/shipping"
	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/shared/apperr"
)

// mapErr translates module sentinels into the shared error kinds so the
// error-handler middleware can pick the HTTP status.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if _, ok := apperr.As(err); ok {
		return err
	}

	var short *checkout.InsufficientStockError
	if errors.As(err, &short) {
		msg := "Some items are no longer available."
		if len(short.Items) > 0 {
			msg = short.Items[0].Message()
		}
		return apperr.ConflictErr(msg)
	}

	var bad *orders.InvalidTransitionError
	if errors.As(err, &bad) {
		return apperr.ConflictErr(bad.Error())
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperr.NotFoundErr("Not found.")

	case errors.Is(err, orders.ErrCartEmpty):
		return apperr.InvalidErr("No items selected for checkout.", nil)
	case errors.Is(err, orders.ErrProductUnavailable):
		return apperr.InvalidErr("A selected product is no longer available.", nil)
	case errors.Is(err, orders.ErrAddressNotOwned):
		return apperr.InvalidErr("Shipping address not found.", nil)
	case errors.Is(err, orders.ErrNotCancellable):
		return apperr.ConflictErr("This order can no longer be cancelled.")
	case errors.Is(err, orders.ErrConcurrentUpdate):
		return apperr.ConflictErr("The order changed while you were editing. Please retry.")

	case errors.Is(err, shipping.ErrUnknownMethod):
		return apperr.InvalidErr("Unknown shipping method.", nil)

	case errors.Is(err, coupons.ErrNotFound):
		return apperr.InvalidErr("Coupon code not found.", nil)
	case errors.Is(err, coupons.ErrExpired):
		return apperr.InvalidErr("Coupon has expired.", nil)
	case errors.Is(err, coupons.ErrUsageExceeded):
		return apperr.InvalidErr("Coupon usage limit reached.", nil)
	case errors.Is(err, coupons.ErrMinOrder):
		return apperr.InvalidErr("Order total is below the coupon minimum.", nil)

	case errors.Is(err, payments.ErrUnknownMethod):
		return apperr.InvalidErr("Unknown payment method.", nil)
	case errors.Is(err, payments.ErrUnknownGateway):
		return apperr.NotFoundErr("Unknown payment gateway.")
	case errors.Is(err, payments.ErrOrderNotPayable):
		return apperr.ConflictErr("This order is not payable.")
	case errors.Is(err, payments.ErrForbidden):
		return apperr.NotFoundErr("Not found.")
	case errors.Is(err, payments.ErrAmountMismatch):
		return apperr.InvalidErr("Payment amount does not match the order.", nil)
	case errors.Is(err, payments.ErrProofNotAllowed):
		return apperr.ConflictErr("Transfer receipts are only accepted for bank-transfer orders awaiting payment.")

	case errors.Is(err, refunds.ErrNotDelivered):
		return apperr.InvalidErr("Only delivered orders can be refunded.", nil)
	case errors.Is(err, refunds.ErrWindowExpired):
		return apperr.InvalidErr("The refund window for this order has closed.", nil)
	case errors.Is(err, refunds.ErrAlreadyRequested):
		return apperr.ConflictErr("A refund request already exists for this order.")
	case errors.Is(err, refunds.ErrAlreadyResolved):
		return apperr.ConflictErr("This refund request was already resolved.")
	case errors.Is(err, refunds.ErrReasonRequired):
		return apperr.InvalidErr("A rejection reason is required.", nil)
	case errors.Is(err, refunds.ErrNotOwner):
		return apperr.NotFoundErr("Not found.")
	}

	return apperr.Wrap(err)
}

func queryInt(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
