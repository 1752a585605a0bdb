package refunds

import "errors"

var (
	ErrNotDelivered     = errors.New("only delivered orders can be refunded")
	ErrWindowExpired    = errors.New("refund window expired")
	ErrAlreadyRequested = errors.New("a refund request already exists for this order")
	ErrAlreadyResolved  = errors.New("refund request already resolved")
	ErrReasonRequired   = errors.New("rejection reason is required")
	ErrNotOwner         = errors.New("order does not belong to user")
)
