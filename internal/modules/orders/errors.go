package orders

import (
	"errors"
	"fmt"
)

var (
	ErrCartEmpty          = errors.New("cart selection is empty")
	ErrProductUnavailable = errors.New("product no longer exists")
	ErrAddressNotOwned    = errors.New("address does not belong to user")
	ErrNotCancellable     = errors.New("order can no longer be cancelled")
	ErrConcurrentUpdate   = errors.New("order was modified concurrently, reload and retry")
)

// InvalidTransitionError names the rejected from/to pair so the seller UI can
// show exactly what was attempted.
type InvalidTransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid order status transition: %s -> %s", e.From, e.To)
}
