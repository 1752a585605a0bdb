package payments

import "errors"

var (
	ErrUnknownMethod   = errors.New("unknown payment method")
	ErrUnknownGateway  = errors.New("unknown payment gateway")
	ErrOrderNotPayable = errors.New("order not payable")
	ErrForbidden       = errors.New("forbidden")
	ErrAmountMismatch  = errors.New("callback amount does not match order total")
	ErrProofNotAllowed = errors.New("order is not awaiting a bank transfer")
)
