package orders

// OrderStatus is the fulfillment dimension of an order. It moves through a
// closed transition table; payment status is tracked separately because the
// two are correlated but not identical (a COD order ships before it is paid).
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
	StatusCompleted  OrderStatus = "completed"
)

type PaymentStatus string

const (
	PaymentPending          PaymentStatus = "pending"
	PaymentPaid             PaymentStatus = "paid"
	PaymentCODPending       PaymentStatus = "cod_pending"
	PaymentAwaitingTransfer PaymentStatus = "awaiting_transfer"
	PaymentFailed           PaymentStatus = "failed"
	PaymentRefunded         PaymentStatus = "refunded"
)

type PaymentMethod string

const (
	MethodCOD          PaymentMethod = "cod"
	MethodBankTransfer PaymentMethod = "bank_transfer"
	MethodVNPay        PaymentMethod = "vnpay"
	MethodMoMo         PaymentMethod = "momo"
)

func (m PaymentMethod) IsGateway() bool {
	return m == MethodVNPay || m == MethodMoMo
}

// transitions is the full allow-list for seller/customer initiated status
// changes. Anything not listed here is rejected.
var transitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {},
	StatusCancelled:  {},
	StatusCompleted:  {},
}

func (s OrderStatus) Valid() bool {
	_, ok := transitions[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	next, ok := transitions[s]
	return ok && len(next) == 0
}

func (s OrderStatus) CanTransitionTo(to OrderStatus) bool {
	for _, n := range transitions[s] {
		if n == to {
			return true
		}
	}
	return false
}

// NextStatuses returns a copy of the allowed targets, for the seller UI.
func (s OrderStatus) NextStatuses() []OrderStatus {
	next := transitions[s]
	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}
