package checkout

import "fmt"

type StockShortage struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

// Message distinguishes sold-out from insufficient stock: a sold-out product
// gets no remaining count, a short one shows exactly how many are left.
func (s StockShortage) Message() string {
	if s.Available <= 0 {
		return fmt.Sprintf("%s is sold out", s.ProductName)
	}
	return fmt.Sprintf("only %d of %s left (requested %d)", s.Available, s.ProductName, s.Requested)
}

type InsufficientStockError struct {
	Items []StockShortage
}

func (e *InsufficientStockError) Error() string {
	if len(e.Items) == 0 {
		return "insufficient stock"
	}
	return "insufficient stock: " + e.Items[0].Message()
}
