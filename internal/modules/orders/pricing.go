package orders

// VATPercent is the flat VAT applied to the item subtotal.
const VATPercent = 10

type PricedLine struct {
	ProductID    string
	ProductName  string
	SKU          string
	ImageURL     string
	Quantity     int
	UnitPriceVND int64
}

type Totals struct {
	SubtotalVND    int64
	ShippingFeeVND int64
	TaxVND         int64
	DiscountVND    int64
	TotalVND       int64
}

func Subtotal(lines []PricedLine) int64 {
	var sum int64
	for _, ln := range lines {
		sum += ln.UnitPriceVND * int64(ln.Quantity)
	}
	return sum
}

// ComputeTotals prices an order exactly once, at creation. The result is
// persisted and never recomputed. Discount is assumed already clamped to the
// subtotal by the coupon module.
func ComputeTotals(lines []PricedLine, shippingFeeVND, discountVND int64) Totals {
	sub := Subtotal(lines)
	tax := sub * VATPercent / 100
	return Totals{
		SubtotalVND:    sub,
		ShippingFeeVND: shippingFeeVND,
		TaxVND:         tax,
		DiscountVND:    discountVND,
		TotalVND:       sub + shippingFeeVND + tax - discountVND,
	}
}
