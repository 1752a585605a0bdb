package shipping

import "errors"

// Methods and fee tiers (VND). Standard and express are waived above the
// free-shipping threshold; super express keeps its own staged discounts.
const (
	MethodStandard     = "standard"
	MethodExpress      = "express"
	MethodSuperExpress = "super_express"

	standardFee     int64 = 30_000
	expressFee      int64 = 50_000
	superExpressFee int64 = 100_000

	FreeShippingThreshold int64 = 500_000

	superExpressTier1Subtotal int64 = 1_000_000
	superExpressTier1Fee      int64 = 50_000
	superExpressTier2Subtotal int64 = 2_000_000
	superExpressTier2Fee      int64 = 20_000
)

var ErrUnknownMethod = errors.New("unknown shipping method")

func Quote(method string, subtotalVND int64) (int64, error) {
	switch method {
	case MethodStandard, "":
		if subtotalVND >= FreeShippingThreshold {
			return 0, nil
		}
		return standardFee, nil
	case MethodExpress:
		if subtotalVND >= FreeShippingThreshold {
			return 0, nil
		}
		return expressFee, nil
	case MethodSuperExpress:
		switch {
		case subtotalVND >= superExpressTier2Subtotal:
			return superExpressTier2Fee, nil
		case subtotalVND >= superExpressTier1Subtotal:
			return superExpressTier1Fee, nil
		default:
			return superExpressFee, nil
		}
	default:
		return 0, ErrUnknownMethod
	}
}
