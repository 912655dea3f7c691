package pricing

type ShippingMode string

const (
	ShippingByQuantity ShippingMode = "quantity"
	ShippingByAmount   ShippingMode = "amount"
)

const (
	KeyShippingFee           = "shipping_fee"
	KeyFreeShippingThreshold = "free_shipping_threshold"
	KeyFreeShippingType      = "free_shipping_type"
	KeyFreeShippingMinAmount = "free_shipping_min_amount"

	defaultShippingFee = 4000
	defaultThreshold   = 6
)

// ShippingPolicy decides the shipping fee charged for an order.
type ShippingPolicy struct {
	Mode      ShippingMode
	Threshold int64
	BaseFee   int64
	MinAmount int64
	// Excluded products do not count toward the free-shipping quantity.
	Excluded map[Product]bool
}

func ExcludeKey(p Product) string {
	return p.Key() + "_exclude_from_shipping"
}

func NewShippingPolicy(s Snapshot) ShippingPolicy {
	mode := ShippingMode(s.String(KeyFreeShippingType, string(ShippingByQuantity)))
	if mode != ShippingByAmount {
		mode = ShippingByQuantity
	}

	excluded := make(map[Product]bool, len(Products))
	for _, p := range Products {
		excluded[p] = s.Bool(ExcludeKey(p), p == Wrapping)
	}

	return ShippingPolicy{
		Mode:      mode,
		Threshold: s.Int(KeyFreeShippingThreshold, defaultThreshold),
		BaseFee:   s.Int(KeyShippingFee, defaultShippingFee),
		MinAmount: s.Int(KeyFreeShippingMinAmount, 0),
		Excluded:  excluded,
	}
}

// CountedQuantity is the quantity compared against the free-shipping threshold.
func (p ShippingPolicy) CountedQuantity(q Quantities) int64 {
	var n int64
	for _, prod := range Products {
		if p.Excluded[prod] {
			continue
		}
		n += int64(q.Of(prod))
	}
	return n
}

// Fee returns the shipping fee for q given the pre-shipping product subtotal.
func (p ShippingPolicy) Fee(q Quantities, subtotal int64) int64 {
	if q.Total() == 0 || p.CountedQuantity(q) == 0 {
		return 0
	}

	switch p.Mode {
	case ShippingByAmount:
		if p.MinAmount > 0 && subtotal >= p.MinAmount {
			return 0
		}
		return p.BaseFee
	default:
		if p.CountedQuantity(q) >= p.Threshold {
			return 0
		}
		return p.BaseFee
	}
}
