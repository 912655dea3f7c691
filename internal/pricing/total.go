package pricing

import "hangwa-be/internal/address"

// Quantities are the line-item counts of an order.
type Quantities struct {
	SmallBox int `json:"smallBoxQuantity"`
	LargeBox int `json:"largeBoxQuantity"`
	Wrapping int `json:"wrappingQuantity"`
}

func (q Quantities) Of(p Product) int {
	switch p {
	case SmallBox:
		return q.SmallBox
	case LargeBox:
		return q.LargeBox
	case Wrapping:
		return q.Wrapping
	}
	return 0
}

func (q Quantities) Boxes() int { return q.SmallBox + q.LargeBox }

func (q Quantities) Total() int { return q.SmallBox + q.LargeBox + q.Wrapping }

// Validate enforces the order form rule: at least one box, and no more
// wrapping units than boxes since each wrapping covers one box.
func (q Quantities) Validate() error {
	if q.SmallBox < 0 || q.LargeBox < 0 || q.Wrapping < 0 {
		return ErrNegativeQuantity
	}
	if q.Boxes() < 1 {
		return ErrNoItems
	}
	if q.Wrapping > q.Boxes() {
		return ErrWrappingExceedsBoxes
	}
	return nil
}

func Subtotal(q Quantities, prices PriceTable) int64 {
	var sum int64
	for _, p := range Products {
		sum += int64(q.Of(p)) * prices.UnitPrice(p)
	}
	return sum
}

// ComputeTotal is the amount persisted as the order total.
func ComputeTotal(q Quantities, prices PriceTable, shippingFee int64) int64 {
	return Subtotal(q, prices) + shippingFee
}

type LineItem struct {
	Product   string `json:"product"`
	Label     string `json:"label"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unitPrice"`
	Total     int64  `json:"total"`
}

// Quote is the full price breakdown for a set of quantities and a delivery address.
type Quote struct {
	Lines           []LineItem `json:"lines"`
	Subtotal        int64      `json:"subtotal"`
	CountedQuantity int64      `json:"countedQuantity"`
	ShippingFee     int64      `json:"shippingFee"`
	Total           int64      `json:"totalAmount"`
	RemoteArea      bool       `json:"remoteArea"`
	Prices          PriceTable `json:"-"`
}

// NewQuote prices q against the settings snapshot. The address only feeds the
// advisory remote-area flag.
func NewQuote(q Quantities, s Snapshot, addr string) (Quote, error) {
	if err := q.Validate(); err != nil {
		return Quote{}, err
	}

	prices := NewPriceTable(s)
	policy := NewShippingPolicy(s)

	lines := make([]LineItem, 0, len(Products))
	for _, p := range Products {
		n := q.Of(p)
		if n == 0 {
			continue
		}
		lines = append(lines, LineItem{
			Product:   p.Key(),
			Label:     p.Label(),
			Quantity:  n,
			UnitPrice: prices.UnitPrice(p),
			Total:     int64(n) * prices.UnitPrice(p),
		})
	}

	subtotal := Subtotal(q, prices)
	fee := policy.Fee(q, subtotal)

	return Quote{
		Lines:           lines,
		Subtotal:        subtotal,
		CountedQuantity: policy.CountedQuantity(q),
		ShippingFee:     fee,
		Total:           ComputeTotal(q, prices, fee),
		RemoteArea:      address.IsRemoteArea(addr),
		Prices:          prices,
	}, nil
}
