package revenue

import "time"

// Input is the snapshot of one order needed for profit figures. Prices and costs
// are the ones copied onto the order when it was placed, never current settings.
type Input struct {
	OrderID     int64     `json:"orderId"`
	OrderNumber string    `json:"orderNumber"`
	CreatedAt   time.Time `json:"createdAt"`

	SmallBoxQuantity int `json:"smallBoxQuantity"`
	LargeBoxQuantity int `json:"largeBoxQuantity"`
	WrappingQuantity int `json:"wrappingQuantity"`

	SmallBoxCost int64 `json:"smallBoxCost"`
	LargeBoxCost int64 `json:"largeBoxCost"`
	WrappingCost int64 `json:"wrappingCost"`

	ShippingFee int64 `json:"shippingFee"`
	TotalAmount int64 `json:"totalAmount"`

	ActualPaidAmount *int64 `json:"actualPaidAmount"`
	DiscountAmount   *int64 `json:"discountAmount"`
	UnpaidAmount     *int64 `json:"unpaidAmount"`
}

// Profit is the per-order breakdown.
type Profit struct {
	ProductCost   int64 `json:"productCost"`
	Cost          int64 `json:"cost"`
	Discount      int64 `json:"discount"`
	Unpaid        int64 `json:"unpaid"`
	ActualRevenue int64 `json:"actualRevenue"`
	NetProfit     int64 `json:"netProfit"`
}

func OrderProfit(in Input) Profit {
	productCost := int64(in.SmallBoxQuantity)*in.SmallBoxCost +
		int64(in.LargeBoxQuantity)*in.LargeBoxCost +
		int64(in.WrappingQuantity)*in.WrappingCost

	p := Profit{
		ProductCost:   productCost,
		Cost:          productCost + in.ShippingFee,
		Discount:      deref(in.DiscountAmount),
		Unpaid:        deref(in.UnpaidAmount),
		ActualRevenue: in.TotalAmount,
	}
	if in.ActualPaidAmount != nil {
		p.ActualRevenue = *in.ActualPaidAmount
	}
	p.NetProfit = in.TotalAmount - productCost - in.ShippingFee - p.Discount - p.Unpaid

	return p
}

// Summary is the roll-up over a set of orders. The zero value is the empty set.
type Summary struct {
	OrderCount       int64 `json:"orderCount"`
	SmallBoxQuantity int64 `json:"smallBoxQuantity"`
	LargeBoxQuantity int64 `json:"largeBoxQuantity"`
	WrappingQuantity int64 `json:"wrappingQuantity"`
	TotalRevenue     int64 `json:"totalRevenue"`
	ActualRevenue    int64 `json:"actualRevenue"`
	TotalDiscount    int64 `json:"totalDiscount"`
	TotalUnpaid      int64 `json:"totalUnpaid"`
	TotalCost        int64 `json:"totalCost"`
	TotalShippingFee int64 `json:"totalShippingFee"`
	NetProfit        int64 `json:"netProfit"`
}

func (s *Summary) Add(in Input) {
	p := OrderProfit(in)

	s.OrderCount++
	s.SmallBoxQuantity += int64(in.SmallBoxQuantity)
	s.LargeBoxQuantity += int64(in.LargeBoxQuantity)
	s.WrappingQuantity += int64(in.WrappingQuantity)
	s.TotalRevenue += in.TotalAmount
	s.ActualRevenue += p.ActualRevenue
	s.TotalDiscount += p.Discount
	s.TotalUnpaid += p.Unpaid
	s.TotalCost += p.Cost
	s.TotalShippingFee += in.ShippingFee
	s.NetProfit += p.NetProfit
}

// Merge folds other into s. Merging is commutative and associative, so partial
// summaries (per day, per page) can be combined in any order.
func (s *Summary) Merge(other Summary) {
	s.OrderCount += other.OrderCount
	s.SmallBoxQuantity += other.SmallBoxQuantity
	s.LargeBoxQuantity += other.LargeBoxQuantity
	s.WrappingQuantity += other.WrappingQuantity
	s.TotalRevenue += other.TotalRevenue
	s.ActualRevenue += other.ActualRevenue
	s.TotalDiscount += other.TotalDiscount
	s.TotalUnpaid += other.TotalUnpaid
	s.TotalCost += other.TotalCost
	s.TotalShippingFee += other.TotalShippingFee
	s.NetProfit += other.NetProfit
}

func Aggregate(inputs []Input) Summary {
	var s Summary
	for _, in := range inputs {
		s.Add(in)
	}
	return s
}

// Row pairs an order with its profit breakdown for reports and exports.
type Row struct {
	Input
	Profit
}

// Report is a date-bounded revenue report.
type Report struct {
	From    *time.Time `json:"from,omitempty"`
	To      *time.Time `json:"to,omitempty"`
	Summary Summary    `json:"summary"`
	Rows    []Row      `json:"rows,omitempty"`
}

func BuildReport(from, to *time.Time, inputs []Input) Report {
	rows := make([]Row, 0, len(inputs))
	for _, in := range inputs {
		rows = append(rows, Row{Input: in, Profit: OrderProfit(in)})
	}
	return Report{From: from, To: to, Summary: Aggregate(inputs), Rows: rows}
}

func deref(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
