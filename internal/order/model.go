package order

import (
	"time"

	"hangwa-be/internal/address"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/pricing"
	"hangwa-be/internal/revenue"
)

// Status is the fulfillment dimension of an order. Payment status and soft
// deletion are tracked separately on the same record.
type Status string

const (
	StatusPending       Status = "pending"
	StatusScheduled     Status = "scheduled"
	StatusSellerShipped Status = "seller_shipped"
	StatusDelivered     Status = "delivered"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusScheduled, StatusSellerShipped, StatusDelivered:
		return true
	}
	return false
}

type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	DepositorName   *string         `json:"depositorName"`
	Address         address.Address `json:"address"`
	SpecialRequests *string         `json:"specialRequests"`

	SmallBoxQuantity int `json:"smallBoxQuantity"`
	LargeBoxQuantity int `json:"largeBoxQuantity"`
	WrappingQuantity int `json:"wrappingQuantity"`

	// Snapshot pricing, written once at creation.
	SmallBoxPrice int64 `json:"smallBoxPrice"`
	LargeBoxPrice int64 `json:"largeBoxPrice"`
	WrappingPrice int64 `json:"wrappingPrice"`
	SmallBoxCost  int64 `json:"smallBoxCost"`
	LargeBoxCost  int64 `json:"largeBoxCost"`
	WrappingCost  int64 `json:"wrappingCost"`
	ShippingFee   int64 `json:"shippingFee"`
	TotalAmount   int64 `json:"totalAmount"`

	RemoteArea    bool       `json:"remoteArea"`
	Status        Status     `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`

	PaymentStatus    payment.Status `json:"paymentStatus"`
	ActualPaidAmount *int64         `json:"actualPaidAmount"`
	DiscountAmount   *int64         `json:"discountAmount"`
	UnpaidAmount     *int64         `json:"unpaidAmount"`
	NetProfit        *int64         `json:"netProfit"`
	PaymentNote      *string        `json:"paymentNote"`

	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
	DeletedAt         *time.Time `json:"deletedAt"`
	SellerShippedDate *time.Time `json:"sellerShippedDate"`
	DeliveredDate     *time.Time `json:"deliveredDate"`
}

func (o *Order) Quantities() pricing.Quantities {
	return pricing.Quantities{
		SmallBox: o.SmallBoxQuantity,
		LargeBox: o.LargeBoxQuantity,
		Wrapping: o.WrappingQuantity,
	}
}

func (o *Order) Deleted() bool { return o.DeletedAt != nil }

// RevenueInput exposes the order's own snapshot to the revenue aggregator.
func (o *Order) RevenueInput() revenue.Input {
	return revenue.Input{
		OrderID:          o.ID,
		OrderNumber:      o.OrderNumber,
		CreatedAt:        o.CreatedAt,
		SmallBoxQuantity: o.SmallBoxQuantity,
		LargeBoxQuantity: o.LargeBoxQuantity,
		WrappingQuantity: o.WrappingQuantity,
		SmallBoxCost:     o.SmallBoxCost,
		LargeBoxCost:     o.LargeBoxCost,
		WrappingCost:     o.WrappingCost,
		ShippingFee:      o.ShippingFee,
		TotalAmount:      o.TotalAmount,
		ActualPaidAmount: o.ActualPaidAmount,
		DiscountAmount:   o.DiscountAmount,
		UnpaidAmount:     o.UnpaidAmount,
	}
}

// CreateOrderInput is the storefront order form.
type CreateOrderInput struct {
	CustomerName    string             `json:"customerName"`
	CustomerPhone   string             `json:"customerPhone"`
	DepositorName   *string            `json:"depositorName"`
	Address         address.Address    `json:"address"`
	SpecialRequests *string            `json:"specialRequests"`
	Quantities      pricing.Quantities `json:"quantities"`
	ScheduledDate   *time.Time         `json:"scheduledDate"`
}

type QuoteInput struct {
	Quantities pricing.Quantities `json:"quantities"`
	Address    address.Address    `json:"address"`
}

type StatusUpdate struct {
	Status        Status     `json:"status"`
	ScheduledDate *time.Time `json:"scheduledDate"`
}

type PaymentUpdate struct {
	Status           payment.Status `json:"paymentStatus"`
	ActualPaidAmount *int64         `json:"actualPaidAmount"`
	Reason           payment.Reason `json:"reason"`
}

// Update combines a status and a payment change; either may be nil.
type Update struct {
	Status  *StatusUpdate
	Payment *PaymentUpdate
}

// statusChange is what the repository persists for a lifecycle transition.
type statusChange struct {
	Status            Status
	ScheduledDate     *time.Time
	SellerShippedDate *time.Time
	DeliveredDate     *time.Time
}

// paymentChange is what the repository persists for a payment update.
type paymentChange struct {
	Status           payment.Status
	ActualPaidAmount *int64
	DiscountAmount   *int64
	UnpaidAmount     *int64
	NetProfit        *int64
	Note             *string
}

type SortField string

const (
	SortFieldCreatedAt     SortField = "created_at"
	SortFieldTotalAmount   SortField = "total_amount"
	SortFieldCustomerName  SortField = "customer_name"
	SortFieldScheduledDate SortField = "scheduled_date"
)

type SortDirection string

const (
	SortDirectionAsc  SortDirection = "ASC"
	SortDirectionDesc SortDirection = "DESC"
)

type Sort struct {
	Field     SortField
	Direction SortDirection
}

// Filter narrows the admin order list. Status, payment status and the date
// range are independent; any combination is allowed.
type Filter struct {
	Status        *Status
	PaymentStatus *payment.Status
	DateFrom      *time.Time
	DateTo        *time.Time
	Search        *string
	RemoteOnly    bool
	Limit         *int32
	Page          *int32
}
