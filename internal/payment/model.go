package payment

import "time"

// Status is the payment dimension of an order, independent of its shipping status.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusPartial   Status = "partial"
	StatusRefunded  Status = "refunded"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPartial, StatusRefunded:
		return true
	}
	return false
}

// RevenueBearing reports whether money has been received for the order.
func (s Status) RevenueBearing() bool {
	return s == StatusConfirmed || s == StatusPartial
}

// Reason is the operator's classification of an underpayment.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonPartial  Reason = "partial"
	ReasonDiscount Reason = "discount"
)

type Outcome string

const (
	OutcomePaidInFull Outcome = "paid_in_full"
	OutcomeDiscount   Outcome = "discount"
	OutcomePartial    Outcome = "partial_underpayment"
	OutcomeOverpaid   Outcome = "overpayment"
)

// Reconciliation is the result of comparing the expected total with what was deposited.
type Reconciliation struct {
	Total          int64   `json:"totalAmount"`
	ActualPaid     int64   `json:"actualPaidAmount"`
	Difference     int64   `json:"difference"`
	Outcome        Outcome `json:"outcome"`
	DiscountAmount int64   `json:"discountAmount"`
	UnpaidAmount   int64   `json:"unpaidAmount"`
	Overpaid       int64   `json:"overpaidAmount"`
	Status         Status  `json:"paymentStatus"`
	Note           string  `json:"note"`
}

// Record is one reconciliation kept in the payment audit log.
type Record struct {
	ID         int64
	OrderID    int64
	Status     Status
	ActualPaid *int64
	Difference int64
	Outcome    Outcome
	Note       string
	RecordedBy string
	CreatedAt  time.Time
}
