package payment

import (
	"fmt"

	"hangwa-be/internal/utils"
)

// Reconcile classifies a deposit against the order total. An underpayment is
// never inferred: the operator must say whether it was a discount or a partial payment.
// The order total itself is left untouched.
func Reconcile(total, actualPaid int64, reason Reason) (Reconciliation, error) {
	if actualPaid < 0 {
		return Reconciliation{}, ErrInvalidAmount
	}

	r := Reconciliation{
		Total:      total,
		ActualPaid: actualPaid,
		Difference: total - actualPaid,
		Status:     StatusConfirmed,
	}

	switch {
	case r.Difference == 0:
		r.Outcome = OutcomePaidInFull
		r.Note = "완납"

	case r.Difference < 0:
		r.Outcome = OutcomeOverpaid
		r.Overpaid = -r.Difference
		r.Note = fmt.Sprintf("초과 입금 %s", utils.FormatKRW(r.Overpaid))

	default:
		switch reason {
		case ReasonDiscount:
			r.Outcome = OutcomeDiscount
			r.DiscountAmount = r.Difference
			r.Note = fmt.Sprintf("할인 %s", utils.FormatKRW(r.Difference))
		case ReasonPartial:
			r.Outcome = OutcomePartial
			r.UnpaidAmount = r.Difference
			r.Status = StatusPartial
			r.Note = fmt.Sprintf("부분 입금, 미입금 %s", utils.FormatKRW(r.Difference))
		case ReasonNone:
			return Reconciliation{}, ErrReasonRequired
		default:
			return Reconciliation{}, ErrInvalidReason
		}
	}

	return r, nil
}
