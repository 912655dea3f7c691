package payment

import "errors"

var (
	ErrInvalidAmount  = errors.New("paid amount must not be negative")
	ErrReasonRequired = errors.New("underpayment needs a reason: partial or discount")
	ErrInvalidReason  = errors.New("invalid underpayment reason")
	ErrInvalidStatus  = errors.New("invalid payment status")
)
