package order

import "errors"

var (
	ErrOrderNotFound         = errors.New("order not found")
	ErrNotInTrash            = errors.New("order is not in trash")
	ErrCustomerNameRequired  = errors.New("customer name is required")
	ErrInvalidPhone          = errors.New("invalid phone number")
	ErrInvalidStatus         = errors.New("invalid order status")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrForbiddenTransition   = errors.New("only a manager can mark an order delivered")
	ErrScheduledDateRequired = errors.New("scheduled date is required")
	ErrScheduledDateInPast   = errors.New("scheduled date is in the past")
	ErrConfirmationRequired  = errors.New("permanent deletion must be confirmed")
	ErrEmptyBatch            = errors.New("no order ids given")
	ErrNothingToUpdate       = errors.New("nothing to update")
)
