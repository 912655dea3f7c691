package httpapi

import (
	"errors"
	"net/http"

	"hangwa-be/internal/address"
	"hangwa-be/internal/dashboard"
	"hangwa-be/internal/logger"
	"hangwa-be/internal/order"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/pricing"
	"hangwa-be/internal/setting"
	"hangwa-be/internal/sms"
	"hangwa-be/internal/user"
	"hangwa-be/internal/utils"

	"go.uber.org/zap"
)

var errBadRequest = errors.New("malformed request")

var statusByError = []struct {
	err  error
	code int
}{
	{order.ErrOrderNotFound, http.StatusNotFound},
	{setting.ErrSettingNotFound, http.StatusNotFound},

	{order.ErrForbiddenTransition, http.StatusForbidden},
	{user.ErrInvalidCredentials, http.StatusUnauthorized},

	{order.ErrNotInTrash, http.StatusConflict},
	{user.ErrUsernameTaken, http.StatusConflict},

	{errBadRequest, http.StatusBadRequest},
	{order.ErrCustomerNameRequired, http.StatusBadRequest},
	{order.ErrInvalidPhone, http.StatusBadRequest},
	{order.ErrInvalidStatus, http.StatusBadRequest},
	{order.ErrInvalidTransition, http.StatusBadRequest},
	{order.ErrScheduledDateRequired, http.StatusBadRequest},
	{order.ErrScheduledDateInPast, http.StatusBadRequest},
	{order.ErrConfirmationRequired, http.StatusBadRequest},
	{order.ErrEmptyBatch, http.StatusBadRequest},
	{order.ErrNothingToUpdate, http.StatusBadRequest},
	{pricing.ErrNegativeQuantity, http.StatusBadRequest},
	{pricing.ErrNoItems, http.StatusBadRequest},
	{pricing.ErrWrappingExceedsBoxes, http.StatusBadRequest},
	{address.ErrZipRequired, http.StatusBadRequest},
	{address.ErrLine1Required, http.StatusBadRequest},
	{payment.ErrInvalidAmount, http.StatusBadRequest},
	{payment.ErrReasonRequired, http.StatusBadRequest},
	{payment.ErrInvalidReason, http.StatusBadRequest},
	{payment.ErrInvalidStatus, http.StatusBadRequest},
	{setting.ErrKeyRequired, http.StatusBadRequest},
	{dashboard.ErrKeyRequired, http.StatusBadRequest},
	{sms.ErrUnknownTemplate, http.StatusBadRequest},
	{sms.ErrPhoneRequired, http.StatusBadRequest},
	{user.ErrWeakPassword, http.StatusBadRequest},
	{user.ErrInvalidRole, http.StatusBadRequest},
}

func statusFor(err error) int {
	for _, e := range statusByError {
		if errors.Is(err, e.err) {
			return e.code
		}
	}
	return http.StatusInternalServerError
}

// writeError maps domain errors to status codes. Unexpected errors are logged
// and hidden from the client.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		logger.FromCtx(r.Context()).Error("request failed",
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "internal server error", code)
		return
	}
	utils.WriteJSONError(w, err.Error(), code)
}
