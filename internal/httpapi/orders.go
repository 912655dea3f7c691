package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"hangwa-be/internal/address"
	"hangwa-be/internal/export"
	"hangwa-be/internal/order"
	"hangwa-be/internal/payment"
	"hangwa-be/internal/pricing"
	"hangwa-be/internal/sms"
	"hangwa-be/internal/user"
	"hangwa-be/internal/utils"
)

type createOrderRequest struct {
	CustomerName    string          `json:"customerName"`
	CustomerPhone   string          `json:"customerPhone"`
	DepositorName   *string         `json:"depositorName"`
	Address         address.Address `json:"address"`
	SpecialRequests *string         `json:"specialRequests"`
	ScheduledDate   string          `json:"scheduledDate"`
	pricing.Quantities
}

type quoteRequest struct {
	Address address.Address `json:"address"`
	pricing.Quantities
}

// updateOrderRequest carries a status change, a payment change, or both.
type updateOrderRequest struct {
	Status           *order.Status   `json:"status"`
	ScheduledDate    string          `json:"scheduledDate"`
	PaymentStatus    *payment.Status `json:"paymentStatus"`
	ActualPaidAmount *int64          `json:"actualPaidAmount"`
	Reason           payment.Reason  `json:"reason"`
}

type idsRequest struct {
	IDs     []int64 `json:"ids"`
	Confirm bool    `json:"confirm"`
}

type updateOrderResponse struct {
	*order.Order
	Reconciliation *payment.Reconciliation `json:"reconciliation,omitempty"`
}

func (h *Handler) quoteOrder(w http.ResponseWriter, r *http.Request) {
	var req quoteRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	q, err := h.Orders.Quote(r.Context(), order.QuoteInput{Quantities: req.Quantities, Address: req.Address})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, q)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	scheduled, err := parseDate(req.ScheduledDate)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Create(r.Context(), order.CreateOrderInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		DepositorName:   req.DepositorName,
		Address:         req.Address,
		SpecialRequests: req.SpecialRequests,
		Quantities:      req.Quantities,
		ScheduledDate:   scheduled,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, o)
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	filter, sort, err := orderQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	orders, err := h.Orders.List(r.Context(), filter, sort)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) listTrash(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListTrash(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, orders)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req updateOrderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Status == nil && req.PaymentStatus == nil {
		writeError(w, r, order.ErrNothingToUpdate)
		return
	}

	var upd order.Update
	if req.Status != nil {
		scheduled, err := parseDate(req.ScheduledDate)
		if err != nil {
			writeError(w, r, err)
			return
		}
		upd.Status = &order.StatusUpdate{Status: *req.Status, ScheduledDate: scheduled}
	}
	if req.PaymentStatus != nil {
		upd.Payment = &order.PaymentUpdate{
			Status:           *req.PaymentStatus,
			ActualPaidAmount: req.ActualPaidAmount,
			Reason:           req.Reason,
		}
	}

	// Both halves are validated before either is written.
	ctx := r.Context()
	role := user.Role(utils.GetUserRoleFromContext(ctx))
	o, rec, err := h.Orders.Update(ctx, id, upd, role)
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := updateOrderResponse{Order: o, Reconciliation: rec}
	utils.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) softDeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Orders.SoftDelete(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) restoreOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := h.Orders.Restore(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) purgeOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.Orders.Purge(r.Context(), id, confirmed); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) paymentHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	records, err := h.Orders.PaymentHistory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, records)
}

func (h *Handler) bulkSellerShipped(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	role := user.Role(utils.GetUserRoleFromContext(r.Context()))
	res, err := h.Orders.BulkMarkSellerShipped(r.Context(), req.IDs, role)
	writeBatch(w, r, res, err)
}

func (h *Handler) bulkSoftDelete(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Orders.BulkSoftDelete(r.Context(), req.IDs)
	writeBatch(w, r, res, err)
}

func (h *Handler) bulkPurge(w http.ResponseWriter, r *http.Request) {
	var req idsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	res, err := h.Orders.BulkPurge(r.Context(), req.IDs, req.Confirm)
	writeBatch(w, r, res, err)
}

type batchResponse struct {
	Succeeded int                `json:"succeeded"`
	Failed    int                `json:"failed"`
	Items     []order.ItemResult `json:"items"`
}

func writeBatch(w http.ResponseWriter, r *http.Request, res order.BatchResult, err error) {
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, batchResponse{
		Succeeded: res.Succeeded(),
		Failed:    res.Failed(),
		Items:     res.Items,
	})
}

func (h *Handler) exportOrders(w http.ResponseWriter, r *http.Request) {
	var (
		orders []*order.Order
		err    error
	)

	if raw := r.URL.Query().Get("ids"); raw != "" {
		ids, perr := parseIDList(raw)
		if perr != nil {
			writeError(w, r, perr)
			return
		}
		orders, err = h.Orders.ListByIDs(r.Context(), ids)
	} else {
		filter, sort, ferr := orderQuery(r)
		if ferr != nil {
			writeError(w, r, ferr)
			return
		}
		orders, err = h.Orders.List(r.Context(), filter, sort)
	}
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCSVHeaders(w, fmt.Sprintf("orders-%s.csv", time.Now().In(kst).Format("20060102")))
	if err := export.WriteOrders(w, orders); err != nil {
		writeError(w, r, err)
	}
}

func (h *Handler) orderSMS(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	o, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	admin, err := h.AdminSettings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}

	kind := sms.Kind(strings.TrimSpace(r.URL.Query().Get("kind")))
	if kind == "" {
		kind = sms.KindOrderReceived
	}

	msg, err := sms.Build(kind, sms.Order{
		OrderNumber:      o.OrderNumber,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Address:          o.Address.Full(),
		Quantities:       o.Quantities(),
		TotalAmount:      o.TotalAmount,
		ActualPaidAmount: o.ActualPaidAmount,
		ScheduledDate:    o.ScheduledDate,
	}, sms.Sender{
		BusinessName: admin.BusinessName,
		BankLine:     admin.BankLine(),
	}, h.SMSShortcut)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, msg)
}

func writeCSVHeaders(w http.ResponseWriter, filename string) {
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
}
