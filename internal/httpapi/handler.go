package httpapi

import (
	"net/http"

	"hangwa-be/internal/adminsetting"
	"hangwa-be/internal/dashboard"
	"hangwa-be/internal/middleware"
	"hangwa-be/internal/order"
	"hangwa-be/internal/setting"
	"hangwa-be/internal/user"

	"github.com/gorilla/mux"
)

type Deps struct {
	Orders        order.Service
	Settings      setting.Service
	AdminSettings adminsetting.Repository
	Dashboard     dashboard.Repository
	Users         user.Service

	SMSShortcut   string
	SecureCookies bool
}

type Handler struct {
	Deps
}

func NewHandler(deps Deps) *Handler {
	return &Handler{Deps: deps}
}

// Register mounts every /api route on r. Operator-only routes are wrapped with
// the role gate; authentication itself runs earlier in the middleware chain.
func (h *Handler) Register(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	public := func(path string, fn http.HandlerFunc, methods ...string) {
		api.Handle(path, fn).Methods(methods...)
	}
	operator := func(path string, fn http.HandlerFunc, methods ...string) {
		api.Handle(path, middleware.RequireOperator(fn)).Methods(methods...)
	}
	manager := func(path string, fn http.HandlerFunc, methods ...string) {
		api.Handle(path, middleware.RequireRole(user.RoleManager)(fn)).Methods(methods...)
	}

	public("/auth/login", h.login, http.MethodPost)
	manager("/auth/operators", h.registerOperator, http.MethodPost)

	// Fixed paths go before the {id} routes.
	public("/orders/quote", h.quoteOrder, http.MethodPost)
	public("/orders", h.createOrder, http.MethodPost)
	operator("/orders", h.listOrders, http.MethodGet)
	operator("/orders/trash", h.listTrash, http.MethodGet)
	operator("/orders/export/excel", h.exportOrders, http.MethodGet)
	operator("/orders/seller-shipped", h.bulkSellerShipped, http.MethodPatch)
	operator("/orders/bulk-delete", h.bulkSoftDelete, http.MethodPost)
	operator("/orders/bulk-permanent-delete", h.bulkPurge, http.MethodPost)
	operator("/orders/{id:[0-9]+}", h.getOrder, http.MethodGet)
	operator("/orders/{id:[0-9]+}", h.updateOrder, http.MethodPatch)
	operator("/orders/{id:[0-9]+}", h.softDeleteOrder, http.MethodDelete)
	operator("/orders/{id:[0-9]+}/restore", h.restoreOrder, http.MethodPost)
	operator("/orders/{id:[0-9]+}/permanent", h.purgeOrder, http.MethodDelete)
	operator("/orders/{id:[0-9]+}/payments", h.paymentHistory, http.MethodGet)
	operator("/orders/{id:[0-9]+}/sms", h.orderSMS, http.MethodGet)

	public("/settings", h.listSettings, http.MethodGet)
	public("/settings/{key}", h.getSetting, http.MethodGet)
	operator("/settings", h.upsertSetting, http.MethodPost)

	operator("/admin-settings", h.getAdminSettings, http.MethodGet)
	operator("/admin-settings", h.saveAdminSettings, http.MethodPost)

	public("/dashboard-content", h.listDashboardContent, http.MethodGet)
	operator("/dashboard-content/{key}", h.updateDashboardContent, http.MethodPatch)

	operator("/revenue", h.revenueReport, http.MethodGet)
	operator("/export/revenue", h.exportRevenue, http.MethodGet)
}
