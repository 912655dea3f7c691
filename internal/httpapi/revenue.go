package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"hangwa-be/internal/export"
	"hangwa-be/internal/utils"
)

// revenueReport returns the summary; ?detail=true adds the per-order rows.
func (h *Handler) revenueReport(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.Orders.Revenue(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if r.URL.Query().Get("detail") != "true" {
		report.Rows = nil
	}
	utils.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) exportRevenue(w http.ResponseWriter, r *http.Request) {
	from, to, err := dateRange(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	report, err := h.Orders.Revenue(r.Context(), from, to)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeCSVHeaders(w, fmt.Sprintf("revenue-%s.csv", time.Now().In(kst).Format("20060102")))
	if err := export.WriteRevenue(w, report); err != nil {
		writeError(w, r, err)
	}
}
