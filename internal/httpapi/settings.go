package httpapi

import (
	"net/http"

	"hangwa-be/internal/adminsetting"
	"hangwa-be/internal/setting"
	"hangwa-be/internal/utils"

	"github.com/gorilla/mux"
)

func (h *Handler) listSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, settings)
}

func (h *Handler) getSetting(w http.ResponseWriter, r *http.Request) {
	s, err := h.Settings.Get(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) upsertSetting(w http.ResponseWriter, r *http.Request) {
	var req setting.UpsertInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.Settings.Upsert(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) getAdminSettings(w http.ResponseWriter, r *http.Request) {
	s, err := h.AdminSettings.Get(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) saveAdminSettings(w http.ResponseWriter, r *http.Request) {
	var req adminsetting.AdminSettings
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	s, err := h.AdminSettings.Save(r.Context(), req)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) listDashboardContent(w http.ResponseWriter, r *http.Request) {
	items, err := h.Dashboard.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, items)
}

func (h *Handler) updateDashboardContent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	c, err := h.Dashboard.Upsert(r.Context(), mux.Vars(r)["key"], req.Content)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, c)
}
