package httpapi

import (
	"net/http"

	"hangwa-be/internal/auth"
	"hangwa-be/internal/user"
	"hangwa-be/internal/utils"
)

type credentials struct {
	Username string    `json:"username"`
	Password string    `json:"password"`
	Role     user.Role `json:"role,omitempty"`
}

type loginResponse struct {
	Token string    `json:"token"`
	User  user.User `json:"user"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	token, u, err := h.Users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}

	auth.SetAccessTokenCookie(w, token, user.TokenTTL, h.SecureCookies)
	utils.WriteJSON(w, http.StatusOK, loginResponse{Token: token, User: u})
}

func (h *Handler) registerOperator(w http.ResponseWriter, r *http.Request) {
	var req credentials
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Role == "" {
		req.Role = user.RoleAdmin
	}

	u, err := h.Users.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusCreated, u)
}
