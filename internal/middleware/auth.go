package middleware

import (
	"net/http"

	"hangwa-be/internal/auth"
	"hangwa-be/internal/logger"
	"hangwa-be/internal/user"
	"hangwa-be/internal/utils"

	"go.uber.org/zap"
)

type TokenParser interface {
	Parse(token string) (*user.CustomClaims, error)
}

// Authenticate attaches the operator to the request context when a valid token
// is present. Requests without one, including stale cookies left in a
// customer's browser, continue as anonymous and RequireRole decides.
func Authenticate(tokens TokenParser) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := auth.ExtractAccessToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := tokens.Parse(tokenStr)
			if err != nil {
				logger.FromCtx(r.Context()).Debug("ignoring access token", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			ctx := utils.SetUserContext(r.Context(), claims.UserID, claims.Username, string(claims.Role))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only authenticated operators holding one of roles.
func RequireRole(roles ...user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := utils.GetUserIDFromContext(r.Context()); !ok {
				utils.WriteJSONError(w, "authentication required", http.StatusUnauthorized)
				return
			}

			role := user.Role(utils.GetUserRoleFromContext(r.Context()))
			for _, allowed := range roles {
				if role == allowed {
					next.ServeHTTP(w, r)
					return
				}
			}

			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
		})
	}
}

// RequireOperator admits both back-office roles.
func RequireOperator(next http.Handler) http.Handler {
	return RequireRole(user.RoleAdmin, user.RoleManager)(next)
}
