package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	id "orgnet/pkg/domain"
	"orgnet/pkg/requestcontext"
)

// TokenValidator validates a bearer token and returns the caller identity it
// carries. The token is the host environment's authenticated principal; the
// registries trust it as-is.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is the caller identity extracted from a validated token.
type Claims struct {
	Principal id.Principal
	Roles     id.Roles
}

// RequireAuth rejects requests without a valid bearer token and stores the
// caller principal and roles in the context for handlers and services.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				writeUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx = requestcontext.WithPrincipal(ctx, claims.Principal, claims.Roles)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeUnauthorized(w http.ResponseWriter, description string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"` + description + `"}`))
}
