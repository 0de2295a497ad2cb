package middleware

import (
	"errors"
	"net/http"
	"strings"

	"movie-booking/internal/access"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// ResolveSession puts the caller on the request context. Requests without an
// Authorization header, or with an unknown or expired token, continue as guests;
// RequireAuth decides whether that is acceptable.
func ResolveSession(auth usecase.AuthService, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			scheme, token, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				utils.ResponseUnauthorized(w, "Invalid token format. Use: Bearer <token>")
				return
			}
			token = strings.TrimSpace(token)

			uc, err := auth.ResolveContext(r.Context(), token)
			if err != nil {
				if !errors.Is(err, usecase.ErrUnauthenticated) {
					logger.Error("Failed to validate session", zap.Error(err))
					utils.ResponseInternalError(w, "Internal server error")
					return
				}
				logger.Warn("Invalid or expired session", zap.String("path", r.URL.Path))
			}

			next.ServeHTTP(w, r.WithContext(utils.SetUserContext(r.Context(), uc)))
		})
	}
}

// RequireAuth rejects guests.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.GetUserContext(r.Context()).IsAuthenticated() {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireCapability rejects callers whose role lacks c.
func RequireCapability(c access.Capability, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uc := utils.GetUserContext(r.Context())
			if access.Check(uc, c) == nil {
				next.ServeHTTP(w, r)
				return
			}

			if !uc.IsAuthenticated() {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			logger.Warn("Access denied",
				zap.String("user_id", uc.UserID().String()),
				zap.String("role", string(uc.EffectiveRole())),
				zap.String("capability", string(c)),
				zap.String("path", r.URL.Path),
			)
			utils.ResponseForbidden(w, "Access denied: insufficient privileges")
		})
	}
}
