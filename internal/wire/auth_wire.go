package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAuth(r chi.Router, authHandler *adaptor.AuthHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	// register and login are for guests; the service rejects signed-in callers
	r.Post("/api/register", authHandler.Register)
	r.Post("/api/login", authHandler.Login)

	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireCapability(access.Logout, log)).Post("/api/logout", authHandler.Logout)
}
