package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(r chi.Router, userHandler *adaptor.UserHandler, log *zap.Logger) {
	// ==================== PROTECTED ROUTES ====================
	r.With(middleware.RequireCapability(access.ViewAccount, log)).Get("/api/me", userHandler.Me)
}
