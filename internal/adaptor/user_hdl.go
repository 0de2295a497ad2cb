package adaptor

import (
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type UserHandler struct {
	service usecase.UserService
	log     *zap.Logger
}

func NewUserHandler(service usecase.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{
		service: service,
		log:     log.With(zap.String("handler", "user")),
	}
}

// Me handles GET /api/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	account, err := h.service.GetAccountInfo(r.Context(), utils.GetUserContext(r.Context()))
	if err != nil {
		handleServiceError(w, h.log, err, "get account info")
		return
	}

	utils.ResponseSuccess(w, "Account retrieved successfully", account)
}
