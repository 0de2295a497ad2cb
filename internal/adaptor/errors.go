package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"

	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

// handleServiceError maps usecase errors onto HTTP responses.
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var verr *usecase.ValidationError

	switch {
	case errors.As(err, &verr):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", verr.Fields)

	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials")
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, usecase.ErrUnauthenticated):
		utils.ResponseUnauthorized(w, "Authentication required")

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, "Access denied: insufficient privileges")

	case errors.Is(err, usecase.ErrSeatUnavailable),
		errors.Is(err, usecase.ErrConflict):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, err.Error())

	case errors.Is(err, usecase.ErrShowStarted):
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// decodeAndValidate reads a JSON body into req and runs its validate tags.
// It writes the 400 response itself and reports whether the handler may go on.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, req any) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}
