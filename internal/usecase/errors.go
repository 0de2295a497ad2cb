package usecase

import (
	"errors"
	"fmt"

	"movie-booking/internal/access"
	"movie-booking/pkg/utils"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrUnauthenticated    = errors.New("authentication required")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = access.ErrForbidden
	ErrSeatUnavailable    = errors.New("seat unavailable")
	ErrShowStarted        = errors.New("show time has already started")
)

// ValidationError carries per-field messages and matches ErrValidation.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", utils.FormatValidationErrors(e.Fields))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Fields: map[string]string{field: msg}}
}

func validate(req any) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}
	return nil
}
