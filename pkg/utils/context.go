package utils

import (
	"context"

	"movie-booking/internal/data/entity"
)

type contextKey string

const UserContextKey contextKey = "user_context"

// SetUserContext stores the resolved caller on the request context.
func SetUserContext(ctx context.Context, uc entity.UserContext) context.Context {
	return context.WithValue(ctx, UserContextKey, uc)
}

// GetUserContext returns the caller, or a guest when none was resolved.
func GetUserContext(ctx context.Context) entity.UserContext {
	uc, ok := ctx.Value(UserContextKey).(entity.UserContext)
	if !ok {
		return entity.GuestContext()
	}
	return uc
}
