package response

import (
	"time"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
)

type AuthResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Role      entity.UserRole `json:"role"`
	User      UserResponse    `json:"user"`
}

type UserResponse struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Role      entity.UserRole `json:"role"`
	CreatedAt time.Time       `json:"created_at"`
}

// AccountResponse is the caller's account information and what it may do.
type AccountResponse struct {
	UserResponse
	Capabilities []access.Capability `json:"capabilities"`
}

func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	return AuthResponse{
		Token:     session.Token.String(),
		ExpiresAt: session.ExpiresAt,
		Role:      user.Role,
		User:      UserToResponse(user),
	}
}
