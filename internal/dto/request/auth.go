package request

// RegisterRequest always creates a regular user account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=8,max=20"`
}

// LoginRequest accepts either the username or the email as Identifier.
type LoginRequest struct {
	Identifier string `json:"username" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// ClientInfo is recorded on the session at login.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
