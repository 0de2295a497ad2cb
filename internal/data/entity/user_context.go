package entity

import "github.com/google/uuid"

// UserContext is who is calling. It is passed explicitly into every service
// call; the zero value is a guest.
type UserContext struct {
	Role    UserRole
	Account *User
	Token   string
}

func GuestContext() UserContext {
	return UserContext{Role: RoleGuest}
}

// NewUserContext builds the context for an authenticated account.
func NewUserContext(account *User, token string) UserContext {
	return UserContext{Role: account.Role, Account: account, Token: token}
}

func (uc UserContext) EffectiveRole() UserRole {
	if uc.Role == "" || uc.Account == nil {
		return RoleGuest
	}
	return uc.Role
}

func (uc UserContext) IsAuthenticated() bool {
	return uc.EffectiveRole() != RoleGuest
}

func (uc UserContext) IsAdmin() bool {
	return uc.EffectiveRole() == RoleAdmin
}

func (uc UserContext) UserID() uuid.UUID {
	if uc.Account == nil {
		return uuid.Nil
	}
	return uc.Account.ID
}
