// Package access decides which operations each role may reach.
package access

import (
	"errors"
	"sort"

	"movie-booking/internal/data/entity"
)

type Capability string

const (
	Login        Capability = "login"
	Register     Capability = "register"
	Logout       Capability = "logout"
	ViewMovies   Capability = "view_movies"
	Book         Capability = "book"
	ViewHistory  Capability = "view_history"
	ViewAccount  Capability = "view_account"
	ManageMovies Capability = "manage_movies"
)

var ErrForbidden = errors.New("forbidden")

var table = map[Capability]map[entity.UserRole]bool{
	Login:        {entity.RoleGuest: true},
	Register:     {entity.RoleGuest: true},
	Logout:       {entity.RoleUser: true, entity.RoleAdmin: true},
	ViewMovies:   {entity.RoleGuest: true, entity.RoleUser: true, entity.RoleAdmin: true},
	Book:         {entity.RoleUser: true, entity.RoleAdmin: true},
	ViewHistory:  {entity.RoleUser: true, entity.RoleAdmin: true},
	ViewAccount:  {entity.RoleUser: true, entity.RoleAdmin: true},
	ManageMovies: {entity.RoleAdmin: true},
}

func Allowed(role entity.UserRole, c Capability) bool {
	return table[c][role]
}

// Check returns ErrForbidden when the caller's role lacks c.
func Check(uc entity.UserContext, c Capability) error {
	if !Allowed(uc.EffectiveRole(), c) {
		return ErrForbidden
	}
	return nil
}

// Capabilities lists what role may do, sorted by name.
func Capabilities(role entity.UserRole) []Capability {
	var caps []Capability
	for c, roles := range table {
		if roles[role] {
			caps = append(caps, c)
		}
	}
	sort.Slice(caps, func(i, j int) bool { return caps[i] < caps[j] })
	return caps
}
