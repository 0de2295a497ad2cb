package adaptor

import (
	"movie-booking/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	User    *UserHandler
	Movie   *MovieHandler
	Booking *BookingHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		User:    NewUserHandler(service.User, log),
		Movie:   NewMovieHandler(service.MovieViewer, service.MovieManager, log),
		Booking: NewBookingHandler(service.Booking, log),
	}
}
