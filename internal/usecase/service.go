package usecase

import (
	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth         AuthService
	User         UserService
	MovieViewer  MovieViewerService
	MovieManager MovieManagerService
	Booking      BookingService
}

func NewService(repo *repository.Repository, publisher event.Publisher, config *utils.Config, log *zap.Logger) *Service {
	return &Service{
		Auth:         NewAuthService(repo, config, log),
		User:         NewUserService(repo.User, log),
		MovieViewer:  NewMovieViewerService(repo, log),
		MovieManager: NewMovieManagerService(repo, log),
		Booking:      NewBookingService(repo, publisher, config, log),
	}
}
