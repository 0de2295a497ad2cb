package repository

import (
	"time"

	"movie-booking/pkg/database"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Repository struct {
	User     UserRepository
	Session  SessionRepository
	Movie    MovieRepository
	ShowTime ShowTimeRepository
	Seat     SeatRepository
	Booking  BookingRepository
}

// NewRepository builds every repository over db. rdb may be nil, which
// disables the catalog cache.
func NewRepository(db database.PgxIface, rdb *redis.Client, cacheTTL time.Duration, log *zap.Logger) *Repository {
	seats := NewSeatRepository(db, log)

	return &Repository{
		User:     NewUserRepository(db, log),
		Session:  NewSessionRepository(db, log),
		Movie:    NewCachedMovieRepository(NewMovieRepository(db, log), rdb, cacheTTL, log),
		ShowTime: NewShowTimeRepository(db, log),
		Seat:     seats,
		Booking:  NewBookingRepository(db, seats, log),
	}
}
