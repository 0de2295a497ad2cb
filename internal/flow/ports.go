package flow

import (
	"context"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
)

// The ports are the slices of the usecase services the machine calls. The
// usecase implementations satisfy them directly.

type AuthPort interface {
	Login(ctx context.Context, uc entity.UserContext, req *request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error)
	Register(ctx context.Context, uc entity.UserContext, req *request.RegisterRequest) (*response.UserResponse, error)
	Logout(ctx context.Context, uc entity.UserContext) error
	ResolveContext(ctx context.Context, token string) (entity.UserContext, error)
}

type CatalogPort interface {
	ListMovies(ctx context.Context, uc entity.UserContext, req request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovie(ctx context.Context, uc entity.UserContext, id string) (*response.MovieDetailResponse, error)
}

type ManagerPort interface {
	AddMovie(ctx context.Context, uc entity.UserContext, req *request.MovieRequest) (*response.MovieDetailResponse, error)
	UpdateMovie(ctx context.Context, uc entity.UserContext, id string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, uc entity.UserContext, id string) error
	AddShowTime(ctx context.Context, uc entity.UserContext, movieID string, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error)
	DeleteShowTime(ctx context.Context, uc entity.UserContext, movieID, showTimeID string) error
}

type BookingPort interface {
	SeatMap(ctx context.Context, uc entity.UserContext, showTimeID string) (*response.SeatMapResponse, error)
	CreateBooking(ctx context.Context, uc entity.UserContext, req *request.BookingRequest) (*response.BookingResponse, error)
	History(ctx context.Context, uc entity.UserContext, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type Ports struct {
	Auth     AuthPort
	Catalog  CatalogPort
	Manager  ManagerPort
	Bookings BookingPort
}
