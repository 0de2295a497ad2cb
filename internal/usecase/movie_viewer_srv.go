package usecase

import (
	"context"
	"fmt"
	"strings"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MovieViewerService interface {
	ListMovies(ctx context.Context, uc entity.UserContext, req request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error)
	GetMovie(ctx context.Context, uc entity.UserContext, id string) (*response.MovieDetailResponse, error)
	ListShowTimes(ctx context.Context, uc entity.UserContext, movieID string) ([]response.ShowTimeResponse, error)
}

type movieViewerService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewMovieViewerService(repo *repository.Repository, log *zap.Logger) MovieViewerService {
	return &movieViewerService{
		repo: repo,
		log:  log.With(zap.String("service", "movie_viewer")),
	}
}

func (s *movieViewerService) ListMovies(ctx context.Context, uc entity.UserContext, req request.MovieListRequest) (*response.PaginatedResponse[response.MovieResponse], error) {
	if err := access.Check(uc, access.ViewMovies); err != nil {
		return nil, err
	}

	page := req.PaginatedRequest.Normalize()
	filter := repository.MovieFilter{
		Genre:  strings.TrimSpace(req.Genre),
		Search: strings.TrimSpace(req.Search),
		Limit:  page.PerPage,
		Offset: page.Offset(),
	}

	movies, err := s.repo.Movie.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}

	total, err := s.repo.Movie.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count movies: %w", err)
	}

	data := make([]response.MovieResponse, 0, len(movies))
	for _, m := range movies {
		data = append(data, response.MovieToResponse(m))
	}

	return response.NewPaginatedResponse(data, page.Page, page.PerPage, total), nil
}

func (s *movieViewerService) GetMovie(ctx context.Context, uc entity.UserContext, id string) (*response.MovieDetailResponse, error) {
	if err := access.Check(uc, access.ViewMovies); err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		return nil, err
	}

	showTimes, err := s.repo.ShowTime.FindByMovieID(ctx, movie.ID)
	if err != nil {
		return nil, fmt.Errorf("list show times: %w", err)
	}

	return &response.MovieDetailResponse{
		MovieResponse: response.MovieToResponse(movie),
		ShowTimes:     response.ShowTimesToResponse(showTimes),
	}, nil
}

func (s *movieViewerService) ListShowTimes(ctx context.Context, uc entity.UserContext, movieID string) ([]response.ShowTimeResponse, error) {
	detail, err := s.GetMovie(ctx, uc, movieID)
	if err != nil {
		return nil, err
	}
	return detail.ShowTimes, nil
}

func parseID(field, raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, invalid(field, "Must be a valid UUID")
	}
	return id, nil
}

func findMovie(ctx context.Context, movies repository.MovieRepository, rawID string) (*entity.Movie, error) {
	id, err := parseID("movie_id", rawID)
	if err != nil {
		return nil, err
	}

	movie, err := movies.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, fmt.Errorf("movie %s: %w", id, ErrNotFound)
	}
	return movie, nil
}
