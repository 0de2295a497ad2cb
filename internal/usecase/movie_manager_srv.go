package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MovieManagerService holds the admin-only catalog mutations.
type MovieManagerService interface {
	AddMovie(ctx context.Context, uc entity.UserContext, req *request.MovieRequest) (*response.MovieDetailResponse, error)
	UpdateMovie(ctx context.Context, uc entity.UserContext, id string, req *request.MovieUpdateRequest) (*response.MovieResponse, error)
	DeleteMovie(ctx context.Context, uc entity.UserContext, id string) error
	AddShowTime(ctx context.Context, uc entity.UserContext, movieID string, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error)
	DeleteShowTime(ctx context.Context, uc entity.UserContext, movieID, showTimeID string) error
}

type movieManagerService struct {
	repo *repository.Repository
	log  *zap.Logger
	now  func() time.Time
}

func NewMovieManagerService(repo *repository.Repository, log *zap.Logger) MovieManagerService {
	return &movieManagerService{
		repo: repo,
		log:  log.With(zap.String("service", "movie_manager")),
		now:  time.Now,
	}
}

func (s *movieManagerService) AddMovie(ctx context.Context, uc entity.UserContext, req *request.MovieRequest) (*response.MovieDetailResponse, error) {
	if err := access.Check(uc, access.ManageMovies); err != nil {
		return nil, err
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Genre = strings.TrimSpace(req.Genre)
	if err := validate(req); err != nil {
		return nil, err
	}

	now := s.now()
	movie := &entity.Movie{
		Title:             req.Title,
		Genre:             req.Genre,
		Description:       strings.TrimSpace(req.Description),
		Rating:            entity.DefaultRating,
		Price:             req.Price,
		DurationInMinutes: req.DurationInMinutes,
	}
	if movie.Description == "" {
		movie.Description = entity.DefaultDescription
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	movie.ID = uuid.New()
	movie.CreatedAt = now
	movie.UpdatedAt = now

	// parse every show time before writing anything
	showTimes := make([]*entity.ShowTime, 0, len(req.ShowTimes))
	for i, st := range req.ShowTimes {
		showTime, err := newShowTime(movie.ID, &st, now)
		if err != nil {
			return nil, invalid(fmt.Sprintf("ShowTimes[%d]", i), err.Error())
		}
		showTimes = append(showTimes, showTime)
	}

	if err := s.repo.Movie.Create(ctx, movie, showTimes); err != nil {
		return nil, fmt.Errorf("create movie %s: %w", movie.Title, err)
	}

	s.log.Info("Movie added",
		zap.String("movie_id", movie.ID.String()),
		zap.String("title", movie.Title),
		zap.Int("show_times", len(showTimes)),
		zap.String("by", uc.UserID().String()),
	)

	return &response.MovieDetailResponse{
		MovieResponse: response.MovieToResponse(movie),
		ShowTimes:     response.ShowTimesToResponse(showTimes),
	}, nil
}

func newShowTime(movieID uuid.UUID, req *request.ShowTimeRequest, now time.Time) (*entity.ShowTime, error) {
	st, err := entity.NewShowTime(movieID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	st.ID = uuid.New()
	st.CreatedAt = now
	st.UpdatedAt = now
	return st, nil
}

func (s *movieManagerService) UpdateMovie(ctx context.Context, uc entity.UserContext, id string, req *request.MovieUpdateRequest) (*response.MovieResponse, error) {
	if err := access.Check(uc, access.ManageMovies); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.repo.Movie, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		movie.Title = strings.TrimSpace(*req.Title)
	}
	if req.Genre != nil {
		movie.Genre = strings.TrimSpace(*req.Genre)
	}
	if req.Description != nil {
		movie.Description = strings.TrimSpace(*req.Description)
		if movie.Description == "" {
			movie.Description = entity.DefaultDescription
		}
	}
	if req.Rating != nil {
		movie.Rating = *req.Rating
	}
	if req.Price != nil {
		movie.Price = *req.Price
	}
	if req.DurationInMinutes != nil {
		movie.DurationInMinutes = *req.DurationInMinutes
	}
	if movie.Title == "" || movie.Genre == "" {
		return nil, &ValidationError{Fields: map[string]string{
			"Title": "Title and genre are required",
		}}
	}
	movie.UpdatedAt = s.now()

	if err := s.repo.Movie.Update(ctx, movie); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("movie %s: %w", movie.ID, ErrNotFound)
		}
		return nil, fmt.Errorf("update movie: %w", err)
	}

	s.log.Info("Movie updated", zap.String("movie_id", movie.ID.String()))

	resp := response.MovieToResponse(movie)
	return &resp, nil
}

func (s *movieManagerService) DeleteMovie(ctx context.Context, uc entity.UserContext, id string) error {
	if err := access.Check(uc, access.ManageMovies); err != nil {
		return err
	}

	movieID, err := parseID("movie_id", id)
	if err != nil {
		return err
	}

	if err := s.repo.Movie.Delete(ctx, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("movie %s: %w", movieID, ErrNotFound)
		}
		return fmt.Errorf("delete movie: %w", err)
	}

	s.log.Info("Movie deleted", zap.String("movie_id", movieID.String()))
	return nil
}

func (s *movieManagerService) AddShowTime(ctx context.Context, uc entity.UserContext, movieID string, req *request.ShowTimeRequest) (*response.ShowTimeResponse, error) {
	if err := access.Check(uc, access.ManageMovies); err != nil {
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	movie, err := findMovie(ctx, s.repo.Movie, movieID)
	if err != nil {
		return nil, err
	}

	st, err := newShowTime(movie.ID, req, s.now())
	if err != nil {
		return nil, invalid("ShowTime", err.Error())
	}

	if err := s.repo.ShowTime.Create(ctx, st); err != nil {
		return nil, fmt.Errorf("create show time: %w", err)
	}

	s.log.Info("Show time added",
		zap.String("movie_id", movie.ID.String()),
		zap.String("show_time", st.String()),
	)

	resp := response.ShowTimeToResponse(st)
	return &resp, nil
}

func (s *movieManagerService) DeleteShowTime(ctx context.Context, uc entity.UserContext, movieID, showTimeID string) error {
	if err := access.Check(uc, access.ManageMovies); err != nil {
		return err
	}

	mid, err := parseID("movie_id", movieID)
	if err != nil {
		return err
	}
	sid, err := parseID("showtime_id", showTimeID)
	if err != nil {
		return err
	}

	if err := s.repo.ShowTime.Delete(ctx, mid, sid); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("show time %s of movie %s: %w", sid, mid, ErrNotFound)
		}
		return fmt.Errorf("delete show time: %w", err)
	}

	s.log.Info("Show time deleted",
		zap.String("movie_id", mid.String()),
		zap.String("showtime_id", sid.String()),
	)
	return nil
}
