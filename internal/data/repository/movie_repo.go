package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// MovieFilter narrows the catalog. Empty fields match everything.
type MovieFilter struct {
	Genre  string
	Search string
	Limit  int
	Offset int
}

type MovieRepository interface {
	// Create inserts the movie and its initial show times in one transaction.
	Create(ctx context.Context, movie *entity.Movie, showTimes []*entity.ShowTime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error)
	FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error)
	CountAll(ctx context.Context, filter MovieFilter) (int64, error)
	Update(ctx context.Context, movie *entity.Movie) error
	// Delete removes the movie together with all of its show times.
	Delete(ctx context.Context, id uuid.UUID) error
}

type movieRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewMovieRepository(db database.PgxIface, log *zap.Logger) MovieRepository {
	return &movieRepository{
		db:  db,
		log: log.With(zap.String("repository", "movie")),
	}
}

func (r *movieRepository) Create(ctx context.Context, movie *entity.Movie, showTimes []*entity.ShowTime) error {
	query := `
		INSERT INTO movies (id, title, genre, description, rating, price,
		                    duration_in_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("create movie: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.Description,
		movie.Rating,
		movie.Price,
		movie.DurationInMinutes,
		movie.CreatedAt,
		movie.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create movie",
			zap.Error(err),
			zap.String("title", movie.Title),
		)
		return fmt.Errorf("failed to create movie: %w", err)
	}

	for _, st := range showTimes {
		if _, err := tx.Exec(ctx, insertShowTimeQuery, showTimeArgs(st)...); err != nil {
			r.log.Error("Failed to create show time",
				zap.Error(err),
				zap.String("movie_id", movie.ID.String()),
				zap.String("show_time", st.String()),
			)
			return fmt.Errorf("failed to create show time %s: %w", st, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("create movie: commit: %w", err)
	}

	return nil
}

func (r *movieRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Movie, error) {
	query := `
		SELECT id, title, genre, description, rating, price, duration_in_minutes,
		       created_at, updated_at, deleted_at
		FROM movies
		WHERE id = $1 AND deleted_at IS NULL
	`

	var movie entity.Movie
	err := r.db.QueryRow(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Genre,
		&movie.Description,
		&movie.Rating,
		&movie.Price,
		&movie.DurationInMinutes,
		&movie.CreatedAt,
		&movie.UpdatedAt,
		&movie.DeletedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find movie by ID",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find movie: %w", err)
	}

	return &movie, nil
}

// whereClause builds the shared filter for FindAll and CountAll.
func (f MovieFilter) whereClause() (string, []any) {
	var sb strings.Builder
	sb.WriteString(" WHERE deleted_at IS NULL")

	args := []any{}
	if f.Genre != "" {
		args = append(args, f.Genre)
		sb.WriteString(fmt.Sprintf(" AND LOWER(genre) = LOWER($%d)", len(args)))
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		sb.WriteString(fmt.Sprintf(" AND title ILIKE $%d", len(args)))
	}

	return sb.String(), args
}

func (r *movieRepository) FindAll(ctx context.Context, filter MovieFilter) ([]*entity.Movie, error) {
	where, args := filter.whereClause()

	query := `
		SELECT id, title, genre, description, rating, price, duration_in_minutes,
		       created_at, updated_at
		FROM movies` + where +
		fmt.Sprintf(" ORDER BY title ASC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to find all movies",
			zap.Error(err),
			zap.String("genre", filter.Genre),
			zap.String("search", filter.Search),
		)
		return nil, fmt.Errorf("failed to find movies: %w", err)
	}
	defer rows.Close()

	var movies []*entity.Movie
	for rows.Next() {
		var movie entity.Movie
		err := rows.Scan(
			&movie.ID,
			&movie.Title,
			&movie.Genre,
			&movie.Description,
			&movie.Rating,
			&movie.Price,
			&movie.DurationInMinutes,
			&movie.CreatedAt,
			&movie.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan movie row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan movie: %w", err)
		}
		movies = append(movies, &movie)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Movies found",
		zap.Int("count", len(movies)),
		zap.Int("offset", filter.Offset),
		zap.Int("limit", filter.Limit),
	)

	return movies, nil
}

func (r *movieRepository) CountAll(ctx context.Context, filter MovieFilter) (int64, error) {
	where, args := filter.whereClause()
	query := `SELECT COUNT(*) FROM movies` + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count movies", zap.Error(err))
		return 0, fmt.Errorf("failed to count movies: %w", err)
	}

	return total, nil
}

func (r *movieRepository) Update(ctx context.Context, movie *entity.Movie) error {
	query := `
		UPDATE movies
		SET title = $2, genre = $3, description = $4, rating = $5, price = $6,
		    duration_in_minutes = $7, updated_at = $8
		WHERE id = $1 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query,
		movie.ID,
		movie.Title,
		movie.Genre,
		movie.Description,
		movie.Rating,
		movie.Price,
		movie.DurationInMinutes,
		movie.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to update movie",
			zap.Error(err),
			zap.String("movie_id", movie.ID.String()),
		)
		return fmt.Errorf("failed to update movie: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("update movie %s: %w", movie.ID, ErrNotFound)
	}

	return nil
}

func (r *movieRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("delete movie: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx,
		`UPDATE movies SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.log.Error("Failed to delete movie",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete movie: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete movie %s: %w", id, ErrNotFound)
	}

	showtimes, err := tx.Exec(ctx,
		`UPDATE showtimes SET deleted_at = NOW() WHERE movie_id = $1 AND deleted_at IS NULL`, id)
	if err != nil {
		r.log.Error("Failed to delete movie show times",
			zap.Error(err),
			zap.String("movie_id", id.String()),
		)
		return fmt.Errorf("failed to delete show times: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete movie: commit: %w", err)
	}

	r.log.Info("Movie soft deleted",
		zap.String("movie_id", id.String()),
		zap.Int64("show_times", showtimes.RowsAffected()),
	)
	return nil
}
