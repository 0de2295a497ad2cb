package repository

import (
	"context"
	"errors"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ShowTimeRepository interface {
	Create(ctx context.Context, showTime *entity.ShowTime) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error)
	FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.ShowTime, error)
	// Delete removes one show time, scoped to the movie it belongs to.
	Delete(ctx context.Context, movieID, id uuid.UUID) error
}

type showTimeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewShowTimeRepository(db database.PgxIface, log *zap.Logger) ShowTimeRepository {
	return &showTimeRepository{
		db:  db,
		log: log.With(zap.String("repository", "showtime")),
	}
}

const showTimeColumns = `id, movie_id, show_date, to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
		       created_at, updated_at`

func scanShowTime(row pgx.Row) (*entity.ShowTime, error) {
	var st entity.ShowTime
	err := row.Scan(
		&st.ID,
		&st.MovieID,
		&st.ShowDate,
		&st.StartTime,
		&st.EndTime,
		&st.CreatedAt,
		&st.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

const insertShowTimeQuery = `
		INSERT INTO showtimes (id, movie_id, show_date, start_time, end_time, created_at, updated_at)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7)
	`

func showTimeArgs(st *entity.ShowTime) []any {
	return []any{st.ID, st.MovieID, st.ShowDate, st.StartTime, st.EndTime, st.CreatedAt, st.UpdatedAt}
}

func (r *showTimeRepository) Create(ctx context.Context, st *entity.ShowTime) error {
	_, err := r.db.Exec(ctx, insertShowTimeQuery, showTimeArgs(st)...)

	if err != nil {
		r.log.Error("Failed to create show time",
			zap.Error(err),
			zap.String("movie_id", st.MovieID.String()),
		)
		return fmt.Errorf("failed to create show time: %w", err)
	}

	return nil
}

func (r *showTimeRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	query := `SELECT ` + showTimeColumns + ` FROM showtimes WHERE id = $1 AND deleted_at IS NULL`

	st, err := scanShowTime(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find show time",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return nil, fmt.Errorf("failed to find show time: %w", err)
	}

	return st, nil
}

func (r *showTimeRepository) FindByMovieID(ctx context.Context, movieID uuid.UUID) ([]*entity.ShowTime, error) {
	query := `SELECT ` + showTimeColumns + `
		FROM showtimes
		WHERE movie_id = $1 AND deleted_at IS NULL
		ORDER BY show_date, start_time`

	rows, err := r.db.Query(ctx, query, movieID)
	if err != nil {
		r.log.Error("Failed to find show times",
			zap.Error(err),
			zap.String("movie_id", movieID.String()),
		)
		return nil, fmt.Errorf("failed to find show times: %w", err)
	}
	defer rows.Close()

	var showTimes []*entity.ShowTime
	for rows.Next() {
		st, err := scanShowTime(rows)
		if err != nil {
			r.log.Error("Failed to scan show time row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan show time: %w", err)
		}
		showTimes = append(showTimes, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return showTimes, nil
}

func (r *showTimeRepository) Delete(ctx context.Context, movieID, id uuid.UUID) error {
	query := `
		UPDATE showtimes SET deleted_at = NOW()
		WHERE id = $1 AND movie_id = $2 AND deleted_at IS NULL
	`

	result, err := r.db.Exec(ctx, query, id, movieID)
	if err != nil {
		r.log.Error("Failed to delete show time",
			zap.Error(err),
			zap.String("showtime_id", id.String()),
		)
		return fmt.Errorf("failed to delete show time: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete show time %s: %w", id, ErrNotFound)
	}

	return nil
}
