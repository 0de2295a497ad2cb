package repository

import (
	"context"
	"fmt"

	"movie-booking/internal/data/entity"
	"movie-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type SeatRepository interface {
	// FindAll returns the seat map ordered by row then column.
	FindAll(ctx context.Context) ([]*entity.Seat, error)
	FindByCodes(ctx context.Context, codes []string) ([]*entity.Seat, error)
	FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]entity.Seat, error)
}

type seatRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewSeatRepository(db database.PgxIface, log *zap.Logger) SeatRepository {
	return &seatRepository{
		db:  db,
		log: log.With(zap.String("repository", "seat")),
	}
}

func (r *seatRepository) FindAll(ctx context.Context) ([]*entity.Seat, error) {
	query := `
		SELECT id, code, seat_row, seat_column, kind, price
		FROM seats
		ORDER BY seat_row, seat_column
	`
	return r.query(ctx, query)
}

func (r *seatRepository) FindByCodes(ctx context.Context, codes []string) ([]*entity.Seat, error) {
	if len(codes) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, code, seat_row, seat_column, kind, price
		FROM seats
		WHERE code = ANY($1)
		ORDER BY seat_row, seat_column
	`
	return r.query(ctx, query, codes)
}

func (r *seatRepository) query(ctx context.Context, query string, args ...any) ([]*entity.Seat, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("Failed to query seats", zap.Error(err))
		return nil, fmt.Errorf("failed to find seats: %w", err)
	}
	defer rows.Close()

	var seats []*entity.Seat
	for rows.Next() {
		seat, err := scanSeat(rows)
		if err != nil {
			r.log.Error("Failed to scan seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan seat: %w", err)
		}
		seats = append(seats, seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return seats, nil
}

func scanSeat(row pgx.Row, extra ...any) (*entity.Seat, error) {
	var seat entity.Seat
	dest := append(extra, &seat.ID, &seat.Code, &seat.Row, &seat.Column, &seat.Kind, &seat.Price)
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}
	return &seat, nil
}

// FindByBookingIDs groups the seats of several bookings by booking id.
func (r *seatRepository) FindByBookingIDs(ctx context.Context, bookingIDs []uuid.UUID) (map[uuid.UUID][]entity.Seat, error) {
	result := make(map[uuid.UUID][]entity.Seat, len(bookingIDs))
	if len(bookingIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT bs.booking_id, s.id, s.code, s.seat_row, s.seat_column, s.kind, s.price
		FROM booking_seats bs
		JOIN seats s ON s.id = bs.seat_id
		WHERE bs.booking_id = ANY($1)
		ORDER BY s.seat_row, s.seat_column
	`

	rows, err := r.db.Query(ctx, query, bookingIDs)
	if err != nil {
		r.log.Error("Failed to find booking seats", zap.Error(err))
		return nil, fmt.Errorf("failed to find booking seats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bookingID uuid.UUID
		seat, err := scanSeat(rows, &bookingID)
		if err != nil {
			r.log.Error("Failed to scan booking seat row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan booking seat: %w", err)
		}
		result[bookingID] = append(result[bookingID], *seat)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}
