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

type BookingRepository interface {
	// Create stores the booking and its seats atomically. ErrSeatTaken is
	// returned when any seat was sold for the same show time meanwhile.
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingView, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingView, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	BookedSeatIDs(ctx context.Context, showTimeID uuid.UUID) (map[uuid.UUID]bool, error)
	// Cancel marks a confirmed booking cancelled and releases its seats.
	Cancel(ctx context.Context, id uuid.UUID) error
}

type bookingRepository struct {
	db    database.PgxIface
	seats SeatRepository
	log   *zap.Logger
}

func NewBookingRepository(db database.PgxIface, seats SeatRepository, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:    db,
		seats: seats,
		log:   log.With(zap.String("repository", "booking")),
	}
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("create booking: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, order_id, user_id, showtime_id, total_seats, total_price,
		                      status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		booking.ID,
		booking.OrderID,
		booking.UserID,
		booking.ShowTimeID,
		booking.TotalSeats,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("order_id", booking.OrderID),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.OrderID, err)
	}

	for _, seat := range booking.Seats {
		_, err = tx.Exec(ctx, `
			INSERT INTO booking_seats (id, booking_id, showtime_id, seat_id, created_at)
			VALUES ($1, $2, $3, $4, $5)
		`, uuid.New(), booking.ID, booking.ShowTimeID, seat.ID, booking.CreatedAt)

		if isUniqueViolation(err) {
			r.log.Warn("Seat already booked",
				zap.String("showtime_id", booking.ShowTimeID.String()),
				zap.String("seat", seat.Code),
			)
			return fmt.Errorf("seat %s: %w", seat.Code, ErrSeatTaken)
		}
		if err != nil {
			r.log.Error("Failed to create booking seat",
				zap.Error(err),
				zap.String("order_id", booking.OrderID),
				zap.String("seat", seat.Code),
			)
			return fmt.Errorf("create booking seat %s: %w", seat.Code, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		r.log.Error("Failed to commit booking", zap.Error(err), zap.String("order_id", booking.OrderID))
		return fmt.Errorf("create booking: commit: %w", err)
	}

	return nil
}

const bookingViewQuery = `
	SELECT b.id, b.order_id, b.user_id, b.showtime_id, b.total_seats, b.total_price,
	       b.status, b.created_at, b.updated_at,
	       m.id, m.title,
	       st.show_date, to_char(st.start_time, 'HH24:MI'), to_char(st.end_time, 'HH24:MI')
	FROM bookings b
	JOIN showtimes st ON st.id = b.showtime_id
	JOIN movies m ON m.id = st.movie_id
`

func scanBookingView(row pgx.Row) (*entity.BookingView, error) {
	var v entity.BookingView
	err := row.Scan(
		&v.ID,
		&v.OrderID,
		&v.UserID,
		&v.ShowTimeID,
		&v.TotalSeats,
		&v.TotalPrice,
		&v.Status,
		&v.CreatedAt,
		&v.UpdatedAt,
		&v.MovieID,
		&v.MovieTitle,
		&v.ShowTime.ShowDate,
		&v.ShowTime.StartTime,
		&v.ShowTime.EndTime,
	)
	if err != nil {
		return nil, err
	}
	v.ShowTime.ID = v.ShowTimeID
	v.ShowTime.MovieID = v.MovieID
	return &v, nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingView, error) {
	view, err := scanBookingView(r.db.QueryRow(ctx, bookingViewQuery+` WHERE b.id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id, err)
	}

	if err := r.attachSeats(ctx, []*entity.BookingView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingView, error) {
	query := bookingViewQuery + `
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID, err)
	}
	defer rows.Close()

	var views []*entity.BookingView
	for rows.Next() {
		view, err := scanBookingView(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booking rows: %w", err)
	}
	rows.Close()

	if err := r.attachSeats(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

func (r *bookingRepository) attachSeats(ctx context.Context, views []*entity.BookingView) error {
	ids := make([]uuid.UUID, 0, len(views))
	for _, v := range views {
		ids = append(ids, v.ID)
	}

	seats, err := r.seats.FindByBookingIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, v := range views {
		v.Seats = seats[v.ID]
	}
	return nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID, err)
	}

	return count, nil
}

func (r *bookingRepository) BookedSeatIDs(ctx context.Context, showTimeID uuid.UUID) (map[uuid.UUID]bool, error) {
	query := `SELECT seat_id FROM booking_seats WHERE showtime_id = $1 AND active`

	rows, err := r.db.Query(ctx, query, showTimeID)
	if err != nil {
		r.log.Error("Failed to find booked seats",
			zap.Error(err),
			zap.String("showtime_id", showTimeID.String()),
		)
		return nil, fmt.Errorf("find booked seats: %w", err)
	}
	defer rows.Close()

	booked := make(map[uuid.UUID]bool)
	for rows.Next() {
		var seatID uuid.UUID
		if err := rows.Scan(&seatID); err != nil {
			return nil, fmt.Errorf("scan booked seat: %w", err)
		}
		booked[seatID] = true
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate booked seats: %w", err)
	}

	return booked, nil
}

func (r *bookingRepository) Cancel(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		r.log.Error("Failed to begin transaction", zap.Error(err))
		return fmt.Errorf("cancel booking: begin: %w", err)
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		UPDATE bookings SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = $3
	`, id, entity.BookingStatusCancelled, entity.BookingStatusConfirmed)
	if err != nil {
		r.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("cancel booking %s: %w", id, err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("cancel booking %s: %w", id, ErrNotFound)
	}

	if _, err := tx.Exec(ctx, `UPDATE booking_seats SET active = FALSE WHERE booking_id = $1`, id); err != nil {
		r.log.Error("Failed to release booking seats",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return fmt.Errorf("release seats of booking %s: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("cancel booking: commit: %w", err)
	}

	return nil
}
