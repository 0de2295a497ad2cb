package entity

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

type Booking struct {
	BaseNoDelete
	OrderID    string        `db:"order_id"`
	UserID     uuid.UUID     `db:"user_id"`
	ShowTimeID uuid.UUID     `db:"showtime_id"`
	TotalSeats int           `db:"total_seats"`
	TotalPrice float64       `db:"total_price"`
	Status     BookingStatus `db:"status"`
	Seats      []Seat
}

// BookingView is a booking joined with what a visitor needs to see in history.
type BookingView struct {
	Booking
	MovieID    uuid.UUID
	MovieTitle string
	ShowTime   ShowTime
}

func (b *Booking) SeatCodes() []string {
	codes := make([]string, 0, len(b.Seats))
	for _, s := range b.Seats {
		codes = append(codes, s.Code)
	}
	return codes
}
