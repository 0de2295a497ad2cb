package entity

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

type SeatKind string

const (
	SeatSingle SeatKind = "single"
	SeatCouple SeatKind = "couple"
)

type SeatStatus string

const (
	SeatAvailable SeatStatus = "available"
	SeatBooked    SeatStatus = "booked"
)

// Seat is a physical seat in the auditorium. Price is the surcharge on top of
// the movie's base ticket price.
type Seat struct {
	ID     uuid.UUID `db:"id"`
	Code   string    `db:"code"` // A1, A2, B1, etc.
	Row    string    `db:"seat_row"`
	Column int       `db:"seat_column"`
	Kind   SeatKind  `db:"kind"`
	Price  float64   `db:"price"`
}

// NewSeat is the only way seats of a given kind are created.
func NewSeat(code string, kind SeatKind, price float64) (*Seat, error) {
	if kind != SeatSingle && kind != SeatCouple {
		return nil, fmt.Errorf("unknown seat kind %q", kind)
	}
	if price < 0 {
		return nil, fmt.Errorf("seat %s: negative price", code)
	}
	row, col, err := ParseSeatCode(code)
	if err != nil {
		return nil, err
	}
	return &Seat{
		ID:     uuid.New(),
		Code:   row + strconv.Itoa(col),
		Row:    row,
		Column: col,
		Kind:   kind,
		Price:  price,
	}, nil
}

// ParseSeatCode splits "B12" into row "B" and column 12.
func ParseSeatCode(code string) (string, int, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	i := 0
	for i < len(code) && code[i] >= 'A' && code[i] <= 'Z' {
		i++
	}
	if i == 0 || i == len(code) {
		return "", 0, fmt.Errorf("invalid seat code %q", code)
	}
	col, err := strconv.Atoi(code[i:])
	if err != nil || col < 1 {
		return "", 0, fmt.Errorf("invalid seat code %q", code)
	}
	return code[:i], col, nil
}

// Capacity is how many people the seat holds.
func (s *Seat) Capacity() int {
	if s.Kind == SeatCouple {
		return 2
	}
	return 1
}

// LinePrice is what this seat costs for a movie with the given base price.
func (s *Seat) LinePrice(base float64) float64 {
	return base*float64(s.Capacity()) + s.Price
}

// SeatState is a seat together with its status for one show time.
type SeatState struct {
	Seat
	Status SeatStatus
}

func (s SeatState) Available() bool {
	return s.Status == SeatAvailable
}
