package response

import (
	"time"

	"movie-booking/internal/data/entity"
)

type SeatResponse struct {
	Code   string            `json:"code"`
	Row    string            `json:"row"`
	Column int               `json:"column"`
	Kind   entity.SeatKind   `json:"kind"`
	Price  float64           `json:"price"`
	Status entity.SeatStatus `json:"status"`
}

type SeatMapResponse struct {
	ShowTime   ShowTimeResponse `json:"showtime"`
	MovieTitle string           `json:"movie_title"`
	BasePrice  float64          `json:"base_price"`
	Seats      []SeatResponse   `json:"seats"`
}

type BookingResponse struct {
	ID         string               `json:"id"`
	OrderID    string               `json:"order_id"`
	MovieID    string               `json:"movie_id"`
	MovieTitle string               `json:"movie_title"`
	ShowTime   ShowTimeResponse     `json:"showtime"`
	Seats      []string             `json:"seats"`
	TotalSeats int                  `json:"total_seats"`
	TotalPrice float64              `json:"total_price"`
	Status     entity.BookingStatus `json:"status"`
	CreatedAt  time.Time            `json:"created_at"`
}

func SeatStateToResponse(s entity.SeatState) SeatResponse {
	return SeatResponse{
		Code:   s.Code,
		Row:    s.Row,
		Column: s.Column,
		Kind:   s.Kind,
		Price:  s.Price,
		Status: s.Status,
	}
}

func BookingToResponse(v *entity.BookingView) BookingResponse {
	return BookingResponse{
		ID:         v.ID.String(),
		OrderID:    v.OrderID,
		MovieID:    v.MovieID.String(),
		MovieTitle: v.MovieTitle,
		ShowTime:   ShowTimeToResponse(&v.ShowTime),
		Seats:      v.SeatCodes(),
		TotalSeats: v.TotalSeats,
		TotalPrice: v.TotalPrice,
		Status:     v.Status,
		CreatedAt:  v.CreatedAt,
	}
}
