package wire

import (
	"movie-booking/internal/access"
	"movie-booking/internal/adaptor"
	"movie-booking/pkg/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(r chi.Router, bookingHandler *adaptor.BookingHandler, log *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/showtimes/{id}/seats", bookingHandler.GetSeatMap)

	// ==================== PROTECTED ROUTES ====================
	r.Route("/api/bookings", func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.With(middleware.RequireCapability(access.Book, log)).Post("/", bookingHandler.CreateBooking)
		r.Get("/", bookingHandler.GetUserBookings)
		r.Get("/{id}", bookingHandler.GetBookingByID)
		r.Put("/{id}/cancel", bookingHandler.CancelBooking)
		r.Get("/{id}/ticket", bookingHandler.DownloadTicket)
	})
}
