package adaptor

import (
	"fmt"
	"net/http"
	"strconv"

	"movie-booking/internal/dto/request"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service usecase.BookingService
	log     *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service: service,
		log:     log.With(zap.String("handler", "booking")),
	}
}

// GetSeatMap handles GET /api/showtimes/{id}/seats
func (h *BookingHandler) GetSeatMap(w http.ResponseWriter, r *http.Request) {
	seats, err := h.service.SeatMap(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get seat map")
		return
	}

	utils.ResponseSuccess(w, "success", seats)
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.BookingRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), utils.GetUserContext(r.Context()), &req)
	if err != nil {
		handleServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "Booking confirmed", booking)
}

// GetUserBookings handles GET /api/bookings?page=&per_page=
func (h *BookingHandler) GetUserBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), utils.DefaultPerPage),
	}

	bookings, err := h.service.History(r.Context(), utils.GetUserContext(r.Context()), req)
	if err != nil {
		handleServiceError(w, h.log, err, "get user bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookingByID handles GET /api/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.GetBooking(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "get booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CancelBooking handles PUT /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	booking, err := h.service.CancelBooking(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "Booking cancelled", booking)
}

// DownloadTicket handles GET /api/bookings/{id}/ticket
func (h *BookingHandler) DownloadTicket(w http.ResponseWriter, r *http.Request) {
	ticket, err := h.service.Ticket(r.Context(), utils.GetUserContext(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, h.log, err, "download ticket")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", ticket.Filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(ticket.Content)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(ticket.Content); err != nil {
		h.log.Warn("Failed to write ticket", zap.Error(err))
	}
}
