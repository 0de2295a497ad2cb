package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubBooking struct {
	usecase.BookingService
	createErr error
	got       *request.BookingRequest
	ticket    *usecase.Ticket
}

func (s *stubBooking) CreateBooking(_ context.Context, _ entity.UserContext, req *request.BookingRequest) (*response.BookingResponse, error) {
	s.got = req
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &response.BookingResponse{OrderID: "BOOK-1", Seats: req.Seats, TotalPrice: 50000}, nil
}

func (s *stubBooking) Ticket(_ context.Context, _ entity.UserContext, id string) (*usecase.Ticket, error) {
	if s.ticket == nil {
		return nil, fmt.Errorf("booking %s: %w", id, usecase.ErrNotFound)
	}
	return s.ticket, nil
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func postBooking(h *BookingHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateBooking(rec, req)
	return rec
}

func TestCreateBookingHandler(t *testing.T) {
	stub := &stubBooking{}
	h := NewBookingHandler(stub, zap.NewNop())

	rec := postBooking(h, `{"showtime_id":"6f1c1a52-0000-4000-8000-000000000000","seats":["A1","F1"]}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	resp := decode(t, rec)
	assert.True(t, resp.Status)
	assert.Equal(t, []string{"A1", "F1"}, stub.got.Seats)

	rec = postBooking(h, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", decode(t, rec).Message)

	rec = postBooking(h, `{"showtime_id":"abc","seats":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	errs, ok := decode(t, rec).Errors.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Must be a valid UUID", errs["ShowTimeID"])
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{&usecase.ValidationError{Fields: map[string]string{"Seats": "Unknown seat: Z9"}}, http.StatusBadRequest},
		{fmt.Errorf("show time x: %w", usecase.ErrNotFound), http.StatusNotFound},
		{usecase.ErrUnauthenticated, http.StatusUnauthorized},
		{usecase.ErrInvalidCredentials, http.StatusUnauthorized},
		{fmt.Errorf("booking y: %w", usecase.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("seat A1: %w", usecase.ErrSeatUnavailable), http.StatusConflict},
		{fmt.Errorf("booking is cancelled: %w", usecase.ErrConflict), http.StatusConflict},
		{usecase.ErrShowStarted, http.StatusBadRequest},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			h := NewBookingHandler(&stubBooking{createErr: tc.err}, zap.NewNop())
			rec := postBooking(h, `{"showtime_id":"6f1c1a52-0000-4000-8000-000000000000","seats":["A1"]}`)
			assert.Equal(t, tc.code, rec.Code)
			assert.False(t, decode(t, rec).Status)
		})
	}
}

func TestServiceErrorHidesInternalDetails(t *testing.T) {
	h := NewBookingHandler(&stubBooking{createErr: errors.New("pq: password authentication failed")}, zap.NewNop())
	rec := postBooking(h, `{"showtime_id":"6f1c1a52-0000-4000-8000-000000000000","seats":["A1"]}`)
	assert.Equal(t, "Internal server error", decode(t, rec).Message)
}

func TestDownloadTicket(t *testing.T) {
	stub := &stubBooking{}
	h := NewBookingHandler(stub, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/bookings/{id}/ticket", h.DownloadTicket)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/abc/ticket", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	stub.ticket = &usecase.Ticket{Filename: "BOOK-1.pdf", Content: []byte("%PDF-1.3")}
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/bookings/abc/ticket", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="BOOK-1.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "%PDF-1.3", rec.Body.String())
}

func TestClientInfo(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	req.Header.Set("User-Agent", "kiosk/1.0")

	info := clientInfo(req)
	assert.Equal(t, "10.0.0.7", info.IPAddress)
	assert.Equal(t, "kiosk/1.0", info.UserAgent)
}
