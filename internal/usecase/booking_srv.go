package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/event"
	"movie-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	SeatMap(ctx context.Context, uc entity.UserContext, showTimeID string) (*response.SeatMapResponse, error)
	CreateBooking(ctx context.Context, uc entity.UserContext, req *request.BookingRequest) (*response.BookingResponse, error)
	History(ctx context.Context, uc entity.UserContext, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	GetBooking(ctx context.Context, uc entity.UserContext, id string) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, uc entity.UserContext, id string) (*response.BookingResponse, error)
	Ticket(ctx context.Context, uc entity.UserContext, id string) (*Ticket, error)
}

type bookingService struct {
	repo      *repository.Repository
	publisher event.Publisher
	issuer    string
	log       *zap.Logger
	now       func() time.Time
	loc       *time.Location
}

func NewBookingService(repo *repository.Repository, publisher event.Publisher, config *utils.Config, log *zap.Logger) BookingService {
	issuer := "Movie Booking"
	if config != nil && config.Ticket.Issuer != "" {
		issuer = config.Ticket.Issuer
	}
	if publisher == nil {
		publisher = event.NoopPublisher{}
	}

	return &bookingService{
		repo:      repo,
		publisher: publisher,
		issuer:    issuer,
		log:       log.With(zap.String("service", "booking")),
		now:       time.Now,
		loc:       time.Local,
	}
}

func (s *bookingService) SeatMap(ctx context.Context, uc entity.UserContext, showTimeID string) (*response.SeatMapResponse, error) {
	if err := access.Check(uc, access.ViewMovies); err != nil {
		return nil, err
	}

	showTime, movie, err := s.findShowTime(ctx, showTimeID)
	if err != nil {
		return nil, err
	}

	states, err := s.seatStates(ctx, showTime.ID)
	if err != nil {
		return nil, err
	}

	seats := make([]response.SeatResponse, 0, len(states))
	for _, st := range states {
		seats = append(seats, response.SeatStateToResponse(st))
	}

	return &response.SeatMapResponse{
		ShowTime:   response.ShowTimeToResponse(showTime),
		MovieTitle: movie.Title,
		BasePrice:  movie.Price,
		Seats:      seats,
	}, nil
}

func (s *bookingService) seatStates(ctx context.Context, showTimeID uuid.UUID) ([]entity.SeatState, error) {
	seats, err := s.repo.Seat.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load seat map: %w", err)
	}

	booked, err := s.repo.Booking.BookedSeatIDs(ctx, showTimeID)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}

	states := make([]entity.SeatState, 0, len(seats))
	for _, seat := range seats {
		status := entity.SeatAvailable
		if booked[seat.ID] {
			status = entity.SeatBooked
		}
		states = append(states, entity.SeatState{Seat: *seat, Status: status})
	}
	return states, nil
}

func (s *bookingService) findShowTime(ctx context.Context, rawID string) (*entity.ShowTime, *entity.Movie, error) {
	id, err := parseID("showtime_id", rawID)
	if err != nil {
		return nil, nil, err
	}

	showTime, err := s.repo.ShowTime.FindByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("find show time: %w", err)
	}
	if showTime == nil {
		return nil, nil, fmt.Errorf("show time %s: %w", id, ErrNotFound)
	}

	movie, err := s.repo.Movie.FindByID(ctx, showTime.MovieID)
	if err != nil {
		return nil, nil, fmt.Errorf("find movie: %w", err)
	}
	if movie == nil {
		return nil, nil, fmt.Errorf("movie of show time %s: %w", id, ErrNotFound)
	}

	return showTime, movie, nil
}

// normalizeSeatCodes upper-cases codes and rejects repeats within one request.
func normalizeSeatCodes(codes []string) ([]string, error) {
	seen := make(map[string]bool, len(codes))
	out := make([]string, 0, len(codes))
	for _, raw := range codes {
		code := strings.ToUpper(strings.TrimSpace(raw))
		if seen[code] {
			return nil, invalid("Seats", fmt.Sprintf("Seat %s selected more than once", code))
		}
		seen[code] = true
		out = append(out, code)
	}
	return out, nil
}

func (s *bookingService) CreateBooking(ctx context.Context, uc entity.UserContext, req *request.BookingRequest) (*response.BookingResponse, error) {
	if err := access.Check(uc, access.Book); err != nil {
		if !uc.IsAuthenticated() {
			return nil, ErrUnauthenticated
		}
		return nil, err
	}
	if err := validate(req); err != nil {
		return nil, err
	}

	codes, err := normalizeSeatCodes(req.Seats)
	if err != nil {
		return nil, err
	}

	showTime, movie, err := s.findShowTime(ctx, req.ShowTimeID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if !showTime.StartsAt(s.loc).After(now) {
		return nil, fmt.Errorf("book %s: %w", showTime, ErrShowStarted)
	}

	seats, err := s.repo.Seat.FindByCodes(ctx, codes)
	if err != nil {
		return nil, fmt.Errorf("find seats: %w", err)
	}
	if len(seats) != len(codes) {
		return nil, invalid("Seats", "Unknown seat: "+strings.Join(missingCodes(codes, seats), ", "))
	}

	booked, err := s.repo.Booking.BookedSeatIDs(ctx, showTime.ID)
	if err != nil {
		return nil, fmt.Errorf("load booked seats: %w", err)
	}

	booking := &entity.Booking{
		OrderID:    utils.GenerateOrderID(now),
		UserID:     uc.UserID(),
		ShowTimeID: showTime.ID,
		TotalSeats: len(seats),
		Status:     entity.BookingStatusConfirmed,
	}
	booking.ID = uuid.New()
	booking.CreatedAt = now
	booking.UpdatedAt = now

	for _, seat := range seats {
		if booked[seat.ID] {
			return nil, fmt.Errorf("seat %s: %w", seat.Code, ErrSeatUnavailable)
		}
		booking.TotalPrice += seat.LinePrice(movie.Price)
		booking.Seats = append(booking.Seats, *seat)
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			return nil, fmt.Errorf("%v: %w", err, ErrSeatUnavailable)
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("order_id", booking.OrderID),
		zap.String("user_id", booking.UserID.String()),
		zap.String("showtime_id", showTime.ID.String()),
		zap.Strings("seats", booking.SeatCodes()),
		zap.Float64("total_price", booking.TotalPrice),
	)

	view := &entity.BookingView{
		Booking:    *booking,
		MovieID:    movie.ID,
		MovieTitle: movie.Title,
		ShowTime:   *showTime,
	}
	s.publish(ctx, view)

	resp := response.BookingToResponse(view)
	return &resp, nil
}

func missingCodes(codes []string, seats []*entity.Seat) []string {
	found := make(map[string]bool, len(seats))
	for _, seat := range seats {
		found[seat.Code] = true
	}
	var missing []string
	for _, code := range codes {
		if !found[code] {
			missing = append(missing, code)
		}
	}
	return missing
}

// publish is best effort; a booking is never failed because the broker is down.
func (s *bookingService) publish(ctx context.Context, v *entity.BookingView) {
	err := s.publisher.PublishBookingCreated(ctx, event.BookingCreated{
		BookingID:  v.ID.String(),
		OrderID:    v.OrderID,
		UserID:     v.UserID.String(),
		ShowTimeID: v.ShowTimeID.String(),
		MovieTitle: v.MovieTitle,
		Seats:      v.SeatCodes(),
		TotalPrice: v.TotalPrice,
		CreatedAt:  v.CreatedAt,
	})
	if err != nil {
		s.log.Warn("Booking event not published", zap.String("order_id", v.OrderID), zap.Error(err))
	}
}

func (s *bookingService) History(ctx context.Context, uc entity.UserContext, req request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	if err := access.Check(uc, access.ViewHistory); err != nil {
		return nil, ErrUnauthenticated
	}

	page := req.Normalize()
	views, err := s.repo.Booking.FindByUserID(ctx, uc.UserID(), page.PerPage, page.Offset())
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, uc.UserID())
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	data := make([]response.BookingResponse, 0, len(views))
	for _, v := range views {
		data = append(data, response.BookingToResponse(v))
	}

	return response.NewPaginatedResponse(data, page.Page, page.PerPage, total), nil
}

// ownBooking loads a booking the caller may see: their own, or any for an admin.
func (s *bookingService) ownBooking(ctx context.Context, uc entity.UserContext, rawID string) (*entity.BookingView, error) {
	if err := access.Check(uc, access.ViewHistory); err != nil {
		return nil, ErrUnauthenticated
	}

	id, err := parseID("booking_id", rawID)
	if err != nil {
		return nil, err
	}

	view, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if view == nil {
		return nil, fmt.Errorf("booking %s: %w", id, ErrNotFound)
	}
	if view.UserID != uc.UserID() && !uc.IsAdmin() {
		return nil, fmt.Errorf("booking %s belongs to another user: %w", id, ErrForbidden)
	}

	return view, nil
}

func (s *bookingService) GetBooking(ctx context.Context, uc entity.UserContext, id string) (*response.BookingResponse, error) {
	view, err := s.ownBooking(ctx, uc, id)
	if err != nil {
		return nil, err
	}

	resp := response.BookingToResponse(view)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, uc entity.UserContext, id string) (*response.BookingResponse, error) {
	view, err := s.ownBooking(ctx, uc, id)
	if err != nil {
		return nil, err
	}
	if view.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s: %w", view.OrderID, view.Status, ErrConflict)
	}

	if err := s.repo.Booking.Cancel(ctx, view.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("booking %s already cancelled: %w", view.OrderID, ErrConflict)
		}
		return nil, fmt.Errorf("cancel booking: %w", err)
	}

	view.Status = entity.BookingStatusCancelled
	s.log.Info("Booking cancelled",
		zap.String("order_id", view.OrderID),
		zap.String("by", uc.UserID().String()),
	)

	resp := response.BookingToResponse(view)
	return &resp, nil
}

func (s *bookingService) Ticket(ctx context.Context, uc entity.UserContext, id string) (*Ticket, error) {
	view, err := s.ownBooking(ctx, uc, id)
	if err != nil {
		return nil, err
	}
	if view.Status != entity.BookingStatusConfirmed {
		return nil, fmt.Errorf("booking %s is %s: %w", view.OrderID, view.Status, ErrConflict)
	}

	content, err := renderTicket(s.issuer, view)
	if err != nil {
		s.log.Error("Failed to render ticket", zap.String("order_id", view.OrderID), zap.Error(err))
		return nil, fmt.Errorf("render ticket: %w", err)
	}

	return &Ticket{
		Filename: view.OrderID + ".pdf",
		Content:  content,
	}, nil
}
