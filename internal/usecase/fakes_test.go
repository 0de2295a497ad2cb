package usecase

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/data/repository"
	"movie-booking/internal/event"

	"github.com/google/uuid"
)

// memStore backs every fake repository with maps guarded by one mutex.
type memStore struct {
	mu        sync.Mutex
	users     map[uuid.UUID]*entity.User
	sessions  map[uuid.UUID]*entity.Session
	movies    map[uuid.UUID]*entity.Movie
	showTimes map[uuid.UUID]*entity.ShowTime
	seats     []*entity.Seat
	bookings  map[uuid.UUID]*entity.Booking
	active    map[uuid.UUID]map[uuid.UUID]bool // showtime -> seat

	// createMovieErr makes the next movie create fail without writing anything.
	createMovieErr error
}

func newMemStore() *memStore {
	s := &memStore{
		users:     map[uuid.UUID]*entity.User{},
		sessions:  map[uuid.UUID]*entity.Session{},
		movies:    map[uuid.UUID]*entity.Movie{},
		showTimes: map[uuid.UUID]*entity.ShowTime{},
		bookings:  map[uuid.UUID]*entity.Booking{},
		active:    map[uuid.UUID]map[uuid.UUID]bool{},
	}
	for _, code := range []string{"A1", "A2", "A3", "B1", "B2"} {
		seat, _ := entity.NewSeat(code, entity.SeatSingle, 0)
		s.seats = append(s.seats, seat)
	}
	couple, _ := entity.NewSeat("F1", entity.SeatCouple, 10000)
	s.seats = append(s.seats, couple)
	return s
}

func (s *memStore) repository() *repository.Repository {
	return &repository.Repository{
		User:     &fakeUserRepo{s},
		Session:  &fakeSessionRepo{s},
		Movie:    &fakeMovieRepo{s},
		ShowTime: &fakeShowTimeRepo{s},
		Seat:     &fakeSeatRepo{s},
		Booking:  &fakeBookingRepo{s},
	}
}

type fakeUserRepo struct{ s *memStore }

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == user.Username || strings.EqualFold(u.Email, user.Email) {
			return repository.ErrDuplicate
		}
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if u, ok := r.s.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) find(match func(*entity.User) bool) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return strings.EqualFold(u.Email, email) })
}

func (r *fakeUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	return r.find(func(u *entity.User) bool { return u.Username == username })
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *user
	r.s.users[user.ID] = &cp
	return nil
}

type fakeSessionRepo struct{ s *memStore }

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *session
	r.s.sessions[session.Token] = &cp
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	id, err := uuid.Parse(token)
	if err != nil {
		return nil, nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sess, ok := r.s.sessions[id]; ok && sess.Active(time.Now()) {
		cp := *sess
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	id, err := uuid.Parse(token)
	if err != nil {
		return repository.ErrNotFound
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sess, ok := r.s.sessions[id]
	if !ok || sess.RevokedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	sess.RevokedAt = &now
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	now := time.Now()
	for _, sess := range r.s.sessions {
		if sess.UserID == userID && sess.RevokedAt == nil {
			sess.RevokedAt = &now
		}
	}
	return nil
}

func (r *fakeSessionRepo) CleanExpiredSessions(_ context.Context) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for token, sess := range r.s.sessions {
		if !sess.Active(time.Now()) {
			delete(r.s.sessions, token)
			n++
		}
	}
	return n, nil
}

type fakeMovieRepo struct{ s *memStore }

func (r *fakeMovieRepo) Create(_ context.Context, movie *entity.Movie, showTimes []*entity.ShowTime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.createMovieErr; err != nil {
		r.s.createMovieErr = nil
		return err
	}
	cp := *movie
	r.s.movies[movie.ID] = &cp
	for _, st := range showTimes {
		stc := *st
		r.s.showTimes[st.ID] = &stc
	}
	return nil
}

func (r *fakeMovieRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.movies[id]; ok && m.DeletedAt == nil {
		cp := *m
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeMovieRepo) filtered(filter repository.MovieFilter) []*entity.Movie {
	var out []*entity.Movie
	for _, m := range r.s.movies {
		if m.DeletedAt != nil {
			continue
		}
		if filter.Genre != "" && !strings.EqualFold(m.Genre, filter.Genre) {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(m.Title), strings.ToLower(filter.Search)) {
			continue
		}
		cp := *m
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

func (r *fakeMovieRepo) FindAll(_ context.Context, filter repository.MovieFilter) ([]*entity.Movie, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.filtered(filter)
	if filter.Offset >= len(all) {
		return nil, nil
	}
	all = all[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(all) {
		all = all[:filter.Limit]
	}
	return all, nil
}

func (r *fakeMovieRepo) CountAll(_ context.Context, filter repository.MovieFilter) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.filtered(filter))), nil
}

func (r *fakeMovieRepo) Update(_ context.Context, movie *entity.Movie) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if m, ok := r.s.movies[movie.ID]; !ok || m.DeletedAt != nil {
		return repository.ErrNotFound
	}
	cp := *movie
	r.s.movies[movie.ID] = &cp
	return nil
}

func (r *fakeMovieRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m, ok := r.s.movies[id]
	if !ok || m.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	m.DeletedAt = &now
	for _, st := range r.s.showTimes {
		if st.MovieID == id && st.DeletedAt == nil {
			st.DeletedAt = &now
		}
	}
	return nil
}

type fakeShowTimeRepo struct{ s *memStore }

func (r *fakeShowTimeRepo) Create(_ context.Context, st *entity.ShowTime) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *st
	r.s.showTimes[st.ID] = &cp
	return nil
}

func (r *fakeShowTimeRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.ShowTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if st, ok := r.s.showTimes[id]; ok && st.DeletedAt == nil {
		cp := *st
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeShowTimeRepo) FindByMovieID(_ context.Context, movieID uuid.UUID) ([]*entity.ShowTime, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ShowTime
	for _, st := range r.s.showTimes {
		if st.MovieID == movieID && st.DeletedAt == nil {
			cp := *st
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out, nil
}

func (r *fakeShowTimeRepo) Delete(_ context.Context, movieID, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	st, ok := r.s.showTimes[id]
	if !ok || st.MovieID != movieID || st.DeletedAt != nil {
		return repository.ErrNotFound
	}
	now := time.Now()
	st.DeletedAt = &now
	return nil
}

type fakeSeatRepo struct{ s *memStore }

func (r *fakeSeatRepo) FindAll(_ context.Context) ([]*entity.Seat, error) {
	out := make([]*entity.Seat, 0, len(r.s.seats))
	for _, seat := range r.s.seats {
		cp := *seat
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeSeatRepo) FindByCodes(_ context.Context, codes []string) ([]*entity.Seat, error) {
	var out []*entity.Seat
	for _, code := range codes {
		for _, seat := range r.s.seats {
			if seat.Code == code {
				cp := *seat
				out = append(out, &cp)
			}
		}
	}
	return out, nil
}

func (r *fakeSeatRepo) FindByBookingIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID][]entity.Seat, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make(map[uuid.UUID][]entity.Seat, len(ids))
	for _, id := range ids {
		if b, ok := r.s.bookings[id]; ok {
			out[id] = append([]entity.Seat(nil), b.Seats...)
		}
	}
	return out, nil
}

type fakeBookingRepo struct{ s *memStore }

func (r *fakeBookingRepo) Create(_ context.Context, booking *entity.Booking) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	taken := r.s.active[booking.ShowTimeID]
	for _, seat := range booking.Seats {
		if taken[seat.ID] {
			return repository.ErrSeatTaken
		}
	}
	if taken == nil {
		taken = map[uuid.UUID]bool{}
		r.s.active[booking.ShowTimeID] = taken
	}
	for _, seat := range booking.Seats {
		taken[seat.ID] = true
	}
	cp := *booking
	cp.Seats = append([]entity.Seat(nil), booking.Seats...)
	r.s.bookings[booking.ID] = &cp
	return nil
}

func (r *fakeBookingRepo) view(b *entity.Booking) *entity.BookingView {
	st := r.s.showTimes[b.ShowTimeID]
	m := r.s.movies[st.MovieID]
	v := &entity.BookingView{
		Booking:    *b,
		MovieID:    m.ID,
		MovieTitle: m.Title,
		ShowTime:   *st,
	}
	v.Seats = append([]entity.Seat(nil), b.Seats...)
	return v
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.BookingView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if b, ok := r.s.bookings[id]; ok {
		return r.view(b), nil
	}
	return nil, nil
}

func (r *fakeBookingRepo) byUser(userID uuid.UUID) []*entity.Booking {
	var out []*entity.Booking
	for _, b := range r.s.bookings {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *fakeBookingRepo) FindByUserID(_ context.Context, userID uuid.UUID, limit, offset int) ([]*entity.BookingView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	all := r.byUser(userID)
	if offset >= len(all) {
		return nil, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	views := make([]*entity.BookingView, 0, len(all))
	for _, b := range all {
		views = append(views, r.view(b))
	}
	return views, nil
}

func (r *fakeBookingRepo) CountByUserID(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return int64(len(r.byUser(userID))), nil
}

func (r *fakeBookingRepo) BookedSeatIDs(_ context.Context, showTimeID uuid.UUID) (map[uuid.UUID]bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := map[uuid.UUID]bool{}
	for id, ok := range r.s.active[showTimeID] {
		if ok {
			out[id] = true
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.bookings[id]
	if !ok || b.Status != entity.BookingStatusConfirmed {
		return repository.ErrNotFound
	}
	b.Status = entity.BookingStatusCancelled
	for _, seat := range b.Seats {
		delete(r.s.active[b.ShowTimeID], seat.ID)
	}
	return nil
}

// recordingPublisher keeps every published event.
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.BookingCreated
	err    error
}

func (p *recordingPublisher) PublishBookingCreated(_ context.Context, e event.BookingCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
