package flow

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"movie-booking/internal/access"
	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/request"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/usecase"
	"movie-booking/pkg/utils"

	"go.uber.org/zap"
)

const (
	maxInputLength = 255

	msgLoginEmpty      = "Please enter both username and password"
	msgLoginFailed     = "Invalid credentials"
	msgRegisterEmpty   = "Please fill all fields"
	msgRegistered      = "Registration successful! You can now login."
	msgAdminOnly       = "Access denied: Admin privileges required!"
	msgAccessDenied    = "Access denied"
	msgLoginToBook     = "Please login to book tickets"
	msgNoShowTimes     = "No show times available for this movie"
	msgNoSeats         = "Please select at least one seat"
	msgTitleGenre      = "Error: Title and Genre are required!"
	msgShowTimeMissing = "Please fill date, start time and end time"
	msgBadPrice        = "Error: Price must be a non-negative number"
	msgBadDuration     = "Error: Duration must be a whole number of minutes"
)

// Machine holds every piece of kiosk state. It is not safe for concurrent use;
// a front-end drives it from a single loop.
type Machine struct {
	ports Ports
	log   *zap.Logger
	uc    entity.UserContext

	screen   Screen
	previous Screen

	focus  Field
	inputs map[Field]string

	status  string
	success string

	movies    []response.MovieResponse
	movie     *response.MovieDetailResponse
	showTime  *response.ShowTimeResponse
	seatMap   *response.SeatMapResponse
	selected  map[string]bool
	history   []response.BookingResponse
	editingID string
}

// New starts on the guest screen with a guest context.
func New(ports Ports, log *zap.Logger) *Machine {
	return &Machine{
		ports:    ports,
		log:      log.With(zap.String("component", "flow")),
		uc:       entity.GuestContext(),
		screen:   ScreenGuest,
		previous: ScreenGuest,
		inputs:   map[Field]string{},
		selected: map[string]bool{},
	}
}

func (m *Machine) Screen() Screen { return m.screen }

// Previous is where the success screen returns to.
func (m *Machine) Previous() Screen { return m.previous }

func (m *Machine) Context() entity.UserContext { return m.uc }

func (m *Machine) Focus() Field { return m.focus }

func (m *Machine) Input(f Field) string { return m.inputs[f] }

func (m *Machine) Status() string { return m.status }

func (m *Machine) SuccessMessage() string { return m.success }

func (m *Machine) Movies() []response.MovieResponse { return m.movies }

// Movie is the movie opened from the list, with its show times.
func (m *Machine) Movie() *response.MovieDetailResponse { return m.movie }

func (m *Machine) ShowTime() *response.ShowTimeResponse { return m.showTime }

func (m *Machine) SeatMap() *response.SeatMapResponse { return m.seatMap }

func (m *Machine) History() []response.BookingResponse { return m.history }

// Editing reports whether EditMovie changes an existing movie rather than adding one.
func (m *Machine) Editing() bool { return m.editingID != "" }

// Fields is the tab order of the current screen's inputs.
func (m *Machine) Fields() []Field {
	if m.screen == ScreenEditMovie && m.editingID != "" {
		return movieFields
	}
	return screenFields[m.screen]
}

func (m *Machine) IsSelected(code string) bool { return m.selected[code] }

// SelectedSeats returns the chosen seat codes in seat map order.
func (m *Machine) SelectedSeats() []string {
	var codes []string
	if m.seatMap != nil {
		for _, s := range m.seatMap.Seats {
			if m.selected[s.Code] {
				codes = append(codes, s.Code)
			}
		}
	}
	return codes
}

// SelectionTotal is what the current selection would cost.
func (m *Machine) SelectionTotal() float64 {
	if m.seatMap == nil {
		return 0
	}
	var total float64
	for _, s := range m.seatMap.Seats {
		if !m.selected[s.Code] {
			continue
		}
		seat := entity.Seat{Kind: s.Kind, Price: s.Price}
		total += seat.LinePrice(m.seatMap.BasePrice)
	}
	return total
}

// Type appends printable ASCII to the focused input.
func (m *Machine) Type(r rune) {
	if m.focus == FieldNone || r < 0x20 || r > 0x7e {
		return
	}
	if len(m.inputs[m.focus]) >= maxInputLength {
		return
	}
	m.inputs[m.focus] += string(r)
}

// Backspace removes the last character of the focused input.
func (m *Machine) Backspace() {
	if m.focus == FieldNone {
		return
	}
	v := []rune(m.inputs[m.focus])
	if len(v) > 0 {
		m.inputs[m.focus] = string(v[:len(v)-1])
	}
}

// NextField moves focus along the screen's tab order, wrapping around.
func (m *Machine) NextField() {
	fields := m.Fields()
	if len(fields) == 0 {
		return
	}
	for i, f := range fields {
		if f == m.focus {
			m.focus = fields[(i+1)%len(fields)]
			return
		}
	}
	m.focus = fields[0]
}

// FocusField puts focus on f if the current screen has it.
func (m *Machine) FocusField(f Field) {
	for _, field := range m.Fields() {
		if field == f {
			m.focus = f
			return
		}
	}
}

// Handle applies one event to the current screen.
func (m *Machine) Handle(ctx context.Context, ev Event) {
	if ev.Action == ActionEscape {
		m.escape(ctx)
		return
	}

	m.status = ""

	switch m.screen {
	case ScreenGuest:
		m.onGuest(ctx, ev)
	case ScreenLogin:
		m.onLogin(ctx, ev)
	case ScreenRegister:
		m.onRegister(ctx, ev)
	case ScreenMainMenu:
		m.onMainMenu(ctx, ev)
	case ScreenMovieList:
		m.onMovieList(ctx, ev)
	case ScreenMovieDetails:
		m.onMovieDetails(ctx, ev)
	case ScreenBooking:
		m.onBooking(ctx, ev)
	case ScreenSeatSelection:
		m.onSeatSelection(ctx, ev)
	case ScreenBookingHistory:
		if ev.Action == ActionBack {
			m.enter(ctx, ScreenMainMenu)
		}
	case ScreenAdminPanel:
		m.onAdminPanel(ctx, ev)
	case ScreenMovieManagement:
		m.onMovieManagement(ctx, ev)
	case ScreenEditMovie:
		m.onEditMovie(ctx, ev)
	case ScreenShowtimeManagement:
		m.onShowtimeManagement(ctx, ev)
	case ScreenSuccess:
		if ev.Action == ActionDismiss || ev.Action == ActionSubmit || ev.Action == ActionBack {
			m.dismiss(ctx)
		}
	}
}

// escape logs out from anywhere except the login and success screens.
func (m *Machine) escape(ctx context.Context) {
	m.status = ""
	switch m.screen {
	case ScreenSuccess:
		m.dismiss(ctx)
	case ScreenLogin:
		m.enter(ctx, ScreenGuest)
	default:
		m.logout(ctx)
	}
}

func (m *Machine) dismiss(ctx context.Context) {
	m.success = ""
	m.enter(ctx, m.previous)
}

// enter switches to screen after checking the caller may see it, and loads
// the data the screen shows. It reports whether the switch happened.
func (m *Machine) enter(ctx context.Context, screen Screen) bool {
	if c, ok := screenCapability[screen]; ok && !access.Allowed(m.uc.EffectiveRole(), c) {
		if c == access.ManageMovies {
			m.status = msgAdminOnly
		} else {
			m.status = msgAccessDenied
		}
		return false
	}

	switch screen {
	case ScreenMovieList, ScreenMovieManagement:
		if !m.loadMovies(ctx) {
			return false
		}
	case ScreenBookingHistory:
		if !m.loadHistory(ctx) {
			return false
		}
	case ScreenSeatSelection:
		m.selected = map[string]bool{}
	}

	if _, isForm := screenFields[screen]; isForm && screen != m.screen {
		m.clearInputs()
	}
	m.screen = screen
	m.focus = FieldNone
	if fields := screenFields[screen]; len(fields) > 0 {
		m.focus = fields[0]
	}
	return true
}

// showSuccess opens the success screen; dismissing it goes to back.
func (m *Machine) showSuccess(msg string, back Screen) {
	m.success = msg
	m.previous = back
	m.screen = ScreenSuccess
	m.focus = FieldNone
}

func (m *Machine) clearInputs() {
	m.inputs = map[Field]string{}
}

func (m *Machine) home() Screen {
	if m.uc.IsAuthenticated() {
		return ScreenMainMenu
	}
	return ScreenGuest
}

func (m *Machine) onGuest(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionGoLogin:
		m.enter(ctx, ScreenLogin)
	case ActionGoRegister:
		m.enter(ctx, ScreenRegister)
	case ActionBrowseMovies:
		m.enter(ctx, ScreenMovieList)
	}
}

func (m *Machine) onLogin(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionSubmit:
		m.login(ctx)
	case ActionGoRegister:
		m.enter(ctx, ScreenRegister)
	case ActionBack:
		m.enter(ctx, ScreenGuest)
	}
}

func (m *Machine) login(ctx context.Context) {
	username := strings.TrimSpace(m.inputs[FieldUsername])
	password := m.inputs[FieldPassword]
	if username == "" || password == "" {
		m.status = msgLoginEmpty
		return
	}

	auth, err := m.ports.Auth.Login(ctx, m.uc, &request.LoginRequest{Identifier: username, Password: password},
		request.ClientInfo{UserAgent: "kiosk"})
	if err != nil {
		if !errors.Is(err, usecase.ErrInvalidCredentials) {
			m.log.Warn("Login failed", zap.Error(err))
		}
		m.status = msgLoginFailed
		m.inputs[FieldPassword] = ""
		return
	}

	uc, err := m.ports.Auth.ResolveContext(ctx, auth.Token)
	if err != nil {
		m.log.Error("Session not usable after login", zap.Error(err))
		m.status = msgLoginFailed
		return
	}

	m.uc = uc
	m.clearInputs()
	m.enter(ctx, ScreenMainMenu)
	m.status = fmt.Sprintf("Welcome, %s!", auth.User.Username)
}

func (m *Machine) onRegister(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionSubmit:
		m.register(ctx)
	case ActionBack:
		m.enter(ctx, ScreenGuest)
	case ActionGoLogin:
		m.enter(ctx, ScreenLogin)
	}
}

func (m *Machine) register(ctx context.Context) {
	req := &request.RegisterRequest{
		Username: strings.TrimSpace(m.inputs[FieldUsername]),
		Password: m.inputs[FieldPassword],
		Email:    strings.TrimSpace(m.inputs[FieldEmail]),
		Phone:    strings.TrimSpace(m.inputs[FieldPhone]),
	}
	if req.Username == "" || req.Password == "" || req.Email == "" || req.Phone == "" {
		m.status = msgRegisterEmpty
		return
	}

	if _, err := m.ports.Auth.Register(ctx, m.uc, req); err != nil {
		m.status = m.describe(err, "Registration failed")
		return
	}

	m.enter(ctx, ScreenLogin)
	m.inputs[FieldUsername] = req.Username
	m.focus = FieldPassword
	m.status = msgRegistered
}

func (m *Machine) onMainMenu(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionBrowseMovies:
		m.enter(ctx, ScreenMovieList)
	case ActionHistory:
		m.enter(ctx, ScreenBookingHistory)
	case ActionAdminPanel:
		m.enter(ctx, ScreenAdminPanel)
	case ActionLogout:
		m.logout(ctx)
	}
}

// logout ends the session and returns to the guest screen. A failed revoke is
// logged; locally the caller is a guest either way.
func (m *Machine) logout(ctx context.Context) {
	if m.uc.IsAuthenticated() {
		if err := m.ports.Auth.Logout(ctx, m.uc); err != nil {
			m.log.Warn("Logout failed", zap.Error(err))
		}
	}

	m.uc = entity.GuestContext()
	m.movie, m.showTime, m.seatMap, m.history = nil, nil, nil, nil
	m.selected = map[string]bool{}
	m.editingID = ""
	m.success = ""
	m.previous = ScreenGuest
	m.clearInputs()
	m.enter(ctx, ScreenGuest)
}

// Logout ends the session from any screen. Front-ends call it on exit.
func (m *Machine) Logout(ctx context.Context) {
	m.logout(ctx)
}

func (m *Machine) onMovieList(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionSelect:
		if ev.Index < 0 || ev.Index >= len(m.movies) {
			return
		}
		if m.loadMovie(ctx, m.movies[ev.Index].ID) {
			m.enter(ctx, ScreenMovieDetails)
		}
	case ActionBack:
		m.enter(ctx, m.home())
	}
}

func (m *Machine) onMovieDetails(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionBook:
		if !m.uc.IsAuthenticated() {
			m.enter(ctx, ScreenLogin)
			m.status = msgLoginToBook
			return
		}
		if m.movie == nil || len(m.movie.ShowTimes) == 0 {
			m.status = msgNoShowTimes
			return
		}
		m.enter(ctx, ScreenBooking)
	case ActionBack:
		m.enter(ctx, ScreenMovieList)
	}
}

func (m *Machine) onBooking(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionSelect:
		if m.movie == nil || ev.Index < 0 || ev.Index >= len(m.movie.ShowTimes) {
			return
		}
		st := m.movie.ShowTimes[ev.Index]
		if !m.loadSeatMap(ctx, st.ID) {
			return
		}
		m.showTime = &st
		m.enter(ctx, ScreenSeatSelection)
	case ActionBack:
		m.enter(ctx, ScreenMovieDetails)
	}
}

func (m *Machine) onSeatSelection(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionToggleSeat:
		if m.seatMap == nil || ev.Index < 0 || ev.Index >= len(m.seatMap.Seats) {
			return
		}
		seat := m.seatMap.Seats[ev.Index]
		if seat.Status != entity.SeatAvailable {
			m.status = fmt.Sprintf("Seat %s is already booked", seat.Code)
			return
		}
		if m.selected[seat.Code] {
			delete(m.selected, seat.Code)
		} else {
			m.selected[seat.Code] = true
		}
	case ActionConfirm, ActionSubmit:
		m.confirmBooking(ctx)
	case ActionBack:
		m.selected = map[string]bool{}
		m.enter(ctx, ScreenBooking)
	}
}

func (m *Machine) confirmBooking(ctx context.Context) {
	codes := m.SelectedSeats()
	if len(codes) == 0 {
		m.status = msgNoSeats
		return
	}

	booking, err := m.ports.Bookings.CreateBooking(ctx, m.uc, &request.BookingRequest{
		ShowTimeID: m.showTime.ID,
		Seats:      codes,
	})
	if err != nil {
		m.status = m.describe(err, "Booking failed")
		if errors.Is(err, usecase.ErrSeatUnavailable) {
			m.loadSeatMap(ctx, m.showTime.ID)
			m.selected = map[string]bool{}
		}
		return
	}

	m.selected = map[string]bool{}
	m.showSuccess(fmt.Sprintf("Booking confirmed! Order %s: %s for %s, total %.2f",
		booking.OrderID, strings.Join(booking.Seats, ", "), booking.MovieTitle, booking.TotalPrice), ScreenMainMenu)
}

func (m *Machine) onAdminPanel(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionManageMovies:
		m.enter(ctx, ScreenMovieManagement)
	case ActionBack:
		m.enter(ctx, ScreenMainMenu)
	}
}

func (m *Machine) onMovieManagement(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionAdd:
		m.editingID = ""
		m.enter(ctx, ScreenEditMovie)
	case ActionEdit:
		if ev.Index < 0 || ev.Index >= len(m.movies) {
			return
		}
		mv := m.movies[ev.Index]
		if !m.enter(ctx, ScreenEditMovie) {
			return
		}
		m.editingID = mv.ID
		m.inputs[FieldTitle] = mv.Title
		m.inputs[FieldGenre] = mv.Genre
		m.inputs[FieldDescription] = mv.Description
		m.inputs[FieldPrice] = strconv.FormatFloat(mv.Price, 'f', -1, 64)
		m.inputs[FieldRating] = strconv.FormatFloat(mv.Rating, 'f', -1, 64)
		m.inputs[FieldDuration] = strconv.Itoa(mv.DurationInMinutes)
	case ActionDelete:
		if ev.Index < 0 || ev.Index >= len(m.movies) {
			return
		}
		mv := m.movies[ev.Index]
		if err := m.ports.Manager.DeleteMovie(ctx, m.uc, mv.ID); err != nil {
			m.status = m.describe(err, "Delete failed")
			return
		}
		m.loadMovies(ctx)
		m.status = fmt.Sprintf("Movie %q deleted", mv.Title)
	case ActionShowtimes:
		if ev.Index < 0 || ev.Index >= len(m.movies) {
			return
		}
		if m.loadMovie(ctx, m.movies[ev.Index].ID) {
			m.enter(ctx, ScreenShowtimeManagement)
		}
	case ActionBack:
		m.enter(ctx, ScreenAdminPanel)
	}
}

func (m *Machine) onEditMovie(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionSubmit:
		m.saveMovie(ctx)
	case ActionBack:
		m.editingID = ""
		m.enter(ctx, ScreenMovieManagement)
	}
}

type movieForm struct {
	title       string
	genre       string
	description string
	price       float64
	rating      float64
	duration    int
}

// readMovieForm parses the EditMovie inputs. On failure it returns the status
// message to show. An unparsable or out-of-range rating falls back to the default.
func (m *Machine) readMovieForm() (movieForm, string) {
	form := movieForm{
		title:       strings.TrimSpace(m.inputs[FieldTitle]),
		genre:       strings.TrimSpace(m.inputs[FieldGenre]),
		description: strings.TrimSpace(m.inputs[FieldDescription]),
		rating:      entity.DefaultRating,
	}
	if form.title == "" || form.genre == "" {
		return form, msgTitleGenre
	}

	if raw := strings.TrimSpace(m.inputs[FieldPrice]); raw != "" {
		price, err := strconv.ParseFloat(raw, 64)
		if err != nil || price < 0 {
			return form, msgBadPrice
		}
		form.price = price
	}

	if raw := strings.TrimSpace(m.inputs[FieldRating]); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			form.rating = entity.ClampRating(v)
		}
	}

	if raw := strings.TrimSpace(m.inputs[FieldDuration]); raw != "" {
		duration, err := strconv.Atoi(raw)
		if err != nil || duration < 0 {
			return form, msgBadDuration
		}
		form.duration = duration
	}

	return form, ""
}

func (m *Machine) showTimeForm() (*request.ShowTimeRequest, bool) {
	st := &request.ShowTimeRequest{
		Date:      strings.TrimSpace(m.inputs[FieldDate]),
		StartTime: strings.TrimSpace(m.inputs[FieldStartTime]),
		EndTime:   strings.TrimSpace(m.inputs[FieldEndTime]),
	}
	return st, st.Date != "" || st.StartTime != "" || st.EndTime != ""
}

func (m *Machine) saveMovie(ctx context.Context) {
	form, msg := m.readMovieForm()
	if msg != "" {
		m.status = msg
		return
	}

	if m.editingID != "" {
		_, err := m.ports.Manager.UpdateMovie(ctx, m.uc, m.editingID, &request.MovieUpdateRequest{
			Title:             &form.title,
			Genre:             &form.genre,
			Description:       &form.description,
			Price:             &form.price,
			Rating:            &form.rating,
			DurationInMinutes: &form.duration,
		})
		if err != nil {
			m.status = m.describe(err, "Update failed")
			return
		}
		m.editingID = ""
		m.showSuccess(fmt.Sprintf("Movie %q updated successfully!", form.title), ScreenMovieManagement)
		return
	}

	req := &request.MovieRequest{
		Title:             form.title,
		Genre:             form.genre,
		Description:       form.description,
		Price:             form.price,
		Rating:            &form.rating,
		DurationInMinutes: form.duration,
	}
	if st, ok := m.showTimeForm(); ok {
		if st.Date == "" || st.StartTime == "" || st.EndTime == "" {
			m.status = msgShowTimeMissing
			return
		}
		req.ShowTimes = []request.ShowTimeRequest{*st}
	}

	if _, err := m.ports.Manager.AddMovie(ctx, m.uc, req); err != nil {
		m.status = m.describe(err, "Add failed")
		return
	}
	m.showSuccess(fmt.Sprintf("Movie %q added successfully!", form.title), ScreenMovieManagement)
}

func (m *Machine) onShowtimeManagement(ctx context.Context, ev Event) {
	switch ev.Action {
	case ActionSubmit, ActionAdd:
		if m.movie == nil {
			return
		}
		st, _ := m.showTimeForm()
		if st.Date == "" || st.StartTime == "" || st.EndTime == "" {
			m.status = msgShowTimeMissing
			return
		}
		added, err := m.ports.Manager.AddShowTime(ctx, m.uc, m.movie.ID, st)
		if err != nil {
			m.status = m.describe(err, "Add show time failed")
			return
		}
		m.clearInputs()
		m.focus = FieldDate
		m.loadMovie(ctx, m.movie.ID)
		m.status = fmt.Sprintf("Show time %s %s-%s added", added.Date, added.StartTime, added.EndTime)
	case ActionDelete:
		if m.movie == nil || ev.Index < 0 || ev.Index >= len(m.movie.ShowTimes) {
			return
		}
		st := m.movie.ShowTimes[ev.Index]
		if err := m.ports.Manager.DeleteShowTime(ctx, m.uc, m.movie.ID, st.ID); err != nil {
			m.status = m.describe(err, "Delete show time failed")
			return
		}
		m.loadMovie(ctx, m.movie.ID)
		m.status = fmt.Sprintf("Show time %s %s-%s deleted", st.Date, st.StartTime, st.EndTime)
	case ActionBack:
		m.enter(ctx, ScreenMovieManagement)
	}
}

// collectPages fetches pages from 1 until the last one reported.
func collectPages[T any](fetch func(page int) (*response.PaginatedResponse[T], error)) ([]T, error) {
	var all []T
	for page := 1; ; page++ {
		resp, err := fetch(page)
		if err != nil {
			return nil, err
		}
		all = append(all, resp.Data...)
		if len(resp.Data) == 0 || page >= resp.Pagination.TotalPages {
			return all, nil
		}
	}
}

func (m *Machine) loadMovies(ctx context.Context) bool {
	movies, err := collectPages(func(page int) (*response.PaginatedResponse[response.MovieResponse], error) {
		return m.ports.Catalog.ListMovies(ctx, m.uc, request.MovieListRequest{
			PaginatedRequest: request.PaginatedRequest{Page: page, PerPage: utils.MaxPerPage},
		})
	})
	if err != nil {
		m.status = m.describe(err, "Could not load movies")
		return false
	}
	m.movies = movies
	return true
}

func (m *Machine) loadMovie(ctx context.Context, id string) bool {
	movie, err := m.ports.Catalog.GetMovie(ctx, m.uc, id)
	if err != nil {
		m.status = m.describe(err, "Could not load movie")
		return false
	}
	m.movie = movie
	return true
}

func (m *Machine) loadSeatMap(ctx context.Context, showTimeID string) bool {
	seatMap, err := m.ports.Bookings.SeatMap(ctx, m.uc, showTimeID)
	if err != nil {
		m.status = m.describe(err, "Could not load seats")
		return false
	}
	m.seatMap = seatMap
	return true
}

func (m *Machine) loadHistory(ctx context.Context) bool {
	history, err := collectPages(func(page int) (*response.PaginatedResponse[response.BookingResponse], error) {
		return m.ports.Bookings.History(ctx, m.uc, request.PaginatedRequest{Page: page, PerPage: utils.MaxPerPage})
	})
	if err != nil {
		m.status = m.describe(err, "Could not load bookings")
		return false
	}
	m.history = history
	return true
}

// describe turns a service error into a one-line status message.
func (m *Machine) describe(err error, prefix string) string {
	var verr *usecase.ValidationError
	switch {
	case errors.As(err, &verr):
		return prefix + ": " + utils.FormatValidationErrors(verr.Fields)
	case errors.Is(err, usecase.ErrForbidden):
		return msgAccessDenied
	case errors.Is(err, usecase.ErrUnauthenticated):
		return "Your session has expired, please login again"
	case errors.Is(err, usecase.ErrConflict),
		errors.Is(err, usecase.ErrSeatUnavailable),
		errors.Is(err, usecase.ErrShowStarted),
		errors.Is(err, usecase.ErrNotFound):
		return prefix + ": " + err.Error()
	default:
		m.log.Error(prefix, zap.Error(err))
		return prefix + ": please try again"
	}
}
