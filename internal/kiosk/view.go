package kiosk

import (
	"fmt"
	"strings"

	"movie-booking/internal/data/entity"
	"movie-booking/internal/dto/response"
	"movie-booking/internal/flow"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("63"))
	userStyle    = lipgloss.NewStyle().Faint(true)
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("63")).Bold(true)
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(20)
	panelStyle   = lipgloss.NewStyle().
			Padding(1, 2).
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("63"))

	seatAvailable = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	seatBooked    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	seatSelected  = lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true)
	seatCursor    = lipgloss.NewStyle().Reverse(true)
)

var screenHelp = map[flow.Screen]string{
	flow.ScreenGuest:              "up/down move, enter select, l login, r register, m movies, q quit",
	flow.ScreenMainMenu:           "up/down move, enter select, m movies, h bookings, a admin, o logout, q quit",
	flow.ScreenLogin:              "tab next field, enter login, ctrl+r register, ctrl+b back, esc cancel",
	flow.ScreenRegister:           "tab next field, enter register, ctrl+l login, ctrl+b back, esc logout",
	flow.ScreenMovieList:          "up/down move, enter details, backspace back",
	flow.ScreenMovieDetails:       "enter or b book, backspace back",
	flow.ScreenBooking:            "up/down move, enter pick show time, backspace back",
	flow.ScreenSeatSelection:      "arrows move, space toggle seat, enter confirm, backspace back",
	flow.ScreenBookingHistory:     "up/down move, backspace back",
	flow.ScreenAdminPanel:         "enter select, m manage movies, b back",
	flow.ScreenMovieManagement:    "a add, e or enter edit, d delete, s show times, backspace back",
	flow.ScreenEditMovie:          "tab next field, enter save, ctrl+b back",
	flow.ScreenShowtimeManagement: "tab next field, enter add, up/down move, ctrl+d delete, ctrl+b back",
	flow.ScreenSuccess:            "enter or esc to continue",
}

func (m Model) View() string {
	mc := m.machine

	var b strings.Builder
	b.WriteString(headerStyle.Render("Movie Booking · " + mc.Screen().String()))
	b.WriteString("  ")
	b.WriteString(userStyle.Render(who(mc.Context())))
	b.WriteString("\n\n")

	switch mc.Screen() {
	case flow.ScreenGuest, flow.ScreenMainMenu, flow.ScreenAdminPanel:
		b.WriteString(m.viewMenu())
	case flow.ScreenLogin, flow.ScreenRegister:
		b.WriteString(m.viewForm())
	case flow.ScreenMovieList, flow.ScreenMovieManagement:
		b.WriteString(m.viewMovies())
	case flow.ScreenMovieDetails:
		b.WriteString(m.viewMovieDetails())
	case flow.ScreenBooking:
		b.WriteString(m.viewShowTimes("Pick a show time"))
	case flow.ScreenSeatSelection:
		b.WriteString(m.viewSeats())
	case flow.ScreenBookingHistory:
		b.WriteString(m.viewHistory())
	case flow.ScreenEditMovie:
		if mc.Editing() {
			b.WriteString("Edit movie\n\n")
		} else {
			b.WriteString("Add movie (show time optional)\n\n")
		}
		b.WriteString(m.viewForm())
	case flow.ScreenShowtimeManagement:
		b.WriteString(m.viewShowTimes("Show times"))
		b.WriteString("\nNew show time\n")
		b.WriteString(m.viewForm())
	case flow.ScreenSuccess:
		b.WriteString(successStyle.Render(mc.SuccessMessage()))
		b.WriteString("\n")
	}

	if status := mc.Status(); status != "" {
		b.WriteString("\n")
		b.WriteString(statusStyle.Render(status))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(userStyle.Render(screenHelp[mc.Screen()] + ", ctrl+c quit"))

	panel := panelStyle.Render(b.String())
	if m.width > 0 {
		panel = lipgloss.PlaceHorizontal(m.width, lipgloss.Center, panel)
	}
	return panel
}

func who(uc entity.UserContext) string {
	if !uc.IsAuthenticated() {
		return "guest"
	}
	return fmt.Sprintf("%s (%s)", uc.Account.Username, uc.EffectiveRole())
}

// line renders one selectable row with the cursor marker.
func (m Model) line(i int, text string) string {
	if i == m.cursor {
		return cursorStyle.Render("> "+text) + "\n"
	}
	return "  " + text + "\n"
}

func (m Model) viewMenu() string {
	var b strings.Builder
	for i, item := range m.menu() {
		b.WriteString(m.line(i, fmt.Sprintf("[%s] %s", item.key, item.label)))
	}
	return b.String()
}

func (m Model) viewForm() string {
	mc := m.machine
	var b strings.Builder
	for _, f := range mc.Fields() {
		value := mc.Input(f)
		if f == flow.FieldPassword {
			value = strings.Repeat("*", len(value))
		}
		marker := "  "
		if f == mc.Focus() {
			marker = cursorStyle.Render("> ")
			value += "_"
		}
		b.WriteString(marker + labelStyle.Render(f.String()) + value + "\n")
	}
	return b.String()
}

func (m Model) viewMovies() string {
	movies := m.machine.Movies()
	if len(movies) == 0 {
		return "No movies yet.\n"
	}
	var b strings.Builder
	for i, mv := range movies {
		b.WriteString(m.line(i, fmt.Sprintf("%-28s %-12s %4.1f  %10.2f  %3d min",
			mv.Title, mv.Genre, mv.Rating, mv.Price, mv.DurationInMinutes)))
	}
	return b.String()
}

func (m Model) viewMovieDetails() string {
	mv := m.machine.Movie()
	if mv == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(mv.Title) + "\n")
	fmt.Fprintf(&b, "%s · rating %.1f · %d min · %.2f\n", mv.Genre, mv.Rating, mv.DurationInMinutes, mv.Price)
	if mv.Description != "" {
		b.WriteString("\n" + mv.Description + "\n")
	}
	b.WriteString("\nShow times:\n")
	if len(mv.ShowTimes) == 0 {
		b.WriteString("  none scheduled\n")
	}
	for _, st := range mv.ShowTimes {
		b.WriteString("  " + formatShowTime(st) + "\n")
	}
	return b.String()
}

func (m Model) viewShowTimes(title string) string {
	mv := m.machine.Movie()
	if mv == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(title + " for " + mv.Title + "\n\n")
	if len(mv.ShowTimes) == 0 {
		b.WriteString("  none scheduled\n")
	}
	for i, st := range mv.ShowTimes {
		b.WriteString(m.line(i, formatShowTime(st)))
	}
	return b.String()
}

func (m Model) viewSeats() string {
	mc := m.machine
	sm := mc.SeatMap()
	if sm == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s · %s\n\n", sm.MovieTitle, formatShowTime(sm.ShowTime))
	b.WriteString("          SCREEN\n\n")
	for _, row := range groupSeats(sm.Seats) {
		b.WriteString(row.label + "  ")
		for _, i := range row.index {
			b.WriteString(m.seatCell(i, sm.Seats[i]) + " ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n" + seatAvailable.Render("[A1] free") + "  " +
		seatBooked.Render("[XX] booked") + "  " + seatSelected.Render("[**] selected") + "  {A1} couple\n")
	if codes := mc.SelectedSeats(); len(codes) > 0 {
		fmt.Fprintf(&b, "\nSelected: %s  Total: %.2f\n", strings.Join(codes, ", "), mc.SelectionTotal())
	}
	return b.String()
}

func (m Model) seatCell(i int, s response.SeatResponse) string {
	lb, rb := "[", "]"
	if s.Kind == entity.SeatCouple {
		lb, rb = "{", "}"
	}

	var cell string
	switch {
	case s.Status != entity.SeatAvailable:
		cell = seatBooked.Render(lb + "XX" + rb)
	case m.machine.IsSelected(s.Code):
		cell = seatSelected.Render(lb + s.Code + rb)
	default:
		cell = seatAvailable.Render(lb + s.Code + rb)
	}
	if i == m.cursor {
		cell = seatCursor.Render(cell)
	}
	return cell
}

func (m Model) viewHistory() string {
	history := m.machine.History()
	if len(history) == 0 {
		return "You have no bookings yet.\n"
	}
	var b strings.Builder
	for i, bk := range history {
		b.WriteString(m.line(i, fmt.Sprintf("%-14s %-24s %s  %-12s %10.2f  %s",
			bk.OrderID, bk.MovieTitle, formatShowTime(bk.ShowTime),
			strings.Join(bk.Seats, ","), bk.TotalPrice, bk.Status)))
	}
	return b.String()
}

func formatShowTime(st response.ShowTimeResponse) string {
	return fmt.Sprintf("%s %s-%s", st.Date, st.StartTime, st.EndTime)
}
