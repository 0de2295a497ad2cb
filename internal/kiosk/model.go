// Package kiosk is the terminal front-end of the booking flow. It maps key
// presses to flow events and renders the machine state with lipgloss.
package kiosk

import (
	"context"

	"movie-booking/internal/dto/response"
	"movie-booking/internal/flow"

	tea "github.com/charmbracelet/bubbletea"
)

type menuItem struct {
	key    string
	label  string
	action flow.Action
	quit   bool
}

// Model is the bubbletea model. All service calls go through the machine and
// run on the update loop.
type Model struct {
	ctx     context.Context
	machine *flow.Machine
	cursor  int
	width   int
}

func New(ctx context.Context, machine *flow.Machine) Model {
	return Model{ctx: ctx, machine: machine}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, m.quit()
		}
		before := m.machine.Screen()
		cmd := m.handleKey(msg)
		if m.machine.Screen() != before {
			m.cursor = 0
		}
		m.clampCursor()
		return m, cmd
	}
	return m, nil
}

func (m *Model) quit() tea.Cmd {
	if m.machine.Context().IsAuthenticated() {
		m.machine.Logout(m.ctx)
	}
	return tea.Quit
}

func (m *Model) send(action flow.Action, index int) {
	m.machine.Handle(m.ctx, flow.Event{Action: action, Index: index})
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyEsc {
		m.send(flow.ActionEscape, 0)
		return nil
	}

	switch screen := m.machine.Screen(); {
	case screen == flow.ScreenSuccess:
		if msg.Type == tea.KeyEnter || msg.Type == tea.KeySpace {
			m.send(flow.ActionDismiss, 0)
		}
		return nil
	case screen == flow.ScreenSeatSelection:
		m.seatKey(msg)
		return nil
	case len(m.machine.Fields()) > 0:
		m.formKey(msg)
		return nil
	default:
		return m.listKey(msg)
	}
}

func (m *Model) formKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.machine.Type(r)
		}
	case tea.KeySpace:
		m.machine.Type(' ')
	case tea.KeyBackspace:
		m.machine.Backspace()
	case tea.KeyTab:
		m.machine.NextField()
	case tea.KeyEnter:
		m.send(flow.ActionSubmit, 0)
	case tea.KeyCtrlB:
		m.send(flow.ActionBack, 0)
	case tea.KeyCtrlL:
		m.send(flow.ActionGoLogin, 0)
	case tea.KeyCtrlR:
		m.send(flow.ActionGoRegister, 0)
	case tea.KeyUp:
		m.cursor--
	case tea.KeyDown:
		m.cursor++
	case tea.KeyCtrlD:
		m.send(flow.ActionDelete, m.cursor)
	}
}

func (m *Model) listKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "up", "k":
		m.cursor--
		return nil
	case "down", "j":
		m.cursor++
		return nil
	case "backspace":
		m.send(flow.ActionBack, 0)
		return nil
	case "enter":
		return m.choose()
	}

	screen := m.machine.Screen()
	if screen == flow.ScreenGuest || screen == flow.ScreenMainMenu || screen == flow.ScreenAdminPanel {
		for _, item := range m.menu() {
			if item.key == key {
				return m.activate(item)
			}
		}
		return nil
	}

	switch screen {
	case flow.ScreenMovieDetails:
		if key == "b" {
			m.send(flow.ActionBook, 0)
		}
	case flow.ScreenMovieManagement:
		switch key {
		case "a":
			m.send(flow.ActionAdd, 0)
		case "e":
			m.send(flow.ActionEdit, m.cursor)
		case "d":
			m.send(flow.ActionDelete, m.cursor)
		case "s":
			m.send(flow.ActionShowtimes, m.cursor)
		}
	}
	return nil
}

// choose acts on the row under the cursor.
func (m *Model) choose() tea.Cmd {
	switch m.machine.Screen() {
	case flow.ScreenGuest, flow.ScreenMainMenu, flow.ScreenAdminPanel:
		items := m.menu()
		if m.cursor >= 0 && m.cursor < len(items) {
			return m.activate(items[m.cursor])
		}
	case flow.ScreenMovieList, flow.ScreenBooking:
		m.send(flow.ActionSelect, m.cursor)
	case flow.ScreenMovieDetails:
		m.send(flow.ActionBook, 0)
	case flow.ScreenMovieManagement:
		m.send(flow.ActionEdit, m.cursor)
	}
	return nil
}

func (m *Model) activate(item menuItem) tea.Cmd {
	if item.quit {
		return m.quit()
	}
	m.send(item.action, 0)
	return nil
}

func (m *Model) seatKey(msg tea.KeyMsg) {
	if msg.Type == tea.KeySpace {
		m.send(flow.ActionToggleSeat, m.cursor)
		return
	}

	seats := m.seats()
	switch msg.String() {
	case "left", "h":
		m.cursor--
	case "right", "l":
		m.cursor++
	case "up", "k":
		m.cursor = seatStep(seats, m.cursor, -1)
	case "down", "j":
		m.cursor = seatStep(seats, m.cursor, 1)
	case "enter":
		m.send(flow.ActionConfirm, 0)
	case "backspace":
		m.send(flow.ActionBack, 0)
	}
}

// menu lists the entries of the menu screens. Admin panel only shows for admins.
func (m *Model) menu() []menuItem {
	switch m.machine.Screen() {
	case flow.ScreenGuest:
		return []menuItem{
			{key: "l", label: "Login", action: flow.ActionGoLogin},
			{key: "r", label: "Register", action: flow.ActionGoRegister},
			{key: "m", label: "Browse movies", action: flow.ActionBrowseMovies},
			{key: "q", label: "Quit", quit: true},
		}
	case flow.ScreenMainMenu:
		items := []menuItem{
			{key: "m", label: "Browse movies", action: flow.ActionBrowseMovies},
			{key: "h", label: "My bookings", action: flow.ActionHistory},
		}
		if m.machine.Context().IsAdmin() {
			items = append(items, menuItem{key: "a", label: "Admin panel", action: flow.ActionAdminPanel})
		}
		return append(items,
			menuItem{key: "o", label: "Logout", action: flow.ActionLogout},
			menuItem{key: "q", label: "Quit", quit: true},
		)
	case flow.ScreenAdminPanel:
		return []menuItem{
			{key: "m", label: "Manage movies", action: flow.ActionManageMovies},
			{key: "b", label: "Back", action: flow.ActionBack},
		}
	}
	return nil
}

// rows is how many cursor positions the current screen has.
func (m *Model) rows() int {
	switch m.machine.Screen() {
	case flow.ScreenGuest, flow.ScreenMainMenu, flow.ScreenAdminPanel:
		return len(m.menu())
	case flow.ScreenMovieList, flow.ScreenMovieManagement:
		return len(m.machine.Movies())
	case flow.ScreenBooking, flow.ScreenShowtimeManagement:
		if mv := m.machine.Movie(); mv != nil {
			return len(mv.ShowTimes)
		}
	case flow.ScreenSeatSelection:
		return len(m.seats())
	case flow.ScreenBookingHistory:
		return len(m.machine.History())
	}
	return 0
}

func (m *Model) clampCursor() {
	n := m.rows()
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) seats() []response.SeatResponse {
	if sm := m.machine.SeatMap(); sm != nil {
		return sm.Seats
	}
	return nil
}

type seatRow struct {
	label string
	index []int
}

// groupSeats splits seats into rows in the order the rows first appear.
func groupSeats(seats []response.SeatResponse) []seatRow {
	var rows []seatRow
	at := map[string]int{}
	for i, s := range seats {
		r, ok := at[s.Row]
		if !ok {
			r = len(rows)
			at[s.Row] = r
			rows = append(rows, seatRow{label: s.Row})
		}
		rows[r].index = append(rows[r].index, i)
	}
	return rows
}

// seatStep moves dir rows up or down, landing on the nearest column.
func seatStep(seats []response.SeatResponse, cur, dir int) int {
	if cur < 0 || cur >= len(seats) {
		return 0
	}
	rows := groupSeats(seats)
	from := -1
	for i, r := range rows {
		if r.label == seats[cur].Row {
			from = i
			break
		}
	}
	to := from + dir
	if from < 0 || to < 0 || to >= len(rows) {
		return cur
	}

	col := seats[cur].Column
	best := rows[to].index[0]
	for _, i := range rows[to].index {
		if abs(seats[i].Column-col) < abs(seats[best].Column-col) {
			best = i
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
