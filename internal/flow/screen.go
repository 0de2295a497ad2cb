// Package flow is the booking kiosk's screen state machine. It knows nothing
// about rendering: a front-end feeds it keystrokes and actions and draws
// whatever state it exposes.
package flow

import "movie-booking/internal/access"

type Screen int

const (
	ScreenGuest Screen = iota
	ScreenMainMenu
	ScreenLogin
	ScreenRegister
	ScreenMovieList
	ScreenMovieDetails
	ScreenBooking
	ScreenSeatSelection
	ScreenBookingHistory
	ScreenAdminPanel
	ScreenMovieManagement
	ScreenEditMovie
	ScreenShowtimeManagement
	ScreenSuccess
)

var screenNames = map[Screen]string{
	ScreenGuest:              "Guest",
	ScreenMainMenu:           "Main Menu",
	ScreenLogin:              "Login",
	ScreenRegister:           "Register",
	ScreenMovieList:          "Movies",
	ScreenMovieDetails:       "Movie Details",
	ScreenBooking:            "Choose Show Time",
	ScreenSeatSelection:      "Select Seats",
	ScreenBookingHistory:     "Booking History",
	ScreenAdminPanel:         "Admin Panel",
	ScreenMovieManagement:    "Movie Management",
	ScreenEditMovie:          "Edit Movie",
	ScreenShowtimeManagement: "Show Time Management",
	ScreenSuccess:            "Success",
}

func (s Screen) String() string {
	if name, ok := screenNames[s]; ok {
		return name
	}
	return "Unknown"
}

// screenCapability is what the caller must be allowed to do to open a screen.
// Screens missing here are open to everyone.
var screenCapability = map[Screen]access.Capability{
	ScreenMainMenu:           access.Logout,
	ScreenLogin:              access.Login,
	ScreenRegister:           access.Register,
	ScreenMovieList:          access.ViewMovies,
	ScreenMovieDetails:       access.ViewMovies,
	ScreenBooking:            access.Book,
	ScreenSeatSelection:      access.Book,
	ScreenBookingHistory:     access.ViewHistory,
	ScreenAdminPanel:         access.ManageMovies,
	ScreenMovieManagement:    access.ManageMovies,
	ScreenEditMovie:          access.ManageMovies,
	ScreenShowtimeManagement: access.ManageMovies,
}

type Field int

const (
	FieldNone Field = iota
	FieldUsername
	FieldPassword
	FieldEmail
	FieldPhone
	FieldTitle
	FieldGenre
	FieldDescription
	FieldPrice
	FieldRating
	FieldDuration
	FieldDate
	FieldStartTime
	FieldEndTime
)

var fieldLabels = map[Field]string{
	FieldUsername:    "Username",
	FieldPassword:    "Password",
	FieldEmail:       "Email",
	FieldPhone:       "Phone",
	FieldTitle:       "Title",
	FieldGenre:       "Genre",
	FieldDescription: "Description",
	FieldPrice:       "Price",
	FieldRating:      "Rating (0-10)",
	FieldDuration:    "Duration (min)",
	FieldDate:        "Date (YYYY-MM-DD)",
	FieldStartTime:   "Start (HH:MM)",
	FieldEndTime:     "End (HH:MM)",
}

func (f Field) String() string {
	return fieldLabels[f]
}

var (
	movieFields    = []Field{FieldTitle, FieldGenre, FieldDescription, FieldPrice, FieldRating, FieldDuration}
	showTimeFields = []Field{FieldDate, FieldStartTime, FieldEndTime}
)

// screenFields is the tab order of the text inputs on each form screen.
// Editing an existing movie uses movieFields only.
var screenFields = map[Screen][]Field{
	ScreenLogin:              {FieldUsername, FieldPassword},
	ScreenRegister:           {FieldUsername, FieldPassword, FieldEmail, FieldPhone},
	ScreenEditMovie:          append(append([]Field{}, movieFields...), showTimeFields...),
	ScreenShowtimeManagement: showTimeFields,
}

type Action int

const (
	ActionGoLogin Action = iota
	ActionGoRegister
	ActionBrowseMovies
	ActionSubmit
	ActionBack
	ActionEscape
	ActionHistory
	ActionAdminPanel
	ActionLogout
	ActionSelect
	ActionBook
	ActionToggleSeat
	ActionConfirm
	ActionManageMovies
	ActionAdd
	ActionEdit
	ActionDelete
	ActionShowtimes
	ActionDismiss
)

// Event is one user intent. Index picks a row for list actions.
type Event struct {
	Action Action
	Index  int
}
