package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

type ShowTime struct {
	Base
	MovieID   uuid.UUID `db:"movie_id"`
	ShowDate  time.Time `db:"show_date"`
	StartTime string    `db:"start_time"` // HH:MM
	EndTime   string    `db:"end_time"`   // HH:MM
}

// NewShowTime parses a date and two HH:MM clocks and checks that the show ends after it starts.
func NewShowTime(movieID uuid.UUID, date, start, end string) (*ShowTime, error) {
	day, err := time.Parse(DateLayout, date)
	if err != nil {
		return nil, fmt.Errorf("invalid show date %q", date)
	}
	startAt, err := time.Parse(ClockLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start time %q", start)
	}
	endAt, err := time.Parse(ClockLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end time %q", end)
	}
	if !endAt.After(startAt) {
		return nil, fmt.Errorf("invalid show time: end %s is not after start %s", end, start)
	}

	return &ShowTime{
		MovieID:   movieID,
		ShowDate:  day,
		StartTime: startAt.Format(ClockLayout),
		EndTime:   endAt.Format(ClockLayout),
	}, nil
}

// StartsAt combines the show date and start clock in loc.
func (s *ShowTime) StartsAt(loc *time.Location) time.Time {
	clock, err := time.Parse(ClockLayout, s.StartTime)
	if err != nil {
		return s.ShowDate
	}
	return time.Date(s.ShowDate.Year(), s.ShowDate.Month(), s.ShowDate.Day(),
		clock.Hour(), clock.Minute(), 0, 0, loc)
}

func (s *ShowTime) String() string {
	return fmt.Sprintf("%s %s-%s", s.ShowDate.Format(DateLayout), s.StartTime, s.EndTime)
}
