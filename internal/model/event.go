package model

import (
	"fmt"
	"time"
)

// DateTimeLayout is the wire and storage format for the registration
// window timestamps (`open_date` / `close_date`).  It is a European
// day-first layout, e.g. "16/09/2023 11:00:00".
const DateTimeLayout = "02/01/2006 15:04:05"

// EventStatus tracks the lifecycle of an event.  Events start out
// scheduled and are flipped to closed exactly once by the close
// sweep, so closure notifications are not sent twice.
type EventStatus int

const (
	EventStatusScheduled EventStatus = iota
	EventStatusClosed
)

// Event represents a climbing session participants can register for.
// The JSON names are the public API field names; note the historical
// quirk that `current_seats` maps to the seats-taken column.  The
// detail endpoint instead reports remaining seats under the same
// name, computed via RemainingSeats.
//
// Fields map one-to-one onto columns of the `events` table.
type Event struct {
	ID            int         `json:"event_id"`         // events.event_id
	Location      string      `json:"session_location"` // events.event_location
	Date          string      `json:"session_date"`     // events.event_date (display string)
	MeetPoint     string      `json:"meet_point"`       // events.meet_location
	MeetTime      string      `json:"meet_time"`        // events.meet_time
	TotalSeats    int         `json:"total_seats"`      // events.total_seats
	SeatsTaken    int         `json:"current_seats"`    // events.seats_taken
	RequireMember bool        `json:"require_member"`   // events.require_member
	OpenDate      string      `json:"open_date"`        // events.open_datetime
	CloseDate     string      `json:"close_date"`       // events.close_datetime
	Status        EventStatus `json:"-"`                // events.event_status
}

// RemainingSeats returns how many seats are still free.
func (e *Event) RemainingSeats() int {
	return e.TotalSeats - e.SeatsTaken
}

// OpenTime parses the opening timestamp of the registration window.
func (e *Event) OpenTime() (time.Time, error) {
	return time.Parse(DateTimeLayout, e.OpenDate)
}

// CloseTime parses the closing timestamp of the registration window.
func (e *Event) CloseTime() (time.Time, error) {
	return time.Parse(DateTimeLayout, e.CloseDate)
}

// OpenForRegistration reports whether now falls inside the
// open..close window.  A malformed window is treated as closed and
// the parse error is returned so callers can surface it.
func (e *Event) OpenForRegistration(now time.Time) (bool, error) {
	open, err := e.OpenTime()
	if err != nil {
		return false, err
	}
	closeAt, err := e.CloseTime()
	if err != nil {
		return false, err
	}
	return now.After(open) && now.Before(closeAt), nil
}

// ShareLink returns the public registration URL for the event,
// rooted at the given base URL.
func (e *Event) ShareLink(baseURL string) string {
	return fmt.Sprintf("%s/register?event=%d", baseURL, e.ID)
}

// EventDetail is the payload of GET /api/events?event=ID, the subset
// of event data shown on the public registration page.  CurrentSeats
// here is the number of *remaining* seats, unlike the admin list
// where current_seats carries the seats-taken column.
type EventDetail struct {
	Location     string `json:"session_location"`
	Date         string `json:"session_date"`
	MeetTime     string `json:"meet_time"`
	MeetPoint    string `json:"meet_point"`
	CurrentSeats int    `json:"current_seats"`
	TotalSeats   int    `json:"total_seats"`
	CloseDate    string `json:"close_date"`
}

// Detail builds the public view of an event.
func (e *Event) Detail() EventDetail {
	return EventDetail{
		Location:     e.Location,
		Date:         e.Date,
		MeetTime:     e.MeetTime,
		MeetPoint:    e.MeetPoint,
		CurrentSeats: e.RemainingSeats(),
		TotalSeats:   e.TotalSeats,
		CloseDate:    e.CloseDate,
	}
}
