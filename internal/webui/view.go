// Package webui contains the page controllers behind the registration
// and admin pages.  Each controller owns the state of one view and
// talks to the backend through Client; rendering goes through the
// View interfaces so the controllers can be driven without a browser.
package webui

// Style marks a rendered element as neutral, success (green) or
// failure (red).
type Style int

const (
	StyleNone Style = iota
	StyleSuccess
	StyleDanger
)

// Element identifiers shared between controllers and view bindings.
// They mirror the ids on the served pages.
const (
	ElemSubmitButton   = "submit-button"
	ElemSubmitLabel    = "submit-button-content"
	ElemResponseText   = "response-text"
	ElemLocation       = "session-location"
	ElemDate           = "session-date"
	ElemMeetTime       = "meet-time"
	ElemMeetPoint      = "meet-point"
	ElemCurrentSeats   = "current-seats"
	ElemMaxSeats       = "max-seats"
	ElemCountdownList  = "countdown-list"
	ElemCountdownOver  = "countdown-closed-text"
	ElemCountdownDays  = "countdown-days"
	ElemCountdownHours = "countdown-hours"
	ElemCountdownMins  = "countdown-minutes"
	ElemCountdownSecs  = "countdown-seconds"
)

// View is the binding a form controller renders through.  Field and
// Checked read user input back out; everything else writes.
type View interface {
	SetText(id, text string)
	SetStyle(id string, style Style)
	SetEnabled(id string, enabled bool)
	SetVisible(id string, visible bool)
	Field(name string) string
	Checked(name string) bool
	Reset()
	Navigate(url string)
}

// EventFields lists the editable event fields in display order.  The
// dashboard reads edits back by these names, never by column
// position, so reordering columns cannot silently corrupt a save.
var EventFields = []string{
	"session_location",
	"session_date",
	"meet_point",
	"meet_time",
	"total_seats",
	"require_member",
	"open_date",
	"close_date",
}

// EventRow is one rendered row of the dashboard event table: the
// event id plus its displayed fields keyed by field name.
type EventRow struct {
	ID     int
	Fields map[string]string
}

// ParticipantRow is one rendered row of the participant table.
// Placeholder rows carry no id and no delete action.
type ParticipantRow struct {
	ID          int
	FirstName   string
	LastName    string
	Placeholder bool
}

// EventOption is one entry of the event <select>.
type EventOption struct {
	ID    int
	Label string
}

// DashboardView extends View with the table and select operations of
// the admin dashboard.
type DashboardView interface {
	View
	SetEventRows(rows []EventRow)
	EditRow(id int)
	EditedFields(id int) map[string]string
	SetEventOptions(opts []EventOption)
	SelectedEvent() string
	SetParticipantRows(rows []ParticipantRow)
	ShowPopup(text string)
	HidePopup()
}

// Clipboard abstracts the system clipboard for link sharing.
type Clipboard interface {
	Copy(text string) error
}
