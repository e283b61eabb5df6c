package webui

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/uowclimb/society-seats/internal/model"
)

const popupVisibleFor = 3 * time.Second

// rowState tracks the edit state machine of one event row:
// viewing -> editing -> (saved | cancelled) -> viewing.
type rowState int

const (
	rowViewing rowState = iota
	rowEditing
)

// Dashboard drives the admin page: the event table with inline edit,
// the create-event form, the participant table for the selected
// event, and link sharing.  Every mutation is followed by a refetch
// of the affected view; the controller keeps no copy of server state
// beyond the last rendered rows.
type Dashboard struct {
	client    *Client
	view      DashboardView
	clipboard Clipboard

	feedbackFor time.Duration
	popupFor    time.Duration

	mu     sync.Mutex
	events map[int]model.Event
	states map[int]rowState
	timers []*time.Timer
}

// NewDashboard builds the controller for the admin dashboard.
func NewDashboard(client *Client, view DashboardView, clipboard Clipboard) *Dashboard {
	return &Dashboard{
		client:      client,
		view:        view,
		clipboard:   clipboard,
		feedbackFor: feedbackVisibleFor,
		popupFor:    popupVisibleFor,
		events:      map[int]model.Event{},
		states:      map[int]rowState{},
	}
}

// RefreshEvents refetches the event list, rebuilds the table wholesale
// and resyncs the event select.  Any in-progress edits are discarded;
// the server is the only source of truth.
func (d *Dashboard) RefreshEvents(ctx context.Context) error {
	events, err := d.client.Events(ctx)
	if err != nil {
		log.Println("dashboard: fetch events failed:", err)
		return err
	}

	d.mu.Lock()
	d.events = make(map[int]model.Event, len(events))
	d.states = make(map[int]rowState, len(events))
	for _, e := range events {
		d.events[e.ID] = e
		d.states[e.ID] = rowViewing
	}
	d.mu.Unlock()

	rows := make([]EventRow, 0, len(events))
	opts := make([]EventOption, 0, len(events))
	for _, e := range events {
		rows = append(rows, EventRow{ID: e.ID, Fields: eventFieldMap(e)})
		opts = append(opts, EventOption{ID: e.ID, Label: e.Date + " - " + e.Location})
	}
	d.view.SetEventRows(rows)
	d.view.SetEventOptions(opts)
	return nil
}

// eventFieldMap renders an event's editable fields keyed by name.
func eventFieldMap(e model.Event) map[string]string {
	return map[string]string{
		"session_location": e.Location,
		"session_date":     e.Date,
		"meet_point":       e.MeetPoint,
		"meet_time":        e.MeetTime,
		"total_seats":      strconv.Itoa(e.TotalSeats),
		"require_member":   strconv.FormatBool(e.RequireMember),
		"open_date":        e.OpenDate,
		"close_date":       e.CloseDate,
	}
}

// EditEvent switches a row into editing: the view replaces its cells
// with inputs seeded from the rendered values.
func (d *Dashboard) EditEvent(id int) {
	d.mu.Lock()
	if _, ok := d.events[id]; !ok {
		d.mu.Unlock()
		return
	}
	d.states[id] = rowEditing
	d.mu.Unlock()
	d.view.EditRow(id)
}

// SaveEvent reads the edited inputs back by field name, coerces the
// typed fields and puts the result.  On success the whole table is
// re-rendered from the server.
func (d *Dashboard) SaveEvent(ctx context.Context, id int) error {
	d.mu.Lock()
	original, ok := d.events[id]
	editing := d.states[id] == rowEditing
	d.mu.Unlock()
	if !ok || !editing {
		return fmt.Errorf("event %d is not being edited", id)
	}

	fields := d.view.EditedFields(id)
	edited, err := eventFromFields(id, fields)
	if err != nil {
		log.Println("dashboard: bad edit:", err)
		return err
	}
	edited.SeatsTaken = original.SeatsTaken

	resp, err := d.client.UpdateEvent(ctx, edited)
	if err != nil {
		log.Println("dashboard: update event failed:", err)
		return err
	}
	log.Println(resp.Message)
	return d.RefreshEvents(ctx)
}

// eventFromFields assembles an event from the labeled edit inputs.
func eventFromFields(id int, fields map[string]string) (model.Event, error) {
	seats, err := strconv.Atoi(fields["total_seats"])
	if err != nil {
		return model.Event{}, fmt.Errorf("total_seats: %w", err)
	}
	member, err := strconv.ParseBool(fields["require_member"])
	if err != nil {
		return model.Event{}, fmt.Errorf("require_member: %w", err)
	}
	return model.Event{
		ID:            id,
		Location:      fields["session_location"],
		Date:          fields["session_date"],
		MeetPoint:     fields["meet_point"],
		MeetTime:      fields["meet_time"],
		TotalSeats:    seats,
		RequireMember: member,
		OpenDate:      fields["open_date"],
		CloseDate:     fields["close_date"],
	}, nil
}

// CancelEventEdit discards in-progress edits by re-rendering from
// server state.
func (d *Dashboard) CancelEventEdit(ctx context.Context) error {
	return d.RefreshEvents(ctx)
}

// DeleteEvent deletes an event and refreshes the table and select.
// The refetch runs only after the backend confirms the delete, so no
// settle delay is needed for it to observe the removal.
func (d *Dashboard) DeleteEvent(ctx context.Context, id int) error {
	if err := d.client.DeleteEvent(ctx, id); err != nil {
		log.Println("dashboard: delete event failed:", err)
		return err
	}
	return d.RefreshEvents(ctx)
}

// RefreshParticipants renders the roster of the selected event.  With
// no selection the table is cleared; an empty roster renders a single
// placeholder row with no delete action.
func (d *Dashboard) RefreshParticipants(ctx context.Context) error {
	selected := d.view.SelectedEvent()
	if selected == "" {
		d.view.SetParticipantRows(nil)
		return nil
	}
	eventID, err := strconv.Atoi(selected)
	if err != nil {
		d.view.SetParticipantRows(nil)
		return nil
	}

	participants, err := d.client.Participants(ctx, eventID)
	if err != nil {
		log.Println("dashboard: fetch participants failed:", err)
		return err
	}

	if len(participants) == 0 {
		d.view.SetParticipantRows([]ParticipantRow{{
			FirstName:   "No participants registered",
			LastName:    "No participants registered",
			Placeholder: true,
		}})
		return nil
	}

	rows := make([]ParticipantRow, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, ParticipantRow{ID: p.ID, FirstName: p.FirstName, LastName: p.LastName})
	}
	d.view.SetParticipantRows(rows)
	return nil
}

// DeleteParticipant removes a participant, then refreshes the roster
// once the backend has confirmed.
func (d *Dashboard) DeleteParticipant(ctx context.Context, id int) error {
	if err := d.client.DeleteParticipant(ctx, id); err != nil {
		log.Println("dashboard: delete participant failed:", err)
		return err
	}
	return d.RefreshParticipants(ctx)
}

// CreateEvent posts the create form's fields, shows the backend's
// message in the banner, resets the form and resyncs the select.
func (d *Dashboard) CreateEvent(ctx context.Context) error {
	seats, err := strconv.Atoi(d.view.Field("total_seats"))
	if err != nil {
		err = fmt.Errorf("total_seats: %w", err)
		d.showFeedback(err.Error(), StyleDanger)
		return err
	}
	event := model.Event{
		Location:      d.view.Field("event_location"),
		Date:          d.view.Field("event_date"),
		MeetPoint:     d.view.Field("meet_location"),
		MeetTime:      d.view.Field("meet_time"),
		TotalSeats:    seats,
		RequireMember: d.view.Checked("require_member"),
		OpenDate:      d.view.Field("open_datetime"),
		CloseDate:     d.view.Field("close_datetime"),
	}

	resp, err := d.client.CreateEvent(ctx, event)
	if err != nil {
		d.showFeedback(err.Error(), StyleDanger)
		return err
	}
	if resp.Success {
		d.showFeedback(resp.Message, StyleSuccess)
	} else {
		d.showFeedback(resp.Message, StyleDanger)
	}
	d.view.Reset()
	return d.RefreshEvents(ctx)
}

// CopyEventLink builds the shareable registration URL, copies it to
// the clipboard and shows the timed popup.  A clipboard failure is
// logged only; the popup appears either way.
func (d *Dashboard) CopyEventLink(id int) string {
	link := fmt.Sprintf("%s/register?event=%d", d.client.Base(), id)
	if err := d.clipboard.Copy(link); err != nil {
		log.Println("dashboard: failed to copy link to clipboard:", err)
	} else {
		log.Println("dashboard: link copied to clipboard:", link)
	}
	d.view.ShowPopup("Copied " + link + " to clipboard!")
	d.after(d.popupFor, d.view.HidePopup)
	return link
}

func (d *Dashboard) showFeedback(message string, style Style) {
	d.view.SetText(ElemResponseText, message)
	d.view.SetStyle(ElemResponseText, style)
	d.after(d.feedbackFor, func() {
		d.view.SetText(ElemResponseText, "")
		d.view.SetStyle(ElemResponseText, StyleNone)
	})
}

func (d *Dashboard) after(duration time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.timers = append(d.timers, time.AfterFunc(duration, fn))
}

// Stop cancels pending popup and banner timers.
func (d *Dashboard) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, t := range d.timers {
		t.Stop()
	}
	d.timers = nil
}
