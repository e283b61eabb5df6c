package webui

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uowclimb/society-seats/internal/handler"
	"github.com/uowclimb/society-seats/internal/model"
)

var testEvent = model.Event{
	ID:            7,
	Location:      "Boulder Shack",
	Date:          "20/09/2026",
	MeetPoint:     "Union steps",
	MeetTime:      "18:00",
	TotalSeats:    12,
	SeatsTaken:    3,
	RequireMember: true,
	OpenDate:      "13/09/2026 18:00:00",
	CloseDate:     "19/09/2026 18:00:00",
}

// dashboardServer serves the admin API against a mutable event list
// and records the PUT body and the order of mutating calls.
type dashboardServer struct {
	mu           sync.Mutex
	events       []model.Event
	participants []model.Participant
	putBody      []byte
	calls        []string
}

func (s *dashboardServer) handler(t *testing.T) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.calls = append(s.calls, r.Method+" "+r.URL.Path)
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/events":
			writeJSON(t, w, s.events)
		case r.Method == http.MethodPut && r.URL.Path == "/api/events":
			body, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			s.putBody = body
			writeJSON(t, w, handler.VisualResponse{Success: true, Message: "Event updated!"})
		case r.Method == http.MethodPost && r.URL.Path == "/api/events":
			writeJSON(t, w, handler.VisualResponse{Success: true, Message: "Event created!"})
		case r.Method == http.MethodDelete && r.URL.Path == "/api/event":
			s.events = nil
			writeJSON(t, w, handler.VisualResponse{Success: true, Message: "Event deleted!"})
		case r.Method == http.MethodGet && r.URL.Path == "/api/participants":
			writeJSON(t, w, s.participants)
		case r.Method == http.MethodDelete && r.URL.Path == "/api/participant":
			s.participants = s.participants[1:]
			writeJSON(t, w, handler.VisualResponse{Success: true, Message: "Participant deleted!"})
		default:
			http.NotFound(w, r)
		}
	}
}

func newDashboard(t *testing.T, srv *dashboardServer) (*Dashboard, *fakeView, *fakeClipboard) {
	t.Helper()
	ts := httptest.NewServer(srv.handler(t))
	t.Cleanup(ts.Close)
	view := newFakeView()
	clip := &fakeClipboard{}
	d := NewDashboard(NewClient(ts.URL), view, clip)
	d.popupFor = 10 * time.Millisecond
	d.feedbackFor = 10 * time.Millisecond
	return d, view, clip
}

func TestEditRoundTripPreservesEveryField(t *testing.T) {
	srv := &dashboardServer{events: []model.Event{testEvent}}
	d, _, _ := newDashboard(t, srv)

	ctx := context.Background()
	require.NoError(t, d.RefreshEvents(ctx))
	d.EditEvent(testEvent.ID)
	require.NoError(t, d.SaveEvent(ctx, testEvent.ID))

	var sent model.Event
	require.NoError(t, json.Unmarshal(srv.putBody, &sent))
	assert.Equal(t, testEvent, sent, "unchanged inputs must save back the original values")
}

func TestSaveWithoutEditFails(t *testing.T) {
	srv := &dashboardServer{events: []model.Event{testEvent}}
	d, _, _ := newDashboard(t, srv)

	ctx := context.Background()
	require.NoError(t, d.RefreshEvents(ctx))
	assert.Error(t, d.SaveEvent(ctx, testEvent.ID))
	assert.Nil(t, srv.putBody)
}

func TestRefreshEventsRendersRowsAndSelect(t *testing.T) {
	srv := &dashboardServer{events: []model.Event{testEvent}}
	d, view, _ := newDashboard(t, srv)

	require.NoError(t, d.RefreshEvents(context.Background()))

	require.Len(t, view.eventRows, 1)
	require.Len(t, view.eventRows[0], 1)
	row := view.eventRows[0][0]
	assert.Equal(t, testEvent.ID, row.ID)
	assert.Equal(t, "Boulder Shack", row.Fields["session_location"])
	assert.Equal(t, "12", row.Fields["total_seats"])
	assert.Equal(t, "true", row.Fields["require_member"])

	require.Len(t, view.options, 1)
	assert.Equal(t, "20/09/2026 - Boulder Shack", view.options[0].Label)
}

func TestEmptyParticipantsRendersPlaceholder(t *testing.T) {
	srv := &dashboardServer{participants: []model.Participant{}}
	d, view, _ := newDashboard(t, srv)
	view.selected = "7"

	require.NoError(t, d.RefreshParticipants(context.Background()))

	rows := view.lastParticipants()
	require.Len(t, rows, 1)
	assert.True(t, rows[0].Placeholder)
	assert.Equal(t, "No participants registered", rows[0].FirstName)
	assert.Zero(t, rows[0].ID)
}

func TestNoSelectionClearsParticipantTable(t *testing.T) {
	srv := &dashboardServer{}
	d, view, _ := newDashboard(t, srv)

	require.NoError(t, d.RefreshParticipants(context.Background()))
	assert.Nil(t, view.lastParticipants())
	assert.NotContains(t, srv.calls, "GET /api/participants")
}

func TestDeleteEventRefetchesAfterConfirmation(t *testing.T) {
	srv := &dashboardServer{events: []model.Event{testEvent}}
	d, view, _ := newDashboard(t, srv)

	require.NoError(t, d.DeleteEvent(context.Background(), testEvent.ID))

	require.Equal(t, []string{"DELETE /api/event", "GET /api/events"}, srv.calls,
		"the refetch must run only after the backend confirmed the delete")
	assert.Empty(t, view.eventRows[len(view.eventRows)-1])
}

func TestDeleteParticipantRefreshesRoster(t *testing.T) {
	srv := &dashboardServer{participants: []model.Participant{
		{ID: 1, EventID: 7, FirstName: "Jane", LastName: "Smith"},
		{ID: 2, EventID: 7, FirstName: "Amy", LastName: "Jones-Li"},
	}}
	d, view, _ := newDashboard(t, srv)
	view.selected = "7"

	require.NoError(t, d.DeleteParticipant(context.Background(), 1))

	rows := view.lastParticipants()
	require.Len(t, rows, 1)
	assert.Equal(t, "Amy", rows[0].FirstName)
}

func TestCopyEventLinkCopiesAndShowsPopup(t *testing.T) {
	srv := &dashboardServer{}
	d, view, clip := newDashboard(t, srv)

	link := d.CopyEventLink(7)
	defer d.Stop()

	assert.Contains(t, link, "/register?event=7")
	assert.Equal(t, []string{link}, clip.copied)
	require.Len(t, view.popups, 1)
	assert.Contains(t, view.popups[0], link)

	assert.Eventually(t, func() bool {
		view.mu.Lock()
		defer view.mu.Unlock()
		return view.popupHides == 1
	}, time.Second, 5*time.Millisecond)
}

func TestCopyEventLinkPopupShownEvenWhenCopyFails(t *testing.T) {
	srv := &dashboardServer{}
	d, view, clip := newDashboard(t, srv)
	clip.err = assert.AnError

	d.CopyEventLink(7)
	defer d.Stop()

	assert.Len(t, view.popups, 1, "popup appears regardless of clipboard failure")
}

func TestCreateEventResetsFormAndResyncsSelect(t *testing.T) {
	srv := &dashboardServer{events: []model.Event{testEvent}}
	d, view, _ := newDashboard(t, srv)
	view.fields["event_location"] = "Crag"
	view.fields["total_seats"] = "8"
	view.checks["require_member"] = true

	require.NoError(t, d.CreateEvent(context.Background()))

	assert.Equal(t, "Event created!", view.text(ElemResponseText))
	assert.Equal(t, StyleSuccess, view.style(ElemResponseText))
	assert.Equal(t, 1, view.resets)
	assert.Len(t, view.options, 1)
}

func TestCreateEventRejectsUnparseableSeatCount(t *testing.T) {
	srv := &dashboardServer{events: []model.Event{testEvent}}
	d, view, _ := newDashboard(t, srv)
	view.fields["event_location"] = "Crag"
	view.fields["total_seats"] = "lots"

	err := d.CreateEvent(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "total_seats")
	assert.Equal(t, StyleDanger, view.style(ElemResponseText))
	assert.NotContains(t, srv.calls, "POST /api/events", "a bad seat count must never reach the backend")
}
