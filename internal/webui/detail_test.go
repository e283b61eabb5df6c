package webui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uowclimb/society-seats/internal/model"
)

func detailServer(t *testing.T, status int, detail model.EventDetail) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/events", r.URL.Path)
		if status != http.StatusOK {
			http.Error(w, "nope", status)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		writeJSON(t, w, detail)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEventDetailScarceSeatsDisableRegistration(t *testing.T) {
	srv := detailServer(t, http.StatusOK, model.EventDetail{
		Location:     "Boulder Shack",
		Date:         "20/09/2026",
		MeetTime:     "18:00",
		MeetPoint:    "Union steps",
		CurrentSeats: 1,
		TotalSeats:   12,
		CloseDate:    "19/09/2026 18:00:00",
	})

	view := newFakeView()
	cd := NewCountdown(view)
	ed := NewEventDetail(NewClient(srv.URL), view, cd, "4")
	ed.Load(context.Background())

	assert.Equal(t, "Boulder Shack", view.text(ElemLocation))
	assert.Equal(t, "1", view.text(ElemCurrentSeats))
	assert.Equal(t, "12", view.text(ElemMaxSeats))
	assert.Equal(t, StyleDanger, view.style(ElemCurrentSeats))
	assert.Equal(t, 1, view.disableCount(ElemSubmitButton))
	assert.Empty(t, view.navs)
}

func TestEventDetailOpenSeatsStayEnabled(t *testing.T) {
	srv := detailServer(t, http.StatusOK, model.EventDetail{
		Location:     "Boulder Shack",
		CurrentSeats: 5,
		TotalSeats:   12,
		CloseDate:    "19/09/2026 18:00:00",
	})

	view := newFakeView()
	cd := NewCountdown(view)
	ed := NewEventDetail(NewClient(srv.URL), view, cd, "4")
	ed.Load(context.Background())

	assert.Equal(t, StyleSuccess, view.style(ElemCurrentSeats))
	assert.Zero(t, view.disableCount(ElemSubmitButton))

	// The close date reached the countdown.
	cd.Tick(time.Date(2026, 9, 19, 17, 59, 0, 0, time.UTC))
	assert.Equal(t, "1", view.text(ElemCountdownMins))
}

func TestEventDetailFetchFailureRedirects(t *testing.T) {
	srv := detailServer(t, http.StatusNotFound, model.EventDetail{})

	view := newFakeView()
	ed := NewEventDetail(NewClient(srv.URL), view, nil, "4")
	ed.Load(context.Background())

	require.Len(t, view.navs, 1)
	assert.Contains(t, view.navs[0], "/register/error.html?message=")
	assert.Contains(t, view.navs[0], "404")
}

func TestEventDetailBadIDRedirects(t *testing.T) {
	view := newFakeView()
	ed := NewEventDetail(NewClient("http://unused.invalid"), view, nil, "NaN")
	ed.Load(context.Background())

	require.Len(t, view.navs, 1)
	assert.Contains(t, view.navs[0], "/register/error.html?message=")
}
