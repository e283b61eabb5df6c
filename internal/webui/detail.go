package webui

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/uowclimb/society-seats/internal/model"
)

// EventDetail drives the event summary on the registration page: it
// fetches the event named by the page's `event` query parameter,
// fills the six summary fields, styles the seat counter and feeds the
// countdown its target.  A failed fetch is not recoverable in-page;
// the controller navigates to the error page with the reason.
type EventDetail struct {
	client    *Client
	view      View
	countdown *Countdown
	eventID   int
	idErr     error
}

// NewEventDetail builds the controller for the event identified by
// the raw `event` query parameter value.  A missing or non-numeric id
// is remembered and surfaces as the error-page redirect on Load.
func NewEventDetail(client *Client, view View, countdown *Countdown, rawID string) *EventDetail {
	id, err := strconv.Atoi(rawID)
	return &EventDetail{client: client, view: view, countdown: countdown, eventID: id, idErr: err}
}

// Load fetches and renders the event.  Seat styling follows the
// remaining count: more than one seat renders green, otherwise the
// counter goes red and the submit control is disabled.
func (ed *EventDetail) Load(ctx context.Context) {
	if ed.idErr != nil {
		ed.fail("Error fetching event details: " + ed.idErr.Error())
		return
	}

	detail, err := ed.client.EventDetail(ctx, ed.eventID)
	if err != nil {
		ed.fail("Error fetching event details: " + err.Error())
		return
	}
	ed.render(detail)
}

func (ed *EventDetail) render(detail model.EventDetail) {
	ed.view.SetText(ElemLocation, detail.Location)
	ed.view.SetText(ElemDate, detail.Date)
	ed.view.SetText(ElemMeetTime, detail.MeetTime)
	ed.view.SetText(ElemMeetPoint, detail.MeetPoint)
	ed.view.SetText(ElemCurrentSeats, strconv.Itoa(detail.CurrentSeats))
	ed.view.SetText(ElemMaxSeats, strconv.Itoa(detail.TotalSeats))

	if detail.CurrentSeats > 1 {
		ed.view.SetStyle(ElemCurrentSeats, StyleSuccess)
	} else {
		ed.view.SetStyle(ElemCurrentSeats, StyleDanger)
		ed.view.SetEnabled(ElemSubmitButton, false)
	}

	if ed.countdown != nil {
		if closeAt, err := time.Parse(model.DateTimeLayout, detail.CloseDate); err == nil {
			ed.countdown.SetTarget(closeAt)
		}
	}
}

func (ed *EventDetail) fail(reason string) {
	ed.view.Navigate("/register/error.html?message=" + url.QueryEscape(reason))
}

// EventID returns the id parsed from the query string, valid only
// when Load did not redirect.
func (ed *EventDetail) EventID() int { return ed.eventID }
