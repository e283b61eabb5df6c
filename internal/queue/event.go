// Package queue defines message payloads exchanged over the message broker.
package queue

import "github.com/uowclimb/society-seats/internal/model"

// EventClosedQueue is the durable queue closure notifications travel on.
const EventClosedQueue = "event.closed"

// EventClosedEvent is published when the close sweep flips an event
// from scheduled to closed.  It carries the final roster so the
// consumer can build the committee email without querying the
// primary database.
type EventClosedEvent struct {
	EventID       int                 `json:"event_id"`
	Location      string              `json:"session_location"`
	Date          string              `json:"session_date"`
	MeetPoint     string              `json:"meet_point"`
	MeetTime      string              `json:"meet_time"`
	TotalSeats    int                 `json:"total_seats"`
	SeatsTaken    int                 `json:"seats_taken"`
	RequireMember bool                `json:"require_member"`
	CloseDate     string              `json:"close_date"`
	Participants  []model.Participant `json:"participants"`
	ClosedAt      string              `json:"closed_at"`
}

// Event reconstructs the model view of the payload for rendering.
func (ev *EventClosedEvent) Event() model.Event {
	return model.Event{
		ID:            ev.EventID,
		Location:      ev.Location,
		Date:          ev.Date,
		MeetPoint:     ev.MeetPoint,
		MeetTime:      ev.MeetTime,
		TotalSeats:    ev.TotalSeats,
		SeatsTaken:    ev.SeatsTaken,
		RequireMember: ev.RequireMember,
		CloseDate:     ev.CloseDate,
		Status:        model.EventStatusClosed,
	}
}
