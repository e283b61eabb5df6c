package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/middleware"
	"github.com/uowclimb/society-seats/internal/model"
	"github.com/uowclimb/society-seats/internal/repository"
)

// EventHandler bundles dependencies for the event endpoints.  Redis is
// optional; when present, mutations bust the cached detail entry so
// the registration page never shows stale seat counts after a write.
type EventHandler struct {
	Events EventStore
	Cache  config.CacheConfig
	Redis  *redis.Client
}

// NewEventHandler constructs an EventHandler.
func NewEventHandler(events EventStore, cacheCfg config.CacheConfig, rdb *redis.Client) *EventHandler {
	return &EventHandler{Events: events, Cache: cacheCfg, Redis: rdb}
}

// GetEvents serves GET /api/events.  With an `event` query parameter
// it returns the public detail for that event; without one it returns
// the full admin list.  The literal value "NaN" is what the
// registration page sends when it was opened without an event id in
// the URL; it gets an empty 200 so the page's own error path decides
// what to do.
func (h *EventHandler) GetEvents(c echo.Context) error {
	param := c.QueryParam("event")
	if param == "NaN" {
		return c.NoContent(http.StatusOK)
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if param == "" {
		events, err := h.Events.List(ctx)
		if err != nil {
			return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to list events: %s", err))
		}
		return c.JSON(http.StatusOK, events)
	}

	id, err := strconv.Atoi(param)
	if err != nil {
		return visual(c, http.StatusNotFound, false, fmt.Sprintf("Failed to get event: %s", err))
	}

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		return visual(c, http.StatusNotFound, false, fmt.Sprintf("Failed to get event: %s", err))
	}
	return c.JSON(http.StatusOK, event.Detail())
}

// CreateEvent serves POST /api/events from the dashboard create form.
func (h *EventHandler) CreateEvent(c echo.Context) error {
	var event model.Event
	if err := c.Bind(&event); err != nil {
		return visual(c, http.StatusBadRequest, false, fmt.Sprintf("Invalid event data: %s", err))
	}
	if err := validateEventFields(&event); err != nil {
		return visual(c, http.StatusBadRequest, false, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.Create(ctx, &event); err != nil {
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to create event: %s", err))
	}
	return visual(c, http.StatusOK, true, "Event created!")
}

// UpdateEvent serves PUT /api/events?event=ID with the edited fields
// from the dashboard's edit-in-place row.  The seats-taken counter and
// lifecycle status are never taken from the payload; they belong to
// the registration flow and the close sweep respectively.
func (h *EventHandler) UpdateEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("event"))
	if err != nil {
		return visual(c, http.StatusNotFound, false, fmt.Sprintf("Failed to update event: %s", err))
	}

	var edited model.Event
	if err := c.Bind(&edited); err != nil {
		return visual(c, http.StatusBadRequest, false, fmt.Sprintf("Invalid event data: %s", err))
	}
	if err := validateEventFields(&edited); err != nil {
		return visual(c, http.StatusBadRequest, false, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return visual(c, http.StatusNotFound, false, "Failed to update event: event not found")
		}
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to update event: %s", err))
	}

	event.Location = edited.Location
	event.Date = edited.Date
	event.MeetPoint = edited.MeetPoint
	event.MeetTime = edited.MeetTime
	event.TotalSeats = edited.TotalSeats
	event.RequireMember = edited.RequireMember
	event.OpenDate = edited.OpenDate
	event.CloseDate = edited.CloseDate

	if err := h.Events.Update(ctx, event); err != nil {
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to update event: %s", err))
	}
	middleware.BustEventDetail(ctx, h.Cache, h.Redis, id)
	return visual(c, http.StatusOK, true, "Event updated!")
}

// DeleteEvent serves DELETE /api/event?event=ID.  Participants of the
// event are removed with it.
func (h *EventHandler) DeleteEvent(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("event"))
	if err != nil {
		return visual(c, http.StatusNotFound, false, fmt.Sprintf("Failed to delete event: %s", err))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	if err := h.Events.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return visual(c, http.StatusNotFound, false, "Failed to delete event: event not found")
		}
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to delete event: %s", err))
	}
	middleware.BustEventDetail(ctx, h.Cache, h.Redis, id)
	return visual(c, http.StatusOK, true, "Event deleted!")
}

// validateEventFields rejects payloads the storage layer would accept
// but that would break the registration window maths later on.
func validateEventFields(e *model.Event) error {
	if e.TotalSeats < 0 {
		return errors.New("Total seats cannot be negative")
	}
	if _, err := e.OpenTime(); err != nil {
		return errors.New("Unable to parse event open date")
	}
	if _, err := e.CloseTime(); err != nil {
		return errors.New("Unable to parse event close date")
	}
	return nil
}
