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
	"github.com/uowclimb/society-seats/internal/repository"
)

// ParticipantHandler bundles dependencies for the participant
// endpoints used by the admin dashboard.
type ParticipantHandler struct {
	Participants ParticipantStore
	Cache        config.CacheConfig
	Redis        *redis.Client
}

// NewParticipantHandler constructs a ParticipantHandler.
func NewParticipantHandler(participants ParticipantStore, cacheCfg config.CacheConfig, rdb *redis.Client) *ParticipantHandler {
	return &ParticipantHandler{Participants: participants, Cache: cacheCfg, Redis: rdb}
}

// GetParticipants serves GET /api/participants?event=ID.  An event
// with no participants yields an empty JSON array; the dashboard
// renders its own placeholder row for that case.
func (h *ParticipantHandler) GetParticipants(c echo.Context) error {
	eventID, err := strconv.Atoi(c.QueryParam("event"))
	if err != nil {
		return visual(c, http.StatusNotFound, false, fmt.Sprintf("Failed to get participants: %s", err))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	participants, err := h.Participants.ListByEvent(ctx, eventID)
	if err != nil {
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to get participants: %s", err))
	}
	return c.JSON(http.StatusOK, participants)
}

// DeleteParticipant serves DELETE /api/participant?participant=ID.
// Deletion and the seats-taken decrement share a transaction, and the
// cached detail for the affected event is busted before responding, so
// a dashboard refetch issued after the response sees the freed seat.
func (h *ParticipantHandler) DeleteParticipant(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("participant"))
	if err != nil {
		return visual(c, http.StatusNotFound, false, fmt.Sprintf("Failed to delete participant: %s", err))
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	eventID, err := h.Participants.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return visual(c, http.StatusNotFound, false, "Failed to delete participant: participant not found")
		}
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to delete participant: %s", err))
	}
	middleware.BustEventDetail(ctx, h.Cache, h.Redis, eventID)
	return visual(c, http.StatusOK, true, "Participant deleted!")
}
