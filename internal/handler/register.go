package handler

import (
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/uowclimb/society-seats/internal/config"
	"github.com/uowclimb/society-seats/internal/middleware"
	"github.com/uowclimb/society-seats/internal/model"
	"github.com/uowclimb/society-seats/internal/repository"
)

// nameRe accepts a first name and a surname (the surname may be
// hyphenated), letters only.  Input is lowercased before matching.
var nameRe = regexp.MustCompile(`^[a-z]+ [a-z]+(-[a-z]+)*$`)

// RegistrationRequest is the payload of POST /api/register.
type RegistrationRequest struct {
	Name    string `json:"name"`
	Member  bool   `json:"member"`
	EventID int    `json:"event"`
}

// RegistrationHandler implements the public registration endpoint.
// The now field is swappable so tests can pin the clock relative to
// an event's registration window.
type RegistrationHandler struct {
	Events       EventStore
	Participants ParticipantStore
	Cache        config.CacheConfig
	Redis        *redis.Client
	now          func() time.Time
}

// NewRegistrationHandler constructs a RegistrationHandler.
func NewRegistrationHandler(events EventStore, participants ParticipantStore, cacheCfg config.CacheConfig, rdb *redis.Client) *RegistrationHandler {
	return &RegistrationHandler{
		Events:       events,
		Participants: participants,
		Cache:        cacheCfg,
		Redis:        rdb,
		now:          time.Now,
	}
}

// Register serves POST /api/register.  The pipeline is: validate the
// name, load the event, check the registration window, check the
// membership requirement, then hand over to the participant store
// which enforces seat availability and the duplicate-name rule
// transactionally.  Every rejection is a visual response whose
// message is shown verbatim in the form's feedback banner.
func (h *RegistrationHandler) Register(c echo.Context) error {
	var req RegistrationRequest
	if err := c.Bind(&req); err != nil {
		return visual(c, http.StatusBadRequest, false, err.Error())
	}

	if !nameRe.MatchString(strings.ToLower(strings.TrimSpace(req.Name))) {
		return visual(c, http.StatusBadRequest, false, "Invalid name, please enter your first and last name")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	event, err := h.Events.GetByID(ctx, req.EventID)
	if err != nil {
		return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to get event: %s", err))
	}

	open, err := event.OpenForRegistration(h.now())
	if err != nil {
		return visual(c, http.StatusInternalServerError, false, "Unable to parse event registration window")
	}
	if !open {
		return visual(c, http.StatusForbidden, false, "The event is not currently open for registration")
	}

	if event.RequireMember && !req.Member {
		return visual(c, http.StatusForbidden, false, "This event requires you to have paid membership fees")
	}

	firstName, surname := splitName(titleCase(req.Name))
	participant := model.Participant{
		EventID:   req.EventID,
		FirstName: firstName,
		LastName:  surname,
		Member:    req.Member,
	}
	if err := h.Participants.Register(ctx, &participant); err != nil {
		switch {
		case errors.Is(err, repository.ErrNoSeats):
			return visual(c, http.StatusForbidden, false, "There are no seats available for this event")
		case errors.Is(err, repository.ErrDuplicateParticipant):
			return visual(c, http.StatusForbidden, false, "You are already registered for this event")
		default:
			return visual(c, http.StatusInternalServerError, false, fmt.Sprintf("Failed to update database: %v", err))
		}
	}

	middleware.BustEventDetail(ctx, h.Cache, h.Redis, req.EventID)
	return visual(c, http.StatusOK, true, "You have been added to the event!")
}

// splitName separates a full name into first name and surname; all
// words after the first belong to the surname.
func splitName(name string) (string, string) {
	parts := strings.Split(name, " ")
	return parts[0], strings.Join(parts[1:], " ")
}

// titleCase upper-cases the first letter of each word, including the
// parts of a hyphenated surname.
func titleCase(name string) string {
	out := []rune(strings.ToLower(strings.TrimSpace(name)))
	upperNext := true
	for i, r := range out {
		if upperNext {
			out[i] = unicode.ToUpper(r)
		}
		upperNext = r == ' ' || r == '-'
	}
	return string(out)
}
