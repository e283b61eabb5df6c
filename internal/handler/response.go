package handler

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/uowclimb/society-seats/internal/model"
)

// VisualResponse is the `{success, message}` payload every form action
// renders directly to the user.  The front-end shows Message verbatim
// in the green/red feedback banner, so messages are written for
// humans, not for programs.
type VisualResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// visual sends a VisualResponse with the given HTTP status and logs
// failures, mirroring how every widget funnels backend rejections and
// transport errors into the same banner.
func visual(c echo.Context, status int, success bool, message string) error {
	if !success {
		c.Logger().Error(message)
	}
	return c.JSON(status, VisualResponse{Success: success, Message: message})
}

// reqCtx derives a request-scoped context with the standard DB timeout.
func reqCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

// EventStore is the storage surface the event and registration
// handlers need.  *repository.EventRepo satisfies it; tests provide
// mocks.
type EventStore interface {
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id int) (*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id int) error
}

// ParticipantStore is the storage surface the participant and
// registration handlers need.
type ParticipantStore interface {
	ListByEvent(ctx context.Context, eventID int) ([]model.Participant, error)
	Register(ctx context.Context, p *model.Participant) error
	Delete(ctx context.Context, id int) (int, error)
}

// UserStore is the storage surface the auth handler needs.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
}
