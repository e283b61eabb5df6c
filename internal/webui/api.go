package webui

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/uowclimb/society-seats/internal/handler"
	"github.com/uowclimb/society-seats/internal/model"
)

// Client is the REST client the controllers share.  It keeps a cookie
// jar so the session cookie issued by login rides along on admin calls.
type Client struct {
	base string
	http *http.Client
}

// NewClient builds a Client rooted at the given base URL.
func NewClient(base string) *Client {
	jar, _ := cookiejar.New(nil)
	return &Client{
		base: base,
		http: &http.Client{Jar: jar, Timeout: 10 * time.Second},
	}
}

// Base returns the base URL, used to build shareable links.
func (c *Client) Base() string { return c.base }

// statusError is a non-OK HTTP response.  Its text matches what the
// error page receives as the redirect reason.
type statusError struct {
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("Request failed with status %d", e.status)
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return &statusError{status: resp.StatusCode}
		}
		return nil
	}
	// Form endpoints report failure inside the body, so decode even
	// on non-OK statuses and let the caller read success/message.
	return json.NewDecoder(resp.Body).Decode(out)
}

// Login posts admin credentials.  The session cookie lands in the jar.
func (c *Client) Login(ctx context.Context, username, password string) (handler.VisualResponse, error) {
	var out handler.VisualResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/login",
		map[string]any{"username": username, "password": password}, &out)
	return out, err
}

// Register submits a registration for an event.
func (c *Client) Register(ctx context.Context, name string, member bool, eventID int) (handler.VisualResponse, error) {
	var out handler.VisualResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/register",
		map[string]any{"name": name, "member": member, "event": eventID}, &out)
	return out, err
}

// EventDetail fetches the public detail view of one event.  A non-OK
// status is returned as a statusError so the detail page can redirect
// with the reason.
func (c *Client) EventDetail(ctx context.Context, eventID int) (model.EventDetail, error) {
	var detail model.EventDetail
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/events?event=%d", c.base, eventID), nil)
	if err != nil {
		return detail, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return detail, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return detail, &statusError{status: resp.StatusCode}
	}
	err = json.NewDecoder(resp.Body).Decode(&detail)
	return detail, err
}

// Events fetches the full event list for the dashboard.
func (c *Client) Events(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/api/events", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, err
	}
	return events, nil
}

// CreateEvent posts a new event.
func (c *Client) CreateEvent(ctx context.Context, e model.Event) (handler.VisualResponse, error) {
	var out handler.VisualResponse
	err := c.doJSON(ctx, http.MethodPost, "/api/events", e, &out)
	return out, err
}

// UpdateEvent puts edited event fields.
func (c *Client) UpdateEvent(ctx context.Context, e model.Event) (handler.VisualResponse, error) {
	var out handler.VisualResponse
	err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("/api/events?event=%d", e.ID), e, &out)
	return out, err
}

// DeleteEvent deletes an event.  The call returns only after the
// backend has confirmed the delete, so a refetch issued afterwards
// observes the removal.
func (c *Client) DeleteEvent(ctx context.Context, eventID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/event?event=%d", eventID), nil, nil)
}

// Participants fetches the roster of one event.
func (c *Client) Participants(ctx context.Context, eventID int) ([]model.Participant, error) {
	var participants []model.Participant
	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/api/participants?event=%d", c.base, eventID), nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, &statusError{status: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(&participants); err != nil {
		return nil, err
	}
	return participants, nil
}

// DeleteParticipant removes a participant and frees their seat.
func (c *Client) DeleteParticipant(ctx context.Context, participantID int) error {
	return c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/api/participant?participant=%d", participantID), nil, nil)
}
