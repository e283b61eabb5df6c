package webui

import (
	"context"
	"sync"
	"time"
)

const feedbackVisibleFor = 5 * time.Second

// RegistrationForm drives the public registration form.  Submit
// disables the control, posts the form, renders the backend's message
// in the feedback banner and refreshes the event summary once the
// banner clears.  Transport failures render exactly like a backend
// rejection; nothing is retried.
type RegistrationForm struct {
	client *Client
	view   View
	detail *EventDetail

	feedbackFor time.Duration

	mu     sync.Mutex
	timers []*time.Timer
}

// NewRegistrationForm builds the controller for a registration page.
func NewRegistrationForm(client *Client, view View, detail *EventDetail) *RegistrationForm {
	return &RegistrationForm{
		client:      client,
		view:        view,
		detail:      detail,
		feedbackFor: feedbackVisibleFor,
	}
}

// Submit posts the form's name and membership checkbox for the page's
// event.
func (rf *RegistrationForm) Submit(ctx context.Context) {
	rf.view.SetText(ElemSubmitLabel, "Loading...")
	rf.view.SetEnabled(ElemSubmitButton, false)

	name := rf.view.Field("name")
	member := rf.view.Checked("member")

	resp, err := rf.client.Register(ctx, name, member, rf.detail.EventID())
	switch {
	case err != nil:
		rf.view.SetText(ElemSubmitLabel, "Error!")
		rf.view.SetStyle(ElemSubmitLabel, StyleDanger)
		rf.showFeedback(err.Error(), StyleDanger)
	case resp.Success:
		rf.view.SetText(ElemSubmitLabel, "Success!")
		rf.view.SetStyle(ElemSubmitLabel, StyleSuccess)
		rf.showFeedback(resp.Message, StyleSuccess)
	default:
		rf.view.SetText(ElemSubmitLabel, "Error!")
		rf.view.SetStyle(ElemSubmitLabel, StyleDanger)
		rf.showFeedback(resp.Message, StyleDanger)
	}

	rf.after(rf.feedbackFor, func() {
		rf.view.SetText(ElemSubmitLabel, "register")
		rf.view.SetStyle(ElemSubmitLabel, StyleNone)
		rf.view.SetEnabled(ElemSubmitButton, true)
		rf.detail.Load(context.Background())
	})
}

// showFeedback renders the banner and schedules its clear.
func (rf *RegistrationForm) showFeedback(message string, style Style) {
	rf.view.SetText(ElemResponseText, message)
	rf.view.SetStyle(ElemResponseText, style)
	rf.after(rf.feedbackFor, func() {
		rf.view.SetText(ElemResponseText, "")
		rf.view.SetStyle(ElemResponseText, StyleNone)
	})
}

func (rf *RegistrationForm) after(d time.Duration, fn func()) {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	rf.timers = append(rf.timers, time.AfterFunc(d, fn))
}

// Stop cancels pending feedback timers as part of view teardown.
func (rf *RegistrationForm) Stop() {
	rf.mu.Lock()
	defer rf.mu.Unlock()
	for _, t := range rf.timers {
		t.Stop()
	}
	rf.timers = nil
}
