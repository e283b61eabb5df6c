package webui

import (
	"context"
	"sync/atomic"
)

// LoginForm drives the admin login form.  A single in-flight flag
// drops submits that arrive while a request is outstanding, so rapid
// double-clicks post exactly once.  Failures render inline feedback
// text alongside the red styling; success navigates to the dashboard.
type LoginForm struct {
	client *Client
	view   View

	inFlight atomic.Bool
}

// NewLoginForm builds the controller for the login page.
func NewLoginForm(client *Client, view View) *LoginForm {
	return &LoginForm{client: client, view: view}
}

// Submit posts the entered credentials.  Returns false when the
// submit was dropped because another one is still in flight.
func (lf *LoginForm) Submit(ctx context.Context) bool {
	if !lf.inFlight.CompareAndSwap(false, true) {
		return false
	}
	defer lf.inFlight.Store(false)

	lf.view.SetText(ElemSubmitLabel, "Loading...")
	lf.view.SetEnabled(ElemSubmitButton, false)

	username := lf.view.Field("username")
	password := lf.view.Field("password")

	resp, err := lf.client.Login(ctx, username, password)
	switch {
	case err != nil:
		lf.view.SetText(ElemSubmitLabel, "Error!")
		lf.view.SetStyle(ElemSubmitLabel, StyleDanger)
		lf.view.SetText(ElemResponseText, err.Error())
		lf.view.SetStyle(ElemResponseText, StyleDanger)
	case resp.Success:
		lf.view.SetText(ElemSubmitLabel, "Success!")
		lf.view.SetStyle(ElemSubmitLabel, StyleSuccess)
		lf.view.Navigate("/admin/dashboard.html")
	default:
		lf.view.SetText(ElemSubmitLabel, "Error!")
		lf.view.SetStyle(ElemSubmitLabel, StyleDanger)
		lf.view.SetText(ElemResponseText, resp.Message)
		lf.view.SetStyle(ElemResponseText, StyleDanger)
	}

	lf.view.SetText(ElemSubmitLabel, "login")
	lf.view.SetStyle(ElemSubmitLabel, StyleNone)
	lf.view.SetEnabled(ElemSubmitButton, true)
	return true
}
