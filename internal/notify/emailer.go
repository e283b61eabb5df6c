// Package notify sends committee notification emails: the daily
// posting digest and the per-event closure summary.
package notify

import (
	"fmt"
	"net/smtp"
)

// Emailer sends plain-text mail through an authenticated SMTP relay.
type Emailer struct {
	Host     string
	Port     string
	Sender   string
	Password string
}

// NewEmailer constructs an Emailer from SMTP settings.
func NewEmailer(host, port, sender, password string) *Emailer {
	return &Emailer{Host: host, Port: port, Sender: sender, Password: password}
}

// Send delivers a single message.  The body is sent as-is; templates
// in this package produce the body text.
func (e *Emailer) Send(address, subject, body string) error {
	msg := []byte(fmt.Sprintf("Subject: %s\r\n\r\n%s", subject, body))
	auth := smtp.PlainAuth("", e.Sender, e.Password, e.Host)
	if err := smtp.SendMail(e.Host+":"+e.Port, auth, e.Sender, []string{address}, msg); err != nil {
		return fmt.Errorf("send mail: %w", err)
	}
	return nil
}

// Sender is the narrow interface consumers depend on, so tests can
// capture mail instead of dialing a relay.
type Sender interface {
	Send(address, subject, body string) error
}
