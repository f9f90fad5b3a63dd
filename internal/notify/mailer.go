// Package notify delivers birthday reminders over SMTP.
package notify

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Mailer sends one reminder email per dispatch to the configured
// address (the reminders go to the account owner, not the friend).
//
// Failure isolation is deliberate: missing credentials are a logged
// skip, and transport errors are logged and swallowed. Dispatch never
// reports an error, so one failed send cannot block the remaining
// friends or rules in a matching cycle.
type Mailer struct {
	host     string
	port     int
	address  string
	password string
	log      zerolog.Logger
}

// NewMailer creates a Mailer. Empty address or password puts it in
// degraded mode where every dispatch is skipped with a warning.
func NewMailer(host string, port int, address, password string, log zerolog.Logger) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		address:  address,
		password: password,
		log:      log,
	}
}

// Dispatch formats and sends a single reminder for fullName, whose
// birthday is daysUntil days away (0 = today).
func (m *Mailer) Dispatch(ctx context.Context, fullName string, daysUntil int) {
	if m.address == "" || m.password == "" {
		m.log.Warn().Str("friend", fullName).Msg("email credentials not set, skipping email")
		return
	}

	var subject, body string
	if daysUntil == 0 {
		subject = fmt.Sprintf("It's %s's Birthday Today!", fullName)
		body = fmt.Sprintf("Don't forget to wish %s a happy birthday today!", fullName)
	} else {
		subject = fmt.Sprintf("Upcoming Birthday: %s", fullName)
		body = fmt.Sprintf("%s's birthday is in %d days.", fullName, daysUntil)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.address)
	msg.SetHeader("To", m.address)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	dialer := gomail.NewDialer(m.host, m.port, m.address, m.password)
	dialer.SSL = true

	if err := dialer.DialAndSend(msg); err != nil {
		m.log.Error().Err(err).Str("friend", fullName).Msg("failed to send email")
		return
	}

	m.log.Info().Str("friend", fullName).Int("days_until", daysUntil).Msg("email sent")
}
