package services

import (
	"gopkg.in/gomail.v2"
)

// Mailer sends HTML email on behalf of the shop.
type Mailer interface {
	Send(to []string, replyTo, subject, htmlBody string) error
}

// SMTPMailer is a Mailer backed by an SMTP relay (Gmail in production).
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer creates a Mailer that relays through the given SMTP host.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   username,
	}
}

// Send delivers a single HTML message to the given recipients.
func (m *SMTPMailer) Send(to []string, replyTo, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to...)
	if replyTo != "" {
		msg.SetHeader("Reply-To", replyTo)
	}
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	return m.dialer.DialAndSend(msg)
}
