package services

import (
	"fmt"
)

// ContactService relays contact-form messages to the shop inbox.
type ContactService struct {
	mailer Mailer
	inbox  string
}

// NewContactService creates a new ContactService.
func NewContactService(mailer Mailer, inbox string) *ContactService {
	return &ContactService{
		mailer: mailer,
		inbox:  inbox,
	}
}

// SendMessage forwards a customer message to the shop inbox, with the
// customer's address as Reply-To.
func (s *ContactService) SendMessage(name, email, subject, message string) error {
	if s.mailer == nil {
		return fmt.Errorf("mail delivery is not configured")
	}

	body := fmt.Sprintf(`
		<h3>New Contact Form Message</h3>
		<p><strong>Name:</strong> %s</p>
		<p><strong>Email:</strong> %s</p>
		<p><strong>Subject:</strong> %s</p>
		<p><strong>Message:</strong></p>
		<p>%s</p>`,
		name, email, subject, message)

	if err := s.mailer.Send([]string{s.inbox}, email, fmt.Sprintf("Contact Form: %s", subject), body); err != nil {
		return fmt.Errorf("failed to send contact message: %w", err)
	}
	return nil
}
