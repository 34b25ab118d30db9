package services

import (
	"errors"
	"fmt"

	"parfum/internal/models"
	"parfum/internal/repositories"
)

// ErrAlreadySubscribed is returned when an email is subscribed twice.
var ErrAlreadySubscribed = errors.New("Email already subscribed")

// NewsletterService handles newsletter signups and subscriber notifications.
type NewsletterService struct {
	repo        repositories.NewsletterRepository
	mailer      Mailer
	frontendURL string
}

// NewNewsletterService creates a new NewsletterService. The mailer is
// optional; without it notifications are skipped.
func NewNewsletterService(repo repositories.NewsletterRepository, mailer Mailer, frontendURL string) *NewsletterService {
	return &NewsletterService{
		repo:        repo,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// Subscribe adds an email to the subscriber list.
func (s *NewsletterService) Subscribe(email string) (*models.NewsletterSubscriber, error) {
	if existing, err := s.repo.GetByEmail(email); err == nil && existing != nil {
		return nil, ErrAlreadySubscribed
	}

	subscriber := &models.NewsletterSubscriber{Email: email}
	if err := s.repo.Create(subscriber); err != nil {
		return nil, fmt.Errorf("failed to subscribe %s: %w", email, err)
	}
	return subscriber, nil
}

// NotifyNewPerfume emails all subscribers about a newly added fragrance.
func (s *NewsletterService) NotifyNewPerfume(perfume *models.Perfume) error {
	if s.mailer == nil {
		return nil
	}

	subscribers, err := s.repo.GetAll()
	if err != nil {
		return fmt.Errorf("failed to load subscribers: %w", err)
	}
	if len(subscribers) == 0 {
		return nil
	}

	recipients := make([]string, 0, len(subscribers))
	for _, sub := range subscribers {
		recipients = append(recipients, sub.Email)
	}

	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
			<h2 style="color: #333;">New Perfume Added!</h2>
			<h3>%s</h3>
			<p><strong>Brand:</strong> %s</p>
			<p><strong>Price:</strong> $%.2f</p>
			<p>%s</p>
			<a href="%s/perfumes/%s">View Perfume</a>
		</div>`,
		perfume.Name, perfume.Brand, perfume.Price, perfume.Description, s.frontendURL, perfume.ID)

	return s.mailer.Send(recipients, "", "🌸 New Fragrance Alert!", body)
}
