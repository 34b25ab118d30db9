package repositories

import (
	"errors"

	"parfum/internal/models"
)

// ErrSubscriberNotFound is returned when no subscriber matches the lookup.
var ErrSubscriberNotFound = errors.New("subscriber not found")

// NewsletterRepository defines the interface for newsletter subscriber data access.
type NewsletterRepository interface {
	GetAll() ([]models.NewsletterSubscriber, error)
	GetByEmail(email string) (*models.NewsletterSubscriber, error)
	Create(subscriber *models.NewsletterSubscriber) error
}
