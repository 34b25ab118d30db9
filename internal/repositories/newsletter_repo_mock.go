package repositories

import (
	"sync"

	"parfum/internal/models"

	"github.com/google/uuid"
)

// MockNewsletterRepository is an in-memory implementation of NewsletterRepository.
type MockNewsletterRepository struct {
	subscribers map[string]models.NewsletterSubscriber // keyed by email
	mu          sync.RWMutex
}

// NewMockNewsletterRepository creates a new instance of MockNewsletterRepository.
func NewMockNewsletterRepository() *MockNewsletterRepository {
	return &MockNewsletterRepository{
		subscribers: make(map[string]models.NewsletterSubscriber),
	}
}

// GetAll returns all subscribers.
func (r *MockNewsletterRepository) GetAll() ([]models.NewsletterSubscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscriberList := make([]models.NewsletterSubscriber, 0, len(r.subscribers))
	for _, s := range r.subscribers {
		subscriberList = append(subscriberList, s)
	}
	return subscriberList, nil
}

// GetByEmail returns a subscriber by email.
func (r *MockNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	subscriber, ok := r.subscribers[email]
	if !ok {
		return nil, ErrSubscriberNotFound
	}
	return &subscriber, nil
}

// Create adds a new subscriber.
func (r *MockNewsletterRepository) Create(subscriber *models.NewsletterSubscriber) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if subscriber.ID == "" {
		subscriber.ID = uuid.New().String()
	}
	r.subscribers[subscriber.Email] = *subscriber
	return nil
}
