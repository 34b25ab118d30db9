package repositories

import (
	"fmt"

	"parfum/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNewsletterRepository is a GORM implementation of NewsletterRepository.
type GORMNewsletterRepository struct {
	db *gorm.DB
}

// NewGORMNewsletterRepository creates a new instance of GORMNewsletterRepository.
func NewGORMNewsletterRepository(db *gorm.DB) *GORMNewsletterRepository {
	return &GORMNewsletterRepository{
		db: db,
	}
}

// GetAll retrieves all subscribers from the database.
func (r *GORMNewsletterRepository) GetAll() ([]models.NewsletterSubscriber, error) {
	var subscribers []models.NewsletterSubscriber
	if err := r.db.Find(&subscribers).Error; err != nil {
		return nil, fmt.Errorf("failed to get subscribers: %w", err)
	}
	return subscribers, nil
}

// GetByEmail retrieves a subscriber by email from the database.
func (r *GORMNewsletterRepository) GetByEmail(email string) (*models.NewsletterSubscriber, error) {
	var subscriber models.NewsletterSubscriber
	if err := r.db.First(&subscriber, "email = ?", email).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrSubscriberNotFound
		}
		return nil, fmt.Errorf("failed to get subscriber by email %s: %w", email, err)
	}
	return &subscriber, nil
}

// Create creates a new subscriber in the database.
func (r *GORMNewsletterRepository) Create(subscriber *models.NewsletterSubscriber) error {
	if subscriber.ID == "" {
		subscriber.ID = uuid.New().String()
	}
	if err := r.db.Create(subscriber).Error; err != nil {
		return fmt.Errorf("failed to create subscriber: %w", err)
	}
	return nil
}
