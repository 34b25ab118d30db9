package repositories

import (
	"sync"

	"parfum/internal/models"

	"github.com/google/uuid"
)

// MockPromoRepository is an in-memory implementation of PromoRepository.
type MockPromoRepository struct {
	promos map[string]models.PromoCode // keyed by code
	mu     sync.RWMutex
}

// NewMockPromoRepository creates a new instance of MockPromoRepository.
func NewMockPromoRepository() *MockPromoRepository {
	return &MockPromoRepository{
		promos: make(map[string]models.PromoCode),
	}
}

// GetByCode returns a promo code by its code.
func (r *MockPromoRepository) GetByCode(code string) (*models.PromoCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	promo, ok := r.promos[code]
	if !ok {
		return nil, ErrPromoNotFound
	}
	return &promo, nil
}

// Create adds a new promo code.
func (r *MockPromoRepository) Create(promo *models.PromoCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	r.promos[promo.Code] = *promo
	return nil
}

// IncrementUsage bumps the used counter for a promo code.
func (r *MockPromoRepository) IncrementUsage(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for code, promo := range r.promos {
		if promo.ID == id {
			promo.UsedCount++
			r.promos[code] = promo
			return nil
		}
	}
	return ErrPromoNotFound
}
