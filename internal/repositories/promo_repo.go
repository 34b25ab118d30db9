package repositories

import (
	"errors"

	"parfum/internal/models"
)

// ErrPromoNotFound is returned when no promo code matches the lookup.
var ErrPromoNotFound = errors.New("promo code not found")

// PromoRepository defines the interface for promo code data access.
type PromoRepository interface {
	GetByCode(code string) (*models.PromoCode, error)
	Create(promo *models.PromoCode) error
	IncrementUsage(id string) error
}
