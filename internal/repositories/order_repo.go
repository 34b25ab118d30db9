package repositories

import (
	"errors"

	"parfum/internal/models"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	GetByUser(userID string) ([]models.Order, error)
	GetBySessionID(sessionID string) (*models.Order, error)
	Create(order *models.Order) error
}
