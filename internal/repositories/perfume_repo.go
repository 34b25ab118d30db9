package repositories

import (
	"parfum/internal/models"
)

// PerfumeRepository defines the interface for perfume data access.
type PerfumeRepository interface {
	GetAll() ([]models.Perfume, error)
	GetByID(id string) (*models.Perfume, error)
	Create(perfume *models.Perfume) error
	Update(perfume *models.Perfume) error
	Delete(id string) error
}
