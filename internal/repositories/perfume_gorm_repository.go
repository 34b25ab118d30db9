package repositories

import (
	"fmt"
	"parfum/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPerfumeRepository is a GORM implementation of PerfumeRepository.
type GORMPerfumeRepository struct {
	db *gorm.DB
}

// NewGORMPerfumeRepository creates a new instance of GORMPerfumeRepository.
func NewGORMPerfumeRepository(db *gorm.DB) *GORMPerfumeRepository {
	return &GORMPerfumeRepository{
		db: db,
	}
}

// GetAll retrieves all perfumes from the database.
func (r *GORMPerfumeRepository) GetAll() ([]models.Perfume, error) {
	var perfumes []models.Perfume
	if err := r.db.Find(&perfumes).Error; err != nil {
		return nil, fmt.Errorf("failed to get all perfumes: %w", err)
	}
	return perfumes, nil
}

// GetByID retrieves a single perfume by its ID from the database.
func (r *GORMPerfumeRepository) GetByID(id string) (*models.Perfume, error) {
	var perfume models.Perfume
	if err := r.db.First(&perfume, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("perfume with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get perfume by ID %s: %w", id, err)
	}
	return &perfume, nil
}

// Create creates a new perfume in the database.
func (r *GORMPerfumeRepository) Create(perfume *models.Perfume) error {
	if perfume.ID == "" {
		perfume.ID = uuid.New().String()
	}
	if err := r.db.Create(perfume).Error; err != nil {
		return fmt.Errorf("failed to create perfume: %w", err)
	}
	return nil
}

// Update updates an existing perfume in the database.
func (r *GORMPerfumeRepository) Update(perfume *models.Perfume) error {
	res := r.db.Save(perfume) // Save will update all fields, including zero values
	if res.Error != nil {
		return fmt.Errorf("failed to update perfume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("perfume with ID %s not found for update", perfume.ID)
	}
	return nil
}

// Delete deletes a perfume by its ID from the database.
func (r *GORMPerfumeRepository) Delete(id string) error {
	res := r.db.Delete(&models.Perfume{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete perfume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("perfume with ID %s not found for deletion", id)
	}
	return nil
}
