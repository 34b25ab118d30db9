package repositories

import (
	"fmt"

	"parfum/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMPromoRepository is a GORM implementation of PromoRepository.
type GORMPromoRepository struct {
	db *gorm.DB
}

// NewGORMPromoRepository creates a new instance of GORMPromoRepository.
func NewGORMPromoRepository(db *gorm.DB) *GORMPromoRepository {
	return &GORMPromoRepository{
		db: db,
	}
}

// GetByCode retrieves a promo code by its code from the database.
func (r *GORMPromoRepository) GetByCode(code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	if err := r.db.First(&promo, "code = ?", code).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrPromoNotFound
		}
		return nil, fmt.Errorf("failed to get promo code %s: %w", code, err)
	}
	return &promo, nil
}

// Create creates a new promo code in the database.
func (r *GORMPromoRepository) Create(promo *models.PromoCode) error {
	if promo.ID == "" {
		promo.ID = uuid.New().String()
	}
	if err := r.db.Create(promo).Error; err != nil {
		return fmt.Errorf("failed to create promo code: %w", err)
	}
	return nil
}

// IncrementUsage bumps the used counter for a promo code.
func (r *GORMPromoRepository) IncrementUsage(id string) error {
	res := r.db.Model(&models.PromoCode{}).Where("id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return fmt.Errorf("failed to increment promo usage: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrPromoNotFound
	}
	return nil
}
