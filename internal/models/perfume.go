package models

import "gorm.io/gorm"

// Perfume represents a fragrance in the catalogue.
type Perfume struct {
	ID            string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name          string  `json:"name" validate:"required,min=2,max=100"`
	Brand         string  `json:"brand" validate:"required,min=2,max=100"`
	Description   string  `json:"description" validate:"omitempty,max=1000"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Image         string  `json:"image" validate:"omitempty,max=500"`
	Category      string  `json:"category" validate:"omitempty,max=100"`
	Concentration string  `json:"concentration" validate:"omitempty,max=50"` // e.g. "Eau de Parfum"
	CountInStock  int     `json:"countInStock" validate:"gte=0"`
	gorm.Model            // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
