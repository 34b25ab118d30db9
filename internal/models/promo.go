package models

import (
	"time"

	"gorm.io/gorm"
)

// Discount types supported by promo codes.
const (
	DiscountTypePercentage = "percentage"
	DiscountTypeFixed      = "fixed"
)

// PromoCode represents a discount code redeemable at checkout.
type PromoCode struct {
	ID             string    `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Code           string    `json:"code" gorm:"uniqueIndex;type:varchar(50)" validate:"required,min=3,max=50"`
	DiscountType   string    `json:"discountType" validate:"required,oneof=percentage fixed"`
	DiscountValue  float64   `json:"discountValue" validate:"required,gt=0"`
	MinOrderAmount float64   `json:"minOrderAmount" validate:"gte=0"`
	MaxDiscount    float64   `json:"maxDiscount" validate:"gte=0"` // 0 means no cap (percentage only)
	UsageLimit     int       `json:"usageLimit" validate:"gte=0"`  // 0 means unlimited
	UsedCount      int       `json:"usedCount"`
	IsActive       bool      `json:"isActive"`
	ExpiryDate     time.Time `json:"expiryDate"`
	gorm.Model               // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}
