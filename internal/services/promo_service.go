package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"parfum/internal/checkout"
	"parfum/internal/models"
	"parfum/internal/repositories"
)

// Promo rejection reasons. The messages are shown to the customer as-is.
var (
	ErrPromoInvalid       = errors.New("Invalid promo code")
	ErrPromoInactive      = errors.New("Promo code is inactive")
	ErrPromoExpired       = errors.New("Promo code has expired")
	ErrPromoLimitExceeded = errors.New("Promo code usage limit exceeded")
)

// PromoService handles promo code validation and discount calculation.
type PromoService struct {
	repo repositories.PromoRepository
	now  func() time.Time
}

// NewPromoService creates a new PromoService.
func NewPromoService(repo repositories.PromoRepository) *PromoService {
	return &PromoService{
		repo: repo,
		now:  time.Now,
	}
}

// Validate checks a promo code against the order amount and returns the
// discount on success. The code is matched case-insensitively. A successful
// validation counts against the code's usage limit.
// Implements checkout.PromoValidator.
func (s *PromoService) Validate(ctx context.Context, code string, orderAmount float64) (checkout.PromoResult, error) {
	promo, err := s.repo.GetByCode(strings.ToUpper(code))
	if err != nil {
		if errors.Is(err, repositories.ErrPromoNotFound) {
			return checkout.PromoResult{}, ErrPromoInvalid
		}
		return checkout.PromoResult{}, fmt.Errorf("failed to look up promo code: %w", err)
	}

	if !promo.IsActive {
		return checkout.PromoResult{}, ErrPromoInactive
	}
	if s.now().After(promo.ExpiryDate) {
		return checkout.PromoResult{}, ErrPromoExpired
	}
	if promo.UsageLimit > 0 && promo.UsedCount >= promo.UsageLimit {
		return checkout.PromoResult{}, ErrPromoLimitExceeded
	}
	if orderAmount < promo.MinOrderAmount {
		return checkout.PromoResult{}, fmt.Errorf("Minimum order amount of $%.0f required", promo.MinOrderAmount)
	}

	var discount float64
	if promo.DiscountType == models.DiscountTypePercentage {
		discount = orderAmount * promo.DiscountValue / 100
		if promo.MaxDiscount > 0 && discount > promo.MaxDiscount {
			discount = promo.MaxDiscount
		}
	} else {
		discount = promo.DiscountValue
	}

	if err := s.repo.IncrementUsage(promo.ID); err != nil {
		log.Printf("Failed to increment usage for promo %s: %v", promo.Code, err)
	}

	return checkout.PromoResult{
		DiscountAmount: discount,
		DiscountType:   promo.DiscountType,
		DiscountValue:  promo.DiscountValue,
		Code:           promo.Code,
	}, nil
}
