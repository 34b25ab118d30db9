package services

import (
	"context"
	"testing"
	"time"

	"parfum/internal/models"
	"parfum/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func newPromoServiceWithCode(t *testing.T, promo models.PromoCode) (*PromoService, *repositories.MockPromoRepository) {
	t.Helper()
	repo := repositories.NewMockPromoRepository()
	assert.NoError(t, repo.Create(&promo))

	service := NewPromoService(repo)
	service.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return service, repo
}

func activePromo() models.PromoCode {
	return models.PromoCode{
		Code:           "WELCOME10",
		DiscountType:   models.DiscountTypePercentage,
		DiscountValue:  10,
		MinOrderAmount: 50,
		MaxDiscount:    20,
		UsageLimit:     100,
		IsActive:       true,
		ExpiryDate:     time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestPromoService_ValidatePercentageDiscount(t *testing.T) {
	service, _ := newPromoServiceWithCode(t, activePromo())

	result, err := service.Validate(context.Background(), "WELCOME10", 80)

	assert.NoError(t, err)
	assert.Equal(t, 8.0, result.DiscountAmount)
	assert.Equal(t, models.DiscountTypePercentage, result.DiscountType)
	assert.Equal(t, "WELCOME10", result.Code)
}

func TestPromoService_ValidateIsCaseInsensitive(t *testing.T) {
	service, _ := newPromoServiceWithCode(t, activePromo())

	result, err := service.Validate(context.Background(), "welcome10", 80)

	assert.NoError(t, err)
	assert.Equal(t, "WELCOME10", result.Code)
}

func TestPromoService_PercentageDiscountIsCapped(t *testing.T) {
	service, _ := newPromoServiceWithCode(t, activePromo())

	// 10% of 500 is 50, capped at the promo's MaxDiscount of 20.
	result, err := service.Validate(context.Background(), "WELCOME10", 500)

	assert.NoError(t, err)
	assert.Equal(t, 20.0, result.DiscountAmount)
}

func TestPromoService_FixedDiscount(t *testing.T) {
	promo := activePromo()
	promo.Code = "SAVE20"
	promo.DiscountType = models.DiscountTypeFixed
	promo.DiscountValue = 20
	service, _ := newPromoServiceWithCode(t, promo)

	result, err := service.Validate(context.Background(), "SAVE20", 200)

	assert.NoError(t, err)
	assert.Equal(t, 20.0, result.DiscountAmount)
}

func TestPromoService_UnknownCodeIsInvalid(t *testing.T) {
	service, _ := newPromoServiceWithCode(t, activePromo())

	_, err := service.Validate(context.Background(), "NOPE", 80)

	assert.ErrorIs(t, err, ErrPromoInvalid)
}

func TestPromoService_InactiveCodeIsRejected(t *testing.T) {
	promo := activePromo()
	promo.IsActive = false
	service, _ := newPromoServiceWithCode(t, promo)

	_, err := service.Validate(context.Background(), "WELCOME10", 80)

	assert.ErrorIs(t, err, ErrPromoInactive)
}

func TestPromoService_ExpiredCodeIsRejected(t *testing.T) {
	promo := activePromo()
	promo.ExpiryDate = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	service, _ := newPromoServiceWithCode(t, promo)

	_, err := service.Validate(context.Background(), "WELCOME10", 80)

	assert.ErrorIs(t, err, ErrPromoExpired)
}

func TestPromoService_UsageLimitIsEnforced(t *testing.T) {
	promo := activePromo()
	promo.UsageLimit = 1
	promo.UsedCount = 1
	service, _ := newPromoServiceWithCode(t, promo)

	_, err := service.Validate(context.Background(), "WELCOME10", 80)

	assert.ErrorIs(t, err, ErrPromoLimitExceeded)
}

func TestPromoService_MinimumOrderAmountIsEnforced(t *testing.T) {
	service, _ := newPromoServiceWithCode(t, activePromo())

	_, err := service.Validate(context.Background(), "WELCOME10", 30)

	assert.EqualError(t, err, "Minimum order amount of $50 required")
}

func TestPromoService_SuccessfulValidationCountsUsage(t *testing.T) {
	service, repo := newPromoServiceWithCode(t, activePromo())

	_, err := service.Validate(context.Background(), "WELCOME10", 80)
	assert.NoError(t, err)

	stored, err := repo.GetByCode("WELCOME10")
	assert.NoError(t, err)
	assert.Equal(t, 1, stored.UsedCount)
}
