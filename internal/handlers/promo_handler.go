package handlers

import (
	"fmt"
	"log"

	"parfum/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// PromoHandler handles HTTP requests for promo code validation.
type PromoHandler struct {
	service  *services.PromoService
	validate *validator.Validate
}

// NewPromoHandler creates a new PromoHandler.
func NewPromoHandler(service *services.PromoService) *PromoHandler {
	return &PromoHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the promo routes with the Fiber app.
func (h *PromoHandler) RegisterRoutes(router fiber.Router) {
	promoRoutes := router.Group("/promo")
	promoRoutes.Post("/validate", h.HandleValidate)
}

// ValidatePromoRequest represents the request body for promo validation.
type ValidatePromoRequest struct {
	Code        string  `json:"code" validate:"required"`
	OrderAmount float64 `json:"orderAmount" validate:"gte=0"`
}

// HandleValidate validates a promo code against the order amount.
func (h *PromoHandler) HandleValidate(c *fiber.Ctx) error {
	var req ValidatePromoRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing promo validation body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(req); err != nil {
		validationErrors := err.(validator.ValidationErrors)
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}

	result, err := h.service.Validate(c.Context(), req.Code, req.OrderAmount)
	if err != nil {
		log.Printf("Promo code %s rejected: %v", req.Code, err)
		// The rejection reason is part of the contract and shown to the customer.
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":        true,
		"valid":          true,
		"discountAmount": result.DiscountAmount,
		"discountType":   result.DiscountType,
		"discountValue":  result.DiscountValue,
		"code":           result.Code,
	})
}
