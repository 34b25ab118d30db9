package handlers

import (
	"errors"
	"fmt"
	"log"

	"parfum/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewsletterHandler handles HTTP requests for newsletter signups.
type NewsletterHandler struct {
	service  *services.NewsletterService
	validate *validator.Validate
}

// NewNewsletterHandler creates a new NewsletterHandler.
func NewNewsletterHandler(service *services.NewsletterService) *NewsletterHandler {
	return &NewsletterHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the newsletter routes with the Fiber app.
func (h *NewsletterHandler) RegisterRoutes(router fiber.Router) {
	newsletterRoutes := router.Group("/newsletter")
	newsletterRoutes.Post("/subscribe", h.HandleSubscribe)
}

// SubscribeRequest represents the request body for a newsletter signup.
type SubscribeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// HandleSubscribe adds an email to the subscriber list.
func (h *NewsletterHandler) HandleSubscribe(c *fiber.Ctx) error {
	var req SubscribeRequest
	if err := c.BodyParser(&req); err != nil {
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

	subscriber, err := h.service.Subscribe(req.Email)
	if err != nil {
		if errors.Is(err, services.ErrAlreadySubscribed) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
		log.Printf("Error subscribing %s: %v", req.Email, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not subscribe",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":    "Successfully subscribed to newsletter",
		"subscriber": subscriber,
	})
}
