package handlers

import (
	"parfum/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ChatbotHandler handles HTTP requests for the storefront chatbot.
type ChatbotHandler struct {
	service *services.ChatbotService
}

// NewChatbotHandler creates a new ChatbotHandler.
func NewChatbotHandler(service *services.ChatbotService) *ChatbotHandler {
	return &ChatbotHandler{
		service: service,
	}
}

// RegisterRoutes registers the chatbot routes with the Fiber app.
func (h *ChatbotHandler) RegisterRoutes(router fiber.Router) {
	chatbotRoutes := router.Group("/chatbot")
	chatbotRoutes.Post("/message", h.HandleMessage)
}

// ChatMessageRequest represents a single customer chat message.
type ChatMessageRequest struct {
	Message string `json:"message"`
}

// HandleMessage returns the chatbot's reply to a customer message.
func (h *ChatbotHandler) HandleMessage(c *fiber.Ctx) error {
	var req ChatMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "message is required",
		})
	}

	return c.JSON(fiber.Map{
		"reply": h.service.Reply(req.Message),
	})
}
