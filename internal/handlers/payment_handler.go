package handlers

import (
	"log"

	"parfum/internal/checkout"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler exposes the payment gateway operations: opening a hosted
// checkout session and verifying a session's paid status.
type PaymentHandler struct {
	gateway checkout.PaymentGateway
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(gateway checkout.PaymentGateway) *PaymentHandler {
	return &PaymentHandler{
		gateway: gateway,
	}
}

// RegisterRoutes registers the payment routes with the Fiber app.
func (h *PaymentHandler) RegisterRoutes(router fiber.Router) {
	paymentRoutes := router.Group("/payment")
	paymentRoutes.Post("/create-checkout-session", h.HandleCreateCheckoutSession)
	paymentRoutes.Post("/verify-session", h.HandleVerifySession)
}

// CreateSessionRequest represents the request body for session creation.
type CreateSessionRequest struct {
	Items []struct {
		Name     string  `json:"name"`
		Price    float64 `json:"price"`
		Quantity int     `json:"quantity"`
		Image    string  `json:"image"`
	} `json:"items"`
	CustomerInfo struct {
		Email string `json:"email"`
	} `json:"customerInfo"`
}

// HandleCreateCheckoutSession opens a hosted payment session and returns its URL.
func (h *PaymentHandler) HandleCreateCheckoutSession(c *fiber.Ctx) error {
	var req CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout session body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "At least one item is required",
		})
	}

	items := make([]checkout.LineItem, 0, len(req.Items))
	for _, item := range req.Items {
		items = append(items, checkout.LineItem{
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  item.Quantity,
			Image:     item.Image,
		})
	}

	url, err := h.gateway.CreateCheckoutSession(c.Context(), checkout.SessionRequest{
		Items:         items,
		CustomerEmail: req.CustomerInfo.Email,
	})
	if err != nil {
		log.Printf("Checkout session error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"url": url})
}

// VerifySessionRequest represents the request body for session verification.
type VerifySessionRequest struct {
	SessionID string `json:"sessionId"`
}

// HandleVerifySession reports the paid status of a payment session.
func (h *PaymentHandler) HandleVerifySession(c *fiber.Ctx) error {
	var req VerifySessionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing verify session body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if req.SessionID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "sessionId is required",
		})
	}

	status, err := h.gateway.VerifySession(c.Context(), req.SessionID)
	if err != nil {
		log.Printf("Payment verification error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"status": status})
}
