package handlers

import (
	"errors"
	"log"

	"parfum/internal/checkout"
	"parfum/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler drives a full checkout attempt for the authenticated user:
// promo application, submission to the hosted payment page, and the
// confirmation leg on return from it.
type CheckoutHandler struct {
	provider *checkout.StorageProvider
	gateway  checkout.PaymentGateway
	promos   checkout.PromoValidator
	orders   *services.OrderService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(provider *checkout.StorageProvider, gateway checkout.PaymentGateway, promos checkout.PromoValidator, orders *services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		provider: provider,
		gateway:  gateway,
		promos:   promos,
		orders:   orders,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	checkoutRoutes := router.Group("/checkout")
	checkoutRoutes.Post("/", h.HandleSubmit)
	checkoutRoutes.Get("/confirm", h.HandleConfirm)
}

// SubmitRequest represents the request body for checkout submission.
type SubmitRequest struct {
	Customer       checkout.CustomerInfo `json:"customerInfo"`
	Shipping       checkout.ShippingInfo `json:"shippingInfo"`
	ShippingMethod string                `json:"shippingMethod"`
	PromoCode      string                `json:"promoCode"`
}

// HandleSubmit validates the checkout form, persists the pending snapshot,
// and returns the URL of the hosted payment page.
func (h *CheckoutHandler) HandleSubmit(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
	}

	var req SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	storage := h.provider.ForUser(userID)
	cart := checkout.NewCart(storage)
	attempt := checkout.NewCheckout(storage, cart, h.gateway, h.promos)

	if req.ShippingMethod != "" {
		attempt.SetShippingMethod(checkout.ShippingMethod(req.ShippingMethod))
	}

	if req.PromoCode != "" {
		if _, err := attempt.ApplyPromo(c.Context(), req.PromoCode); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": err.Error(),
			})
		}
	}

	url, err := attempt.Submit(c.Context(), req.Customer, req.Shipping)
	if err != nil {
		log.Printf("Checkout submission failed for user %s: %v", userID, err)
		status := fiber.StatusBadRequest
		if !errors.Is(err, checkout.ErrEmptyCart) &&
			!errors.Is(err, checkout.ErrMissingCustomerInfo) &&
			!errors.Is(err, checkout.ErrMissingShippingInfo) {
			status = fiber.StatusInternalServerError
		}
		return c.Status(status).JSON(fiber.Map{
			"message": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"url": url})
}

// HandleConfirm runs the payment confirmation state machine for the session
// id carried on the return redirect.
func (h *CheckoutHandler) HandleConfirm(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Not authenticated"})
	}

	storage := h.provider.ForUser(userID)
	cart := checkout.NewCart(storage)
	confirmer := checkout.NewConfirmer(storage, cart, h.gateway, h.orders)

	result := confirmer.Confirm(c.Context(), c.Query("session_id"))

	response := fiber.Map{
		"state":    result.State,
		"redirect": result.Redirect,
	}
	if result.Err != nil {
		log.Printf("Payment confirmation for user %s ended in %s: %v", userID, result.State, result.Err)
		response["error"] = result.Err.Error()
	}

	// Always 200: the outcome and redirect target live in the body, and the
	// client routes accordingly.
	return c.JSON(response)
}
