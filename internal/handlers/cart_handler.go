package handlers

import (
	"errors"
	"log"

	"parfum/internal/checkout"

	"github.com/gofiber/fiber/v2"
)

// CartHandler exposes the authenticated user's cart. Each user gets an
// isolated storage instance from the provider; adding to the cart therefore
// always happens in an authenticated context.
type CartHandler struct {
	provider *checkout.StorageProvider
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(provider *checkout.StorageProvider) *CartHandler {
	return &CartHandler{
		provider: provider,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Put("/items/:productId", h.HandleSetQuantity)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
	cartRoutes.Delete("/", h.HandleClearCart)
}

func (h *CartHandler) cartFor(c *fiber.Ctx) (*checkout.Cart, error) {
	userID, _ := c.Locals("user_id").(string)
	if userID == "" {
		return nil, errors.New("not authenticated")
	}
	return checkout.NewCart(h.provider.ForUser(userID)), nil
}

func (h *CartHandler) renderCart(c *fiber.Ctx, cart *checkout.Cart) error {
	items, err := cart.Items()
	if err != nil {
		return h.cartError(c, err)
	}
	total, err := cart.Total()
	if err != nil {
		return h.cartError(c, err)
	}
	if items == nil {
		items = []checkout.LineItem{}
	}
	return c.JSON(fiber.Map{
		"items": items,
		"total": total,
	})
}

func (h *CartHandler) cartError(c *fiber.Ctx, err error) error {
	log.Printf("Cart error: %v", err)
	var malformed *checkout.MalformedStateError
	if errors.As(err, &malformed) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Stored cart state is corrupted",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Cart operation failed",
		"error":   err.Error(),
	})
}

// HandleGetCart returns the current cart contents and total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}
	return h.renderCart(c, cart)
}

// AddItemRequest represents the request body for adding a cart line.
type AddItemRequest struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// HandleAddItem merges an item into the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	var req AddItemRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "productId is required",
		})
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}

	item := checkout.LineItem{
		ProductID: req.ProductID,
		Name:      req.Name,
		UnitPrice: req.UnitPrice,
		Image:     req.Image,
	}
	if err := cart.Add(item, quantity); err != nil {
		return h.cartError(c, err)
	}
	return h.renderCart(c, cart)
}

// SetQuantityRequest represents the request body for a quantity update.
type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// HandleSetQuantity updates a line's quantity; below 1 removes the line.
func (h *CartHandler) HandleSetQuantity(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	var req SetQuantityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := cart.SetQuantity(c.Params("productId"), req.Quantity); err != nil {
		return h.cartError(c, err)
	}
	return h.renderCart(c, cart)
}

// HandleRemoveItem removes a line from the cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	if err := cart.Remove(c.Params("productId")); err != nil {
		return h.cartError(c, err)
	}
	return h.renderCart(c, cart)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	cart, err := h.cartFor(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": err.Error()})
	}

	cart.Clear()
	return h.renderCart(c, cart)
}
