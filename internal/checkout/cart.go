package checkout

import (
	"encoding/json"
	"fmt"
)

// LineItem is one product entry in the cart.
type LineItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
}

// Cart holds the customer's line items. Lines are unique by product ID and
// every mutation writes the full cart back to storage before returning, so
// the cart survives the redirect to the external payment page.
type Cart struct {
	storage Storage
}

// NewCart creates a Cart backed by the given storage.
func NewCart(storage Storage) *Cart {
	return &Cart{storage: storage}
}

// Items returns the current cart lines. A missing cart is an empty cart;
// a cart that fails to parse is a MalformedStateError.
func (c *Cart) Items() ([]LineItem, error) {
	raw, ok := c.storage.Get(KeyCart)
	if !ok || raw == "" {
		return nil, nil
	}

	var items []LineItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, &MalformedStateError{Key: KeyCart, Err: err}
	}
	return items, nil
}

// Add merges the item into the cart, summing quantities for an existing line.
func (c *Cart) Add(item LineItem, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("quantity must be at least 1, got %d", quantity)
	}

	items, err := c.Items()
	if err != nil {
		return err
	}

	merged := false
	for i := range items {
		if items[i].ProductID == item.ProductID {
			items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		item.Quantity = quantity
		items = append(items, item)
	}

	return c.persist(items)
}

// Remove deletes the line with the given product ID. Removing a product that
// is not in the cart is a no-op.
func (c *Cart) Remove(productID string) error {
	items, err := c.Items()
	if err != nil {
		return err
	}

	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}

	return c.persist(kept)
}

// SetQuantity updates the quantity of an existing line. A quantity below 1
// removes the line entirely.
func (c *Cart) SetQuantity(productID string, quantity int) error {
	if quantity < 1 {
		return c.Remove(productID)
	}

	items, err := c.Items()
	if err != nil {
		return err
	}

	for i := range items {
		if items[i].ProductID == productID {
			items[i].Quantity = quantity
			return c.persist(items)
		}
	}
	return fmt.Errorf("product %s not in cart", productID)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.storage.Delete(KeyCart)
}

// Total returns the sum of unit price times quantity over all lines.
func (c *Cart) Total() (float64, error) {
	items, err := c.Items()
	if err != nil {
		return 0, err
	}

	var total float64
	for _, item := range items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total, nil
}

func (c *Cart) persist(items []LineItem) error {
	if len(items) == 0 {
		c.storage.Delete(KeyCart)
		return nil
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}
	c.storage.Set(KeyCart, string(raw))
	return nil
}
