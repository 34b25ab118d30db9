package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Checkout submission errors callers branch on.
var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrMissingCustomerInfo = errors.New("customer name and email are required")
	ErrMissingShippingInfo = errors.New("complete shipping information is required")
)

// CustomerInfo identifies the paying customer.
type CustomerInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ShippingInfo is the destination collected on the checkout form.
type ShippingInfo struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Snapshot is the cart, customer, and totals captured at submission time. It
// must outlive the redirect to the external payment page, so it is persisted
// to storage before the redirect URL is handed back.
type Snapshot struct {
	Items    []LineItem   `json:"items"`
	Shipping ShippingInfo `json:"shippingInfo"`
	Customer CustomerInfo `json:"customerInfo"`
	Totals   Totals       `json:"totals"`
}

// Checkout drives one checkout attempt: promo application, totals, and the
// handoff to the hosted payment page.
type Checkout struct {
	storage Storage
	cart    *Cart
	gateway PaymentGateway
	promos  PromoValidator

	method ShippingMethod
	promo  PromoResult
}

// NewCheckout creates a Checkout over the given cart and collaborators.
func NewCheckout(storage Storage, cart *Cart, gateway PaymentGateway, promos PromoValidator) *Checkout {
	return &Checkout{
		storage: storage,
		cart:    cart,
		gateway: gateway,
		promos:  promos,
		method:  ShippingStandard,
	}
}

// SetShippingMethod selects the shipping tier for this attempt.
func (c *Checkout) SetShippingMethod(method ShippingMethod) {
	c.method = method
}

// ApplyPromo validates the code against the current subtotal. The code is
// uppercased before submission. On rejection the stored discount is reset to
// zero and the validator's message is returned for display.
func (c *Checkout) ApplyPromo(ctx context.Context, code string) (PromoResult, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return PromoResult{}, errors.New("promo code is required")
	}

	subtotal, err := c.cart.Total()
	if err != nil {
		return PromoResult{}, err
	}

	result, err := c.promos.Validate(ctx, code, subtotal)
	if err != nil {
		c.promo = PromoResult{}
		return PromoResult{}, err
	}

	c.promo = result
	return result, nil
}

// RemovePromo drops any applied discount.
func (c *Checkout) RemovePromo() {
	c.promo = PromoResult{}
}

// Totals computes the current price breakdown including any applied discount.
func (c *Checkout) Totals() (Totals, error) {
	subtotal, err := c.cart.Total()
	if err != nil {
		return Totals{}, err
	}
	return ComputeTotals(subtotal, c.method, c.promo.DiscountAmount), nil
}

// Submit validates the form, persists the pending snapshot, and requests a
// hosted payment session. The snapshot write happens before the gateway call
// because the flow continues outside the application after the redirect; only
// durable storage survives. If session creation fails the snapshot is removed
// again and no URL is returned.
func (c *Checkout) Submit(ctx context.Context, customer CustomerInfo, shipping ShippingInfo) (string, error) {
	if customer.Name == "" || customer.Email == "" {
		return "", ErrMissingCustomerInfo
	}
	if shipping.Address == "" || shipping.City == "" || shipping.PostalCode == "" || shipping.Country == "" {
		return "", ErrMissingShippingInfo
	}

	items, err := c.cart.Items()
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "", ErrEmptyCart
	}

	totals, err := c.Totals()
	if err != nil {
		return "", err
	}

	snapshot := Snapshot{
		Items:    items,
		Shipping: shipping,
		Customer: customer,
		Totals:   totals,
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to marshal checkout snapshot: %w", err)
	}
	c.storage.Set(KeyPendingSnapshot, string(raw))

	url, err := c.gateway.CreateCheckoutSession(ctx, SessionRequest{
		Items:         items,
		CustomerEmail: customer.Email,
	})
	if err != nil {
		c.storage.Delete(KeyPendingSnapshot)
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}

	return url, nil
}
