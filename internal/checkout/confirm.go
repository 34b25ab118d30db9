package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

// State is the confirmation controller's position in its state machine.
type State string

const (
	StateVerifying     State = "verifying"
	StateCreatingOrder State = "creating_order"
	StateSuccess       State = "success"
	StateFailed        State = "failed"
	StateError         State = "error"
)

// Redirect names where the customer should be routed after confirmation.
type Redirect string

const (
	RedirectCheckout Redirect = "checkout"
	RedirectLogin    Redirect = "login"
	RedirectOrders   Redirect = "orders"
)

// Result is the terminal outcome of one confirmation run.
type Result struct {
	State    State    `json:"state"`
	Redirect Redirect `json:"redirect"`
	Err      error    `json:"-"`
}

// Confirmer handles the return leg from the external payment page: verify the
// session, create the order exactly once, clear the cart, and route onward.
type Confirmer struct {
	storage Storage
	cart    *Cart
	gateway PaymentGateway
	orders  OrderPlacer
	now     func() time.Time
}

// NewConfirmer creates a Confirmer over the given storage and collaborators.
func NewConfirmer(storage Storage, cart *Cart, gateway PaymentGateway, orders OrderPlacer) *Confirmer {
	return &Confirmer{
		storage: storage,
		cart:    cart,
		gateway: gateway,
		orders:  orders,
		now:     time.Now,
	}
}

// Confirm runs the confirmation state machine for the session ID extracted
// from the return URL. The steps are strictly sequential: verify, mark the
// session processed, create the order, clear the cart. The processed mark is
// written before order creation so a reload mid-creation skips the order
// instead of duplicating it.
func (c *Confirmer) Confirm(ctx context.Context, sessionID string) Result {
	if sessionID == "" {
		return Result{State: StateFailed, Redirect: RedirectCheckout}
	}

	userID, ok := c.storage.Get(KeyUser)
	if !ok || userID == "" {
		return Result{State: StateFailed, Redirect: RedirectLogin}
	}

	processed, err := c.processedSessions()
	if err != nil {
		return Result{State: StateError, Redirect: RedirectCheckout, Err: err}
	}
	for _, id := range processed {
		if id == sessionID {
			// Already handled; never create a second order for this session.
			return Result{State: StateSuccess, Redirect: RedirectOrders}
		}
	}

	status, err := c.gateway.VerifySession(ctx, sessionID)
	if err != nil {
		return Result{State: StateError, Redirect: RedirectCheckout, Err: fmt.Errorf("failed to verify payment session: %w", err)}
	}
	if status != PaymentStatusPaid {
		// Payment did not complete; leave the cart intact for retry.
		return Result{State: StateFailed, Redirect: RedirectCheckout}
	}

	if err := c.markProcessed(append(processed, sessionID)); err != nil {
		return Result{State: StateError, Redirect: RedirectCheckout, Err: err}
	}

	snapshot, err := c.consumeSnapshot()
	if err != nil {
		// Payment already captured; the bad snapshot is unrecoverable, so the
		// cart must not re-offer the paid items.
		c.cart.Clear()
		return Result{State: StateError, Redirect: RedirectCheckout, Err: err}
	}
	if snapshot == nil || len(snapshot.Items) == 0 {
		// Snapshot already consumed by another run (duplicate tab or reload).
		c.cart.Clear()
		c.storage.Delete(KeyPendingSnapshot)
		return Result{State: StateSuccess, Redirect: RedirectOrders}
	}

	payload := OrderPayload{
		Items:            snapshot.Items,
		ShippingAddress:  snapshot.Shipping,
		PaymentMethod:    "Stripe",
		ItemsPrice:       snapshot.Totals.Subtotal,
		TaxPrice:         snapshot.Totals.Tax,
		ShippingPrice:    snapshot.Totals.Shipping,
		TotalPrice:       snapshot.Totals.Total,
		IsPaid:           true,
		PaidAt:           c.now(),
		PaymentSessionID: sessionID,
	}

	if err := c.orders.PlaceOrder(ctx, userID, payload); err != nil {
		// Payment succeeded upstream; the missing order record has to be
		// reconciled out-of-band, but the paid items must leave the cart.
		log.Printf("Order creation failed after successful payment (session %s): %v", sessionID, err)
		c.cart.Clear()
		c.storage.Delete(KeyPendingSnapshot)
		return Result{State: StateError, Redirect: RedirectCheckout, Err: fmt.Errorf("failed to create order: %w", err)}
	}

	c.cart.Clear()
	c.storage.Delete(KeyPendingSnapshot)
	return Result{State: StateSuccess, Redirect: RedirectOrders}
}

func (c *Confirmer) processedSessions() ([]string, error) {
	raw, ok := c.storage.Get(KeyProcessedSessions)
	if !ok || raw == "" {
		return nil, nil
	}

	var sessions []string
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		return nil, &MalformedStateError{Key: KeyProcessedSessions, Err: err}
	}
	return sessions, nil
}

func (c *Confirmer) markProcessed(sessions []string) error {
	raw, err := json.Marshal(sessions)
	if err != nil {
		return fmt.Errorf("failed to marshal processed sessions: %w", err)
	}
	c.storage.Set(KeyProcessedSessions, string(raw))
	return nil
}

func (c *Confirmer) consumeSnapshot() (*Snapshot, error) {
	raw, ok := c.storage.Get(KeyPendingSnapshot)
	if !ok || raw == "" {
		return nil, nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal([]byte(raw), &snapshot); err != nil {
		c.storage.Delete(KeyPendingSnapshot)
		return nil, &MalformedStateError{Key: KeyPendingSnapshot, Err: err}
	}
	return &snapshot, nil
}
