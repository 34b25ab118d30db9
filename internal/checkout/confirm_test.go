package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestConfirmer(t *testing.T) (*Confirmer, *MemoryStorage, *MockPaymentGateway, *MockOrderPlacer) {
	t.Helper()
	storage := NewMemoryStorage()
	storage.Set(KeyUser, "user-1")
	gateway := new(MockPaymentGateway)
	orders := new(MockOrderPlacer)
	confirmer := NewConfirmer(storage, NewCart(storage), gateway, orders)
	confirmer.now = func() time.Time { return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC) }
	return confirmer, storage, gateway, orders
}

func seedPaidCheckout(t *testing.T, storage *MemoryStorage) Snapshot {
	t.Helper()
	items := []LineItem{{ProductID: "p1", Name: "Midnight Oud", UnitPrice: 129.99, Quantity: 1}}
	rawItems, err := json.Marshal(items)
	assert.NoError(t, err)
	storage.Set(KeyCart, string(rawItems))

	snapshot := Snapshot{
		Items:    items,
		Shipping: testShipping,
		Customer: testCustomer,
		Totals:   ComputeTotals(129.99, ShippingStandard, 0),
	}
	rawSnapshot, err := json.Marshal(snapshot)
	assert.NoError(t, err)
	storage.Set(KeyPendingSnapshot, string(rawSnapshot))
	return snapshot
}

func TestConfirm_MissingSessionIDFails(t *testing.T) {
	confirmer, _, gateway, orders := newTestConfirmer(t)

	result := confirmer.Confirm(context.Background(), "")

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, RedirectCheckout, result.Redirect)
	gateway.AssertNotCalled(t, "VerifySession", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_MissingUserRedirectsToLogin(t *testing.T) {
	storage := NewMemoryStorage()
	gateway := new(MockPaymentGateway)
	orders := new(MockOrderPlacer)
	confirmer := NewConfirmer(storage, NewCart(storage), gateway, orders)

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, RedirectLogin, result.Redirect)
	gateway.AssertNotCalled(t, "VerifySession", mock.Anything, mock.Anything)
}

func TestConfirm_PaidSessionCreatesOrderOnce(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	snapshot := seedPaidCheckout(t, storage)

	gateway.On("VerifySession", mock.Anything, "cs_123").Return(PaymentStatusPaid, nil)
	orders.On("PlaceOrder", mock.Anything, "user-1", mock.MatchedBy(func(p OrderPayload) bool {
		return p.PaymentSessionID == "cs_123" &&
			p.PaymentMethod == "Stripe" &&
			p.IsPaid &&
			p.TotalPrice == snapshot.Totals.Total &&
			len(p.Items) == 1
	})).Return(nil).Once()

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, RedirectOrders, result.Redirect)
	orders.AssertExpectations(t)

	// Cart and snapshot are gone, the session is recorded as processed.
	_, ok := storage.Get(KeyCart)
	assert.False(t, ok)
	_, ok = storage.Get(KeyPendingSnapshot)
	assert.False(t, ok)

	raw, ok := storage.Get(KeyProcessedSessions)
	assert.True(t, ok)
	var processed []string
	assert.NoError(t, json.Unmarshal([]byte(raw), &processed))
	assert.Equal(t, []string{"cs_123"}, processed)
}

func TestConfirm_SecondRunForSameSessionSkipsOrderCreation(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	seedPaidCheckout(t, storage)

	gateway.On("VerifySession", mock.Anything, "cs_123").Return(PaymentStatusPaid, nil)
	orders.On("PlaceOrder", mock.Anything, "user-1", mock.Anything).Return(nil).Once()

	first := confirmer.Confirm(context.Background(), "cs_123")
	second := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateSuccess, first.State)
	assert.Equal(t, StateSuccess, second.State)
	assert.Equal(t, RedirectOrders, second.Redirect)
	orders.AssertNumberOfCalls(t, "PlaceOrder", 1)
	gateway.AssertNumberOfCalls(t, "VerifySession", 1)
}

func TestConfirm_UnpaidSessionLeavesCartIntact(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	seedPaidCheckout(t, storage)

	gateway.On("VerifySession", mock.Anything, "cs_unpaid").Return("unpaid", nil)

	result := confirmer.Confirm(context.Background(), "cs_unpaid")

	assert.Equal(t, StateFailed, result.State)
	assert.Equal(t, RedirectCheckout, result.Redirect)
	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)

	// Retry is possible: cart, snapshot, and processed list are unchanged.
	_, ok := storage.Get(KeyCart)
	assert.True(t, ok)
	_, ok = storage.Get(KeyPendingSnapshot)
	assert.True(t, ok)
	_, ok = storage.Get(KeyProcessedSessions)
	assert.False(t, ok)
}

func TestConfirm_VerificationFailureIsAnError(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	seedPaidCheckout(t, storage)

	gateway.On("VerifySession", mock.Anything, "cs_123").Return("", errors.New("network down"))

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateError, result.State)
	assert.Equal(t, RedirectCheckout, result.Redirect)
	assert.Error(t, result.Err)
	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)

	// The session was never marked processed, so a later retry can still succeed.
	_, ok := storage.Get(KeyProcessedSessions)
	assert.False(t, ok)
}

func TestConfirm_MissingSnapshotAfterPaymentSucceedsWithoutOrder(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	items, _ := json.Marshal([]LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1}})
	storage.Set(KeyCart, string(items))

	gateway.On("VerifySession", mock.Anything, "cs_123").Return(PaymentStatusPaid, nil)

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateSuccess, result.State)
	assert.Equal(t, RedirectOrders, result.Redirect)
	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)

	// The paid items must not be re-offered.
	_, ok := storage.Get(KeyCart)
	assert.False(t, ok)
}

func TestConfirm_MalformedSnapshotClearsPaidItems(t *testing.T) {
	confirmer, storage, gateway, _ := newTestConfirmer(t)
	items, _ := json.Marshal([]LineItem{{ProductID: "p1", UnitPrice: 10, Quantity: 1}})
	storage.Set(KeyCart, string(items))
	storage.Set(KeyPendingSnapshot, "{broken")

	gateway.On("VerifySession", mock.Anything, "cs_123").Return(PaymentStatusPaid, nil)

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateError, result.State)
	assert.Equal(t, RedirectCheckout, result.Redirect)

	var malformed *MalformedStateError
	assert.True(t, errors.As(result.Err, &malformed))
	assert.Equal(t, KeyPendingSnapshot, malformed.Key)

	_, ok := storage.Get(KeyCart)
	assert.False(t, ok)
	_, ok = storage.Get(KeyPendingSnapshot)
	assert.False(t, ok)
}

func TestConfirm_MalformedProcessedSessionsIsAnError(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	seedPaidCheckout(t, storage)
	storage.Set(KeyProcessedSessions, "not a list")

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateError, result.State)
	assert.Equal(t, RedirectCheckout, result.Redirect)
	assert.Error(t, result.Err)
	gateway.AssertNotCalled(t, "VerifySession", mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "PlaceOrder", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirm_OrderCreationFailureStillClearsCart(t *testing.T) {
	confirmer, storage, gateway, orders := newTestConfirmer(t)
	seedPaidCheckout(t, storage)

	gateway.On("VerifySession", mock.Anything, "cs_123").Return(PaymentStatusPaid, nil)
	orders.On("PlaceOrder", mock.Anything, "user-1", mock.Anything).
		Return(errors.New("backend down")).Once()

	result := confirmer.Confirm(context.Background(), "cs_123")

	assert.Equal(t, StateError, result.State)
	assert.Equal(t, RedirectCheckout, result.Redirect)
	assert.Error(t, result.Err)

	// Payment was captured, so the items leave the cart even though the order
	// record is missing.
	_, ok := storage.Get(KeyCart)
	assert.False(t, ok)
	_, ok = storage.Get(KeyPendingSnapshot)
	assert.False(t, ok)

	// The session is marked processed, so a reload does not retry the order.
	retry := confirmer.Confirm(context.Background(), "cs_123")
	assert.Equal(t, StateSuccess, retry.State)
	orders.AssertNumberOfCalls(t, "PlaceOrder", 1)
}
