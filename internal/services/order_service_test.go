package services

import (
	"context"
	"testing"
	"time"

	"parfum/internal/checkout"
	"parfum/internal/repositories"

	"github.com/stretchr/testify/assert"
)

func paidOrderPayload(sessionID string) checkout.OrderPayload {
	return checkout.OrderPayload{
		Items: []checkout.LineItem{
			{ProductID: "p1", Name: "Midnight Oud", UnitPrice: 129.99, Quantity: 1},
		},
		ShippingAddress: checkout.ShippingInfo{
			Address:    "12 Rue des Fleurs",
			City:       "Paris",
			PostalCode: "75004",
			Country:    "France",
		},
		PaymentMethod:    "Stripe",
		ItemsPrice:       129.99,
		TaxPrice:         13.00,
		ShippingPrice:    0,
		TotalPrice:       142.99,
		IsPaid:           true,
		PaidAt:           time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		PaymentSessionID: sessionID,
	}
}

func TestOrderService_PlaceOrderPersistsOrder(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := NewOrderService(repo, nil)

	err := service.PlaceOrder(context.Background(), "user-1", paidOrderPayload("cs_123"))
	assert.NoError(t, err)

	order, err := repo.GetBySessionID("cs_123")
	assert.NoError(t, err)
	assert.Equal(t, "user-1", order.UserID)
	assert.Equal(t, "Stripe", order.PaymentMethod)
	assert.True(t, order.IsPaid)
	assert.NotNil(t, order.PaidAt)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 129.99, order.Items[0].Price)
}

func TestOrderService_PlaceOrderIsIdempotentPerSession(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := NewOrderService(repo, nil)

	assert.NoError(t, service.PlaceOrder(context.Background(), "user-1", paidOrderPayload("cs_123")))
	assert.NoError(t, service.PlaceOrder(context.Background(), "user-1", paidOrderPayload("cs_123")))

	orders, err := service.GetOrdersByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
}

func TestOrderService_PlaceOrderDifferentSessionsCreateSeparateOrders(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	service := NewOrderService(repo, nil)

	assert.NoError(t, service.PlaceOrder(context.Background(), "user-1", paidOrderPayload("cs_123")))
	assert.NoError(t, service.PlaceOrder(context.Background(), "user-1", paidOrderPayload("cs_456")))

	orders, err := service.GetOrdersByUser("user-1")
	assert.NoError(t, err)
	assert.Len(t, orders, 2)
}

func TestOrderService_PlaceOrderRejectsEmptyItems(t *testing.T) {
	service := NewOrderService(repositories.NewMockOrderRepository(), nil)

	payload := paidOrderPayload("cs_123")
	payload.Items = nil

	err := service.PlaceOrder(context.Background(), "user-1", payload)
	assert.ErrorIs(t, err, ErrNoOrderItems)
}
