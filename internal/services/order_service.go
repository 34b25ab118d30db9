package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"parfum/internal/checkout"
	"parfum/internal/models"
	"parfum/internal/repositories"
	"parfum/pkg/rabbitmq"

	"github.com/google/uuid"
)

// ErrNoOrderItems is returned when an order payload carries no lines.
var ErrNoOrderItems = errors.New("no order items")

// OrderService handles business logic related to orders.
type OrderService struct {
	orderRepo repositories.OrderRepository
	mqClient  *rabbitmq.Client // RabbitMQ client
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, mqClient *rabbitmq.Client) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		mqClient:  mqClient,
	}
}

// GetOrdersByUser retrieves all orders belonging to a user.
func (s *OrderService) GetOrdersByUser(userID string) ([]models.Order, error) {
	return s.orderRepo.GetByUser(userID)
}

// GetOrderByID retrieves a single order by its ID.
func (s *OrderService) GetOrderByID(id string) (*models.Order, error) {
	return s.orderRepo.GetByID(id)
}

// PlaceOrder persists a verified order. It is idempotent on the payment
// session ID: a second call for the same session returns without creating a
// duplicate record. Implements checkout.OrderPlacer.
func (s *OrderService) PlaceOrder(ctx context.Context, userID string, payload checkout.OrderPayload) error {
	if len(payload.Items) == 0 {
		return ErrNoOrderItems
	}

	if existing, err := s.orderRepo.GetBySessionID(payload.PaymentSessionID); err == nil && existing != nil {
		log.Printf("Order for payment session %s already exists (%s), skipping create", payload.PaymentSessionID, existing.ID)
		return nil
	} else if err != nil && !errors.Is(err, repositories.ErrOrderNotFound) {
		return fmt.Errorf("failed to check existing order: %w", err)
	}

	items := make([]models.OrderItem, 0, len(payload.Items))
	for _, line := range payload.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Quantity:  line.Quantity,
			Price:     line.UnitPrice,
			Image:     line.Image,
		})
	}

	paidAt := payload.PaidAt
	newOrder := &models.Order{
		ID:     uuid.New().String(),
		UserID: userID,
		Items:  items,
		ShippingAddress: models.ShippingAddress{
			Address:    payload.ShippingAddress.Address,
			City:       payload.ShippingAddress.City,
			PostalCode: payload.ShippingAddress.PostalCode,
			Country:    payload.ShippingAddress.Country,
		},
		PaymentMethod:    payload.PaymentMethod,
		ItemsPrice:       payload.ItemsPrice,
		TaxPrice:         payload.TaxPrice,
		ShippingPrice:    payload.ShippingPrice,
		TotalPrice:       payload.TotalPrice,
		IsPaid:           payload.IsPaid,
		PaidAt:           &paidAt,
		PaymentSessionID: payload.PaymentSessionID,
	}

	if err := s.orderRepo.Create(newOrder); err != nil {
		return fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishOrderCreated(newOrder)
	return nil
}

// publishOrderCreated emits an order.created event. Publishing is best-effort;
// a broker outage must not fail an order whose payment already settled.
func (s *OrderService) publishOrderCreated(order *models.Order) {
	if s.mqClient == nil {
		log.Println("RabbitMQ client is not initialized. Skipping message publication.")
		return
	}

	event := map[string]interface{}{
		"orderID": order.ID,
		"userID":  order.UserID,
		"total":   order.TotalPrice,
		"session": order.PaymentSessionID,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event to JSON: %v", err)
		return
	}

	if err := s.mqClient.PublishOrderCreated(body); err != nil {
		log.Printf("Warning: Failed to publish order created event for order %s: %v", order.ID, err)
	} else {
		log.Printf("Successfully published order created event for order %s", order.ID)
	}
}
