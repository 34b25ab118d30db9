package models

import "time"

// OrderItem represents a single line within an order.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Unit price at the time of order
	Image     string  `json:"image"`
}

// ShippingAddress is the destination captured at checkout time.
type ShippingAddress struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// Order represents a paid customer order. Orders are created exactly once per
// payment session and are immutable from the client's perspective afterwards.
type Order struct {
	ID               string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID           string          `json:"userId" gorm:"index;type:varchar(36)"`
	Items            []OrderItem     `json:"orderItems" gorm:"serializer:json"`
	ShippingAddress  ShippingAddress `json:"shippingAddress" gorm:"serializer:json"`
	PaymentMethod    string          `json:"paymentMethod"`
	ItemsPrice       float64         `json:"itemsPrice"`
	TaxPrice         float64         `json:"taxPrice"`
	ShippingPrice    float64         `json:"shippingPrice"`
	TotalPrice       float64         `json:"totalPrice"`
	IsPaid           bool            `json:"isPaid"`
	PaidAt           *time.Time      `json:"paidAt,omitempty"`
	PaymentSessionID string          `json:"paymentSessionId" gorm:"uniqueIndex;type:varchar(255)"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}
