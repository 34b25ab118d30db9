package checkout

import (
	"context"
	"time"
)

// PaymentStatusPaid is the session status that allows order creation.
const PaymentStatusPaid = "paid"

// SessionRequest carries the data needed to open a hosted checkout session.
type SessionRequest struct {
	Items         []LineItem
	CustomerEmail string
}

// PaymentGateway is the external payment collaborator. CreateCheckoutSession
// returns the URL of the hosted payment page; VerifySession reports the paid
// status of a session identified by the opaque provider-issued ID.
type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, req SessionRequest) (string, error)
	VerifySession(ctx context.Context, sessionID string) (string, error)
}

// OrderPayload is the verified order sent to the order backend after a
// successful payment.
type OrderPayload struct {
	Items            []LineItem      `json:"orderItems"`
	ShippingAddress  ShippingInfo    `json:"shippingAddress"`
	PaymentMethod    string          `json:"paymentMethod"`
	ItemsPrice       float64         `json:"itemsPrice"`
	TaxPrice         float64         `json:"taxPrice"`
	ShippingPrice    float64         `json:"shippingPrice"`
	TotalPrice       float64         `json:"totalPrice"`
	IsPaid           bool            `json:"isPaid"`
	PaidAt           time.Time       `json:"paidAt"`
	PaymentSessionID string          `json:"paymentSessionId"`
}

// OrderPlacer persists a verified order exactly once.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, userID string, payload OrderPayload) error
}

// PromoResult is the outcome of a successful promo code validation.
type PromoResult struct {
	DiscountAmount float64 `json:"discountAmount"`
	DiscountType   string  `json:"discountType"`
	DiscountValue  float64 `json:"discountValue"`
	Code           string  `json:"code"`
}

// PromoValidator checks a promo code against the current order amount. A
// rejected code returns an error whose message is surfaced to the customer
// verbatim.
type PromoValidator interface {
	Validate(ctx context.Context, code string, orderAmount float64) (PromoResult, error)
}
