package services

import (
	"context"
	"fmt"
	"math"

	"parfum/internal/checkout"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/checkout/session"
)

// StripeGateway implements checkout.PaymentGateway using Stripe's hosted
// Checkout Sessions. The customer pays on Stripe's page and is redirected
// back with ?session_id={CHECKOUT_SESSION_ID} on success.
type StripeGateway struct {
	successURL string
	cancelURL  string
}

// NewStripeGateway configures the Stripe SDK and returns a gateway whose
// redirect targets point at the given frontend base URL.
func NewStripeGateway(secretKey, frontendURL string) *StripeGateway {
	stripe.Key = secretKey
	return &StripeGateway{
		successURL: frontendURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  frontendURL + "/checkout",
	}
}

// CreateCheckoutSession opens a hosted payment session for the given line
// items and returns the URL of the external payment page.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req checkout.SessionRequest) (string, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency: stripe.String(string(stripe.CurrencyUSD)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(item.Name),
				},
				UnitAmount: stripe.Int64(int64(math.Round(item.UnitPrice * 100))), // cents
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		SuccessURL:         stripe.String(g.successURL),
		CancelURL:          stripe.String(g.cancelURL),
		CustomerEmail:      stripe.String(req.CustomerEmail),
	}
	params.Context = ctx

	sess, err := session.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create Stripe checkout session: %w", err)
	}
	return sess.URL, nil
}

// VerifySession looks up a session and returns its payment status
// ("paid", "unpaid", or "no_payment_required").
func (g *StripeGateway) VerifySession(ctx context.Context, sessionID string) (string, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve Stripe session %s: %w", sessionID, err)
	}
	return string(sess.PaymentStatus), nil
}
