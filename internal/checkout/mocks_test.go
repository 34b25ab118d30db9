package checkout

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockPaymentGateway is a testify mock of the PaymentGateway interface.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, req SessionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

func (m *MockPaymentGateway) VerifySession(ctx context.Context, sessionID string) (string, error) {
	args := m.Called(ctx, sessionID)
	return args.String(0), args.Error(1)
}

// MockOrderPlacer is a testify mock of the OrderPlacer interface.
type MockOrderPlacer struct {
	mock.Mock
}

func (m *MockOrderPlacer) PlaceOrder(ctx context.Context, userID string, payload OrderPayload) error {
	args := m.Called(ctx, userID, payload)
	return args.Error(0)
}

// MockPromoValidator is a testify mock of the PromoValidator interface.
type MockPromoValidator struct {
	mock.Mock
}

func (m *MockPromoValidator) Validate(ctx context.Context, code string, orderAmount float64) (PromoResult, error) {
	args := m.Called(ctx, code, orderAmount)
	return args.Get(0).(PromoResult), args.Error(1)
}
