package services

import (
	"testing"

	"parfum/internal/models"
	"parfum/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMailer is a testify mock of the Mailer interface.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) Send(to []string, replyTo, subject, htmlBody string) error {
	args := m.Called(to, replyTo, subject, htmlBody)
	return args.Error(0)
}

func TestNewsletterService_SubscribeRejectsDuplicates(t *testing.T) {
	repo := repositories.NewMockNewsletterRepository()
	service := NewNewsletterService(repo, nil, "http://localhost:3000")

	subscriber, err := service.Subscribe("ada@example.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, subscriber.ID)

	_, err = service.Subscribe("ada@example.com")
	assert.ErrorIs(t, err, ErrAlreadySubscribed)
}

func TestNewsletterService_NotifyNewPerfumeMailsAllSubscribers(t *testing.T) {
	repo := repositories.NewMockNewsletterRepository()
	mailer := new(MockMailer)
	service := NewNewsletterService(repo, mailer, "http://localhost:3000")

	_, err := service.Subscribe("ada@example.com")
	assert.NoError(t, err)
	_, err = service.Subscribe("grace@example.com")
	assert.NoError(t, err)

	mailer.On("Send",
		mock.MatchedBy(func(to []string) bool { return len(to) == 2 }),
		"", mock.Anything, mock.Anything,
	).Return(nil).Once()

	err = service.NotifyNewPerfume(&models.Perfume{ID: "p1", Name: "Velvet Iris", Brand: "Maison Noire", Price: 98.00})
	assert.NoError(t, err)
	mailer.AssertExpectations(t)
}

func TestNewsletterService_NotifyWithoutMailerIsNoOp(t *testing.T) {
	repo := repositories.NewMockNewsletterRepository()
	service := NewNewsletterService(repo, nil, "http://localhost:3000")

	err := service.NotifyNewPerfume(&models.Perfume{ID: "p1", Name: "Velvet Iris"})
	assert.NoError(t, err)
}
