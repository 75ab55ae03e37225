package mocks

import (
	"context"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentEventRepository struct {
	mock.Mock
}

func (m *PaymentEventRepository) Create(ctx context.Context, event *model.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *PaymentEventRepository) FindUnpublished(limit int) ([]model.PaymentEvent, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.PaymentEvent), args.Error(1)
}

func (m *PaymentEventRepository) MarkPublished(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
