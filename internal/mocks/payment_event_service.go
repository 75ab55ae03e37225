package mocks

import (
	"context"

	"github.com/KALU56/E-Self/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentEventService struct {
	mock.Mock
}

func (m *PaymentEventService) FindEventsToQueue(ctx context.Context, limit int) ([]service.PublishEventCommand, error) {
	args := m.Called(ctx, limit)
	return args.Get(0).([]service.PublishEventCommand), args.Error(1)
}

func (m *PaymentEventService) MarkEventAsQueued(ctx context.Context, eventID int64) error {
	args := m.Called(ctx, eventID)
	return args.Error(0)
}
