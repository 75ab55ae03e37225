package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/KALU56/E-Self/internal/mocks"
	"github.com/KALU56/E-Self/internal/model"
	"github.com/KALU56/E-Self/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPaymentEvents_FindEventsToQueue(t *testing.T) {
	t.Run("maps outbox rows to publish commands", func(t *testing.T) {
		repo := &mocks.PaymentEventRepository{}
		svc := service.NewPaymentEventService(repo, zap.NewNop())

		rows := []model.PaymentEvent{
			{
				ID:           1,
				PaymentID:    101,
				TxRef:        "chapa-1700000000-ab12cd34",
				EnrollmentID: 55,
				Type:         model.EventTypePaymentCompleted,
				Payment:      model.Payment{ID: 101, UserID: 42, CourseID: 7, Amount: 10000},
			},
		}

		repo.On("FindUnpublished", 100).Return(rows, nil)

		commands, err := svc.FindEventsToQueue(context.Background(), 100)

		require.NoError(t, err)
		require.Len(t, commands, 1)
		assert.Equal(t, int64(1), commands[0].EventID)
		assert.Equal(t, model.EventTypePaymentCompleted, commands[0].Type)
		assert.Equal(t, int64(42), commands[0].UserID)
		assert.Equal(t, int64(7), commands[0].CourseID)
		assert.Equal(t, int64(55), commands[0].EnrollmentID)
		assert.Equal(t, int64(10000), commands[0].Amount)
	})

	t.Run("no unpublished rows yields nil", func(t *testing.T) {
		repo := &mocks.PaymentEventRepository{}
		svc := service.NewPaymentEventService(repo, zap.NewNop())

		repo.On("FindUnpublished", 100).Return([]model.PaymentEvent{}, nil)

		commands, err := svc.FindEventsToQueue(context.Background(), 100)

		require.NoError(t, err)
		assert.Nil(t, commands)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := &mocks.PaymentEventRepository{}
		svc := service.NewPaymentEventService(repo, zap.NewNop())

		repo.On("FindUnpublished", 100).Return(([]model.PaymentEvent)(nil), errors.New("connection lost"))

		_, err := svc.FindEventsToQueue(context.Background(), 100)

		assert.Error(t, err)
	})
}

func TestPaymentEvents_MarkEventAsQueued(t *testing.T) {
	t.Run("marks published", func(t *testing.T) {
		repo := &mocks.PaymentEventRepository{}
		svc := service.NewPaymentEventService(repo, zap.NewNop())

		repo.On("MarkPublished", context.Background(), int64(1)).Return(nil)

		err := svc.MarkEventAsQueued(context.Background(), 1)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("repository failure propagates", func(t *testing.T) {
		repo := &mocks.PaymentEventRepository{}
		svc := service.NewPaymentEventService(repo, zap.NewNop())

		repo.On("MarkPublished", context.Background(), int64(1)).Return(errors.New("connection lost"))

		err := svc.MarkEventAsQueued(context.Background(), 1)

		assert.Error(t, err)
	})
}
