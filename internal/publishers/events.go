package publishers

import (
	"context"
	"encoding/json"

	"github.com/KALU56/E-Self/internal/service"
	"github.com/KALU56/E-Self/pkg/mq"
	"go.uber.org/zap"
)

const PaymentCompletedQueue = "payments.completed"

type EventPublisher interface {
	Publish(ctx context.Context) error
}

type eventPublisher struct {
	service   service.PaymentEventService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewEventPublisher(service service.PaymentEventService, publisher mq.Publisher, logger *zap.Logger) EventPublisher {
	return &eventPublisher{service: service, publisher: publisher, logger: logger}
}

func (e *eventPublisher) Publish(ctx context.Context) error {
	events, err := e.service.FindEventsToQueue(ctx, 100)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	e.logger.Info("Publishing payment events", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, _ := json.Marshal(event)
		if err := e.publisher.Publish(ctx, "", PaymentCompletedQueue, body); err != nil {
			e.logger.Error("Failed to publish payment event",
				zap.Error(err),
				zap.Int64("eventID", event.EventID))
			continue
		}

		if err := e.service.MarkEventAsQueued(ctx, event.EventID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		e.logger.Info("Successfully published payment events",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
