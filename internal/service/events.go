package service

import (
	"context"

	"github.com/KALU56/E-Self/internal/repository"
	"go.uber.org/zap"
)

type PaymentEventService interface {
	FindEventsToQueue(ctx context.Context, limit int) ([]PublishEventCommand, error)
	MarkEventAsQueued(ctx context.Context, eventID int64) error
}

type paymentEvents struct {
	eventRepo repository.PaymentEventRepository
	logger    *zap.Logger
}

func NewPaymentEventService(eventRepo repository.PaymentEventRepository, logger *zap.Logger) PaymentEventService {
	return &paymentEvents{eventRepo: eventRepo, logger: logger}
}

func (s *paymentEvents) FindEventsToQueue(ctx context.Context, limit int) ([]PublishEventCommand, error) {
	s.logger.Debug("Finding payment events to publish", zap.Int("batchSize", limit))

	events, err := s.eventRepo.FindUnpublished(limit)
	if err != nil {
		s.logger.Error("Failed to find unpublished payment events", zap.Error(err))
		return nil, err
	}

	if len(events) == 0 {
		return nil, nil
	}

	commands := make([]PublishEventCommand, 0, len(events))
	for _, event := range events {
		cmd := PublishEventCommand{
			EventID:      event.ID,
			Type:         event.Type,
			TxRef:        event.TxRef,
			PaymentID:    event.PaymentID,
			UserID:       event.Payment.UserID,
			CourseID:     event.Payment.CourseID,
			EnrollmentID: event.EnrollmentID,
			Amount:       event.Payment.Amount,
		}
		commands = append(commands, cmd)
	}

	return commands, nil
}

func (s *paymentEvents) MarkEventAsQueued(ctx context.Context, eventID int64) error {
	if err := s.eventRepo.MarkPublished(ctx, eventID); err != nil {
		s.logger.Error("Failed to mark payment event as published",
			zap.Error(err),
			zap.Int64("eventID", eventID))
		return err
	}

	s.logger.Debug("Payment event marked as published", zap.Int64("eventID", eventID))

	return nil
}
