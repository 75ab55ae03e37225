package repository

import (
	"context"
	"time"

	"github.com/KALU56/E-Self/internal/model"
	"gorm.io/gorm"
)

type PaymentEventRepository interface {
	Create(ctx context.Context, event *model.PaymentEvent) error
	FindUnpublished(limit int) ([]model.PaymentEvent, error)
	MarkPublished(ctx context.Context, eventID int64) error
}

type PaymentEvent struct {
	db *gorm.DB
}

func NewPaymentEventRepository(db *gorm.DB) PaymentEventRepository {
	return &PaymentEvent{db: db}
}

func (r *PaymentEvent) Create(ctx context.Context, event *model.PaymentEvent) error {
	db := GetTx(ctx, r.db)
	return db.Create(event).Error
}

func (r *PaymentEvent) FindUnpublished(limit int) ([]model.PaymentEvent, error) {
	var events []model.PaymentEvent

	err := r.db.Preload("Payment").
		Where("published = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}

	return events, nil
}

func (r *PaymentEvent) MarkPublished(ctx context.Context, eventID int64) error {
	db := GetTx(ctx, r.db)
	publishedAt := time.Now()

	return db.Model(&model.PaymentEvent{}).
		Where("id = ?", eventID).
		Updates(map[string]interface{}{
			"published":    true,
			"published_at": &publishedAt,
			"updated_at":   time.Now(),
		}).Error
}
