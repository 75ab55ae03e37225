package model

import "time"

const EventTypePaymentCompleted = "payment.completed"

// PaymentEvent is the outbox row written when a payment first reaches
// COMPLETED. A worker publishes unpublished rows to the broker and marks
// them published; downstream collaborators (notifications, certificates)
// consume from there.
type PaymentEvent struct {
	ID           int64      `gorm:"primaryKey;autoIncrement;<-:create"`
	PaymentID    int64      `gorm:"not null;<-:create"`
	TxRef        string     `gorm:"type:varchar(64);not null;<-:create"`
	EnrollmentID int64      `gorm:"not null;<-:create"`
	Type         string     `gorm:"type:varchar(64);not null;<-:create"`
	Published    bool       `gorm:"default:false;not null"`
	PublishedAt  *time.Time `gorm:"type:timestamp;null"`
	CreatedAt    time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`

	Payment Payment `gorm:"foreignKey:PaymentID"`
}
