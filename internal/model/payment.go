package model

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

const PaymentMethodChapa = "CHAPA"

// Payment is the durable record of one purchase attempt. Rows are never
// deleted and amount/currency never change after creation; only the status
// transition PENDING -> COMPLETED|FAILED is allowed.
type Payment struct {
	ID           int64         `gorm:"primaryKey;autoIncrement;<-:create"`
	TxRef        string        `gorm:"type:varchar(64);not null;uniqueIndex:idx_payments_tx_ref;<-:create"`
	UserID       int64         `gorm:"not null;<-:create"`
	CourseID     int64         `gorm:"not null;<-:create"`
	Amount       int64         `gorm:"not null;<-:create"`
	Currency     string        `gorm:"type:varchar(8);not null;<-:create"`
	Method       string        `gorm:"type:varchar(32);not null;<-:create"`
	Status       PaymentStatus `gorm:"type:enum('PENDING','COMPLETED','FAILED');not null"`
	ReceiptURL   *string       `gorm:"type:varchar(512);null"`
	EnrollmentID *int64        `gorm:"null"`
	CreatedAt    time.Time     `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time     `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`

	Course     Course      `gorm:"foreignKey:CourseID"`
	Enrollment *Enrollment `gorm:"foreignKey:EnrollmentID"`
}

func (p *Payment) Terminal() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusFailed
}
