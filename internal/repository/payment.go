package repository

import (
	"context"
	"errors"
	"time"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("PAYMENT_NOT_FOUND")
var ErrPaymentDuplicate = errors.New("PAYMENT_DUPLICATE")

type PaymentRepository interface {
	Create(ctx context.Context, payment *model.Payment) error
	GetByTxRef(txRef string) (*model.Payment, error)
	CompleteFromPending(ctx context.Context, txRef string, receiptURL *string) (bool, error)
	FailFromPending(ctx context.Context, txRef string) (bool, error)
	LinkEnrollment(ctx context.Context, paymentID int64, enrollmentID int64) error
	GetByUserID(userID int64, limit, offset int) ([]model.Payment, error)
	CountByUserID(userID int64) (int, error)
}

type Payment struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &Payment{db: db}
}

func (p *Payment) Create(ctx context.Context, payment *model.Payment) error {
	db := GetTx(ctx, p.db)
	err := db.Create(payment).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrPaymentDuplicate
	}

	return err
}

func (p *Payment) GetByTxRef(txRef string) (*model.Payment, error) {
	var payment model.Payment

	err := p.db.Preload("Enrollment").Where("tx_ref = ?", txRef).First(&payment).Error
	if err == nil {
		return &payment, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPaymentNotFound
	}

	return nil, err
}

// CompleteFromPending transitions tx_ref to COMPLETED only if the row is
// still PENDING. The returned bool reports whether this caller won the
// transition; a false with no error means another finalize got there first.
func (p *Payment) CompleteFromPending(ctx context.Context, txRef string, receiptURL *string) (bool, error) {
	db := GetTx(ctx, p.db)

	updates := map[string]interface{}{
		"status":     model.PaymentStatusCompleted,
		"updated_at": time.Now(),
	}
	if receiptURL != nil {
		updates["receipt_url"] = *receiptURL
	}

	result := db.Model(&model.Payment{}).
		Where("tx_ref = ? AND status = ?", txRef, model.PaymentStatusPending).
		Updates(updates)

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (p *Payment) FailFromPending(ctx context.Context, txRef string) (bool, error) {
	db := GetTx(ctx, p.db)

	result := db.Model(&model.Payment{}).
		Where("tx_ref = ? AND status = ?", txRef, model.PaymentStatusPending).
		Updates(map[string]interface{}{
			"status":     model.PaymentStatusFailed,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return false, result.Error
	}

	return result.RowsAffected > 0, nil
}

func (p *Payment) LinkEnrollment(ctx context.Context, paymentID int64, enrollmentID int64) error {
	db := GetTx(ctx, p.db)

	return db.Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("enrollment_id", enrollmentID).Error
}

func (p *Payment) GetByUserID(userID int64, limit, offset int) ([]model.Payment, error) {
	var payments []model.Payment

	err := p.db.Preload("Course").Preload("Enrollment").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&payments).Error
	if err != nil {
		return nil, err
	}

	return payments, nil
}

func (p *Payment) CountByUserID(userID int64) (int, error) {
	var count int64

	err := p.db.Model(&model.Payment{}).
		Where("user_id = ?", userID).
		Count(&count).Error

	if err != nil {
		return 0, err
	}

	return int(count), nil
}
