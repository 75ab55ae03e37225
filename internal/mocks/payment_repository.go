package mocks

import (
	"context"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/stretchr/testify/mock"
)

type PaymentRepository struct {
	mock.Mock
}

func (m *PaymentRepository) Create(ctx context.Context, payment *model.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *PaymentRepository) GetByTxRef(txRef string) (*model.Payment, error) {
	args := m.Called(txRef)
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *PaymentRepository) CompleteFromPending(ctx context.Context, txRef string, receiptURL *string) (bool, error) {
	args := m.Called(ctx, txRef, receiptURL)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepository) FailFromPending(ctx context.Context, txRef string) (bool, error) {
	args := m.Called(ctx, txRef)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepository) LinkEnrollment(ctx context.Context, paymentID int64, enrollmentID int64) error {
	args := m.Called(ctx, paymentID, enrollmentID)
	return args.Error(0)
}

func (m *PaymentRepository) GetByUserID(userID int64, limit, offset int) ([]model.Payment, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]model.Payment), args.Error(1)
}

func (m *PaymentRepository) CountByUserID(userID int64) (int, error) {
	args := m.Called(userID)
	return args.Int(0), args.Error(1)
}
