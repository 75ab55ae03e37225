package mocks

import (
	"context"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/KALU56/E-Self/internal/service"
	"github.com/stretchr/testify/mock"
)

type PaymentService struct {
	mock.Mock
}

func (m *PaymentService) Initiate(ctx context.Context, cmd service.InitiatePaymentCommand) (service.InitiatePaymentResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.InitiatePaymentResponse), args.Error(1)
}

func (m *PaymentService) Finalize(ctx context.Context, txRef string) (service.FinalizeResult, error) {
	args := m.Called(ctx, txRef)
	return args.Get(0).(service.FinalizeResult), args.Error(1)
}

func (m *PaymentService) GetHistory(query service.GetHistoryQuery) ([]model.Payment, int, error) {
	args := m.Called(query)
	return args.Get(0).([]model.Payment), args.Int(1), args.Error(2)
}
