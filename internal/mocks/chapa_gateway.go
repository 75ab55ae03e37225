package mocks

import (
	"context"

	"github.com/KALU56/E-Self/pkg/chapa"
	"github.com/stretchr/testify/mock"
)

type ChapaGateway struct {
	mock.Mock
}

func (m *ChapaGateway) Initialize(ctx context.Context, request chapa.InitializeRequest) (chapa.InitializeResponse, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(chapa.InitializeResponse), args.Error(1)
}

func (m *ChapaGateway) Verify(ctx context.Context, txRef string) (chapa.VerifyResponse, error) {
	args := m.Called(ctx, txRef)
	return args.Get(0).(chapa.VerifyResponse), args.Error(1)
}
