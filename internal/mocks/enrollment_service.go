package mocks

import (
	"context"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/stretchr/testify/mock"
)

type EnrollmentService struct {
	mock.Mock
}

func (m *EnrollmentService) GrantOnce(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	args := m.Called(ctx, studentID, courseID)
	return args.Get(0).(*model.Enrollment), args.Error(1)
}
