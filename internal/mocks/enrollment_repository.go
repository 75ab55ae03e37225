package mocks

import (
	"context"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/stretchr/testify/mock"
)

type EnrollmentRepository struct {
	mock.Mock
}

func (m *EnrollmentRepository) Create(ctx context.Context, enrollment *model.Enrollment) error {
	args := m.Called(ctx, enrollment)
	return args.Error(0)
}

func (m *EnrollmentRepository) GetByStudentAndCourse(studentID, courseID int64) (*model.Enrollment, error) {
	args := m.Called(studentID, courseID)
	return args.Get(0).(*model.Enrollment), args.Error(1)
}
