package mocks

import (
	"github.com/KALU56/E-Self/internal/model"
	"github.com/stretchr/testify/mock"
)

type CourseRepository struct {
	mock.Mock
}

func (m *CourseRepository) GetByID(id int64) (*model.Course, error) {
	args := m.Called(id)
	return args.Get(0).(*model.Course), args.Error(1)
}
