package repository

import (
	"errors"

	"github.com/KALU56/E-Self/internal/model"
	"gorm.io/gorm"
)

var ErrCourseNotFound = errors.New("COURSE_NOT_FOUND")

type CourseRepository interface {
	GetByID(id int64) (*model.Course, error)
}

type Course struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &Course{db: db}
}

func (c *Course) GetByID(id int64) (*model.Course, error) {
	var course model.Course

	err := c.db.Where("id = ?", id).First(&course).Error
	if err == nil {
		return &course, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}

	return nil, err
}
