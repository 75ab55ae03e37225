package repository

import (
	"context"
	"errors"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrEnrollmentNotFound = errors.New("ENROLLMENT_NOT_FOUND")
var ErrEnrollmentExists = errors.New("ENROLLMENT_EXISTS")

type EnrollmentRepository interface {
	Create(ctx context.Context, enrollment *model.Enrollment) error
	GetByStudentAndCourse(studentID, courseID int64) (*model.Enrollment, error)
}

type Enrollment struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &Enrollment{db: db}
}

// Create relies on the (student_id, course_id) unique index: a 1062 from
// MySQL is the expected signal that a concurrent grant already happened.
func (e *Enrollment) Create(ctx context.Context, enrollment *model.Enrollment) error {
	db := GetTx(ctx, e.db)
	err := db.Create(enrollment).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrEnrollmentExists
	}

	return err
}

func (e *Enrollment) GetByStudentAndCourse(studentID, courseID int64) (*model.Enrollment, error) {
	var enrollment model.Enrollment

	err := e.db.Where("student_id = ? AND course_id = ?", studentID, courseID).First(&enrollment).Error
	if err == nil {
		return &enrollment, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrEnrollmentNotFound
	}

	return nil, err
}
