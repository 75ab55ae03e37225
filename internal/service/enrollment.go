package service

import (
	"context"
	"errors"
	"time"

	"github.com/KALU56/E-Self/internal/model"
	"github.com/KALU56/E-Self/internal/repository"
	"go.uber.org/zap"
)

type EnrollmentService interface {
	GrantOnce(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error)
}

type enrollment struct {
	enrollmentRepo repository.EnrollmentRepository
	logger         *zap.Logger
}

func NewEnrollmentService(enrollmentRepo repository.EnrollmentRepository, logger *zap.Logger) EnrollmentService {
	return &enrollment{enrollmentRepo: enrollmentRepo, logger: logger}
}

// GrantOnce creates the enrollment for (student, course), treating a unique
// constraint violation as success returning the existing row. This absorbs
// duplicate finalize attempts that race past the payment status CAS, and it
// never touches an existing enrollment's progress.
func (e *enrollment) GrantOnce(ctx context.Context, studentID, courseID int64) (*model.Enrollment, error) {
	record := model.Enrollment{
		StudentID:  studentID,
		CourseID:   courseID,
		Progress:   0,
		Status:     model.EnrollmentStatusActive,
		EnrolledAt: time.Now(),
	}

	err := e.enrollmentRepo.Create(ctx, &record)
	if err == nil {
		e.logger.Info("Enrollment created",
			zap.Int64("enrollmentID", record.ID),
			zap.Int64("studentID", studentID),
			zap.Int64("courseID", courseID))
		return &record, nil
	}

	if !errors.Is(err, repository.ErrEnrollmentExists) {
		e.logger.Error("Failed to create enrollment",
			zap.Error(err),
			zap.Int64("studentID", studentID),
			zap.Int64("courseID", courseID))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	existing, err := e.enrollmentRepo.GetByStudentAndCourse(studentID, courseID)
	if err != nil {
		e.logger.Error("Enrollment exists but could not be loaded",
			zap.Error(err),
			zap.Int64("studentID", studentID),
			zap.Int64("courseID", courseID))
		return nil, NewServiceError(ErrCodeDatabase, err)
	}

	e.logger.Info("Enrollment already granted, returning existing",
		zap.Int64("enrollmentID", existing.ID),
		zap.Int64("studentID", studentID),
		zap.Int64("courseID", courseID))

	return existing, nil
}
