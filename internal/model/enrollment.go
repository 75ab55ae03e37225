package model

import "time"

type EnrollmentStatus string

const (
	EnrollmentStatusActive    EnrollmentStatus = "ACTIVE"
	EnrollmentStatusCompleted EnrollmentStatus = "COMPLETED"
)

// Enrollment grants a student access to a course. The (student_id, course_id)
// unique index is what makes a second grant attempt a detectable duplicate.
type Enrollment struct {
	ID          int64            `gorm:"primaryKey;autoIncrement;<-:create"`
	StudentID   int64            `gorm:"column:student_id;not null;index:idx_student_course,unique;<-:create"`
	CourseID    int64            `gorm:"column:course_id;not null;index:idx_student_course,unique;<-:create"`
	Progress    int              `gorm:"default:0;not null"`
	Status      EnrollmentStatus `gorm:"type:enum('ACTIVE','COMPLETED');not null"`
	EnrolledAt  time.Time        `gorm:"type:timestamp;not null"`
	CompletedAt *time.Time       `gorm:"type:timestamp;null"`
}
