package models

import (
	"time"

	"gorm.io/gorm"
)

type Assignment struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CourseID    uint           `json:"course_id" gorm:"not null;index"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	MaxPoints   float64        `json:"max_points" gorm:"not null;default:100"`
	CreatedBy   uint           `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Submission struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	AssignmentID uint           `json:"assignment_id" gorm:"not null;uniqueIndex:idx_assignment_student"`
	StudentID    uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_assignment_student;index"`
	Content      string         `json:"content"`
	FilePath     *string        `json:"file_path"`
	SubmittedAt  time.Time      `json:"submitted_at"`
	Grade        *float64       `json:"grade"`
	Feedback     *string        `json:"feedback"`
	GradedBy     *uint          `json:"graded_by"`
	GradedAt     *time.Time     `json:"graded_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
