package models

import (
	"time"

	"gorm.io/gorm"
)

type Course struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Code        string         `json:"code" gorm:"not null;uniqueIndex:idx_courses_code,where:deleted_at IS NULL"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	CreditHours int            `json:"credit_hours" gorm:"not null;default:3"`
	ProgramID   *uint          `json:"program_id"`
	TeacherID   *uint          `json:"teacher_id"`
	IsApproved  bool           `json:"is_approved" gorm:"not null;default:false"`
	IsPublished bool           `json:"is_published" gorm:"not null;default:false"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

type Section struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	CourseID   uint           `json:"course_id" gorm:"not null;index"`
	SemesterID *uint          `json:"semester_id"`
	Name       string         `json:"name" gorm:"not null"`
	TeacherID  *uint          `json:"teacher_id" gorm:"index"`
	Capacity   int            `json:"capacity" gorm:"not null;default:40"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}

type Enrollment struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	SectionID  uint           `json:"section_id" gorm:"not null;uniqueIndex:idx_section_student"`
	StudentID  uint           `json:"student_id" gorm:"not null;uniqueIndex:idx_section_student;index"`
	FinalGrade *string        `json:"final_grade"` // opaque letter grade, set by a grader, never derived
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
