package models

import (
	"time"

	"gorm.io/gorm"
)

// Rubric is a qualitative grading aid; criteria are never auto-scored.
type Rubric struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	CourseID    *uint          `json:"course_id"` // nil means shared across courses
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description"`
	CreatedBy   uint           `json:"created_by" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`

	Criteria []RubricCriterion `json:"criteria,omitempty" gorm:"foreignKey:RubricID"`
}

type RubricCriterion struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	RubricID    uint           `json:"rubric_id" gorm:"not null;index"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	MaxPoints   float64        `json:"max_points" gorm:"not null"`
	SortOrder   int            `json:"sort_order" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
