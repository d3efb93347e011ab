package models

import (
	"time"

	"gorm.io/gorm"
)

type QuestionType string

const (
	QuestionMCQ       QuestionType = "mcq"
	QuestionTrueFalse QuestionType = "true_false"
)

type Quiz struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	CourseID       uint           `json:"course_id" gorm:"not null;index"`
	Title          string         `json:"title" gorm:"not null"`
	Description    string         `json:"description"`
	TimeLimit      *int           `json:"time_limit"` // minutes
	MaxAttempts    int            `json:"max_attempts" gorm:"not null;default:1"`
	PassingScore   *float64       `json:"passing_score"` // percentage; nil means no pass/fail threshold
	AvailableFrom  *time.Time     `json:"available_from"`
	AvailableUntil *time.Time     `json:"available_until"`
	CreatedBy      uint           `json:"created_by" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`

	Questions []Question `json:"questions,omitempty" gorm:"foreignKey:QuizID"`
}

type Question struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	Type          QuestionType   `json:"type" gorm:"not null"`
	Text          string         `json:"text" gorm:"not null"`
	Points        float64        `json:"points" gorm:"not null;default:1"`
	CorrectAnswer string         `json:"correct_answer" gorm:"not null"`
	Order         int            `json:"order" gorm:"not null"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	Options []QuestionOption `json:"options,omitempty" gorm:"foreignKey:QuestionID"`
}

type QuestionOption struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	QuestionID uint           `json:"question_id" gorm:"not null;index"`
	Text       string         `json:"text" gorm:"not null"`
	Order      int            `json:"order" gorm:"not null"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `json:"-" gorm:"index"`
}
