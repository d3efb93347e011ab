package models

import (
	"time"

	"gorm.io/gorm"
)

type QuizAttempt struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	QuizID        uint           `json:"quiz_id" gorm:"not null;index"`
	StudentID     uint           `json:"student_id" gorm:"not null;index"`
	AttemptNumber int            `json:"attempt_number" gorm:"not null"`
	StartedAt     time.Time      `json:"started_at"`
	SubmittedAt   *time.Time     `json:"submitted_at"` // nil until finalized; terminal once set
	Score         *float64       `json:"score"`
	MaxScore      *float64       `json:"max_score"`
	Percentage    *float64       `json:"percentage"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`

	Answers []Answer `json:"answers,omitempty" gorm:"foreignKey:AttemptID"`
}

type Answer struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	AttemptID    uint           `json:"attempt_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	QuestionID   uint           `json:"question_id" gorm:"not null;uniqueIndex:idx_attempt_question"`
	AnswerText   string         `json:"answer_text"`
	IsCorrect    bool           `json:"is_correct" gorm:"not null"`
	PointsEarned float64        `json:"points_earned" gorm:"not null"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"-" gorm:"index"`
}
