package models

import (
	"time"

	"gorm.io/gorm"
)

type DiscussionThread struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	CourseID  uint           `json:"course_id" gorm:"not null;index"`
	Title     string         `json:"title" gorm:"not null"`
	Content   string         `json:"content" gorm:"not null"`
	IsPinned  bool           `json:"is_pinned" gorm:"not null;default:false"`
	CreatedBy uint           `json:"created_by" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type ThreadReply struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ThreadID  uint           `json:"thread_id" gorm:"not null;index"`
	Content   string         `json:"content" gorm:"not null"`
	Upvotes   int            `json:"upvotes" gorm:"not null;default:0"`
	CreatedBy uint           `json:"created_by" gorm:"not null"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
