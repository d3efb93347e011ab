package models

import (
	"time"

	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationAnnouncement NotificationType = "announcement"
	NotificationGrade        NotificationType = "grade"
	NotificationDiscussion   NotificationType = "discussion"
	NotificationSystem       NotificationType = "system"
)

type Notification struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	UserID    uint             `json:"user_id" gorm:"not null;index"`
	Type      NotificationType `json:"type" gorm:"not null;default:'system'"`
	Title     string           `json:"title" gorm:"not null"`
	Content   string           `json:"content"`
	Link      *string          `json:"link"`
	IsRead    bool             `json:"is_read" gorm:"not null;default:false"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
	DeletedAt gorm.DeletedAt   `json:"-" gorm:"index"`
}
