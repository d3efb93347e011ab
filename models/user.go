package models

import (
	"time"

	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleStudent Role = "student"
)

type User struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	// Unique among live rows only, so a deleted account does not reserve
	// its email address forever.
	Email          string         `json:"email" gorm:"not null;uniqueIndex:idx_users_email,where:deleted_at IS NULL"`
	FullName       string         `json:"full_name" gorm:"not null"`
	Role           Role           `json:"role" gorm:"not null;default:'student'"`
	IsActive       bool           `json:"is_active" gorm:"not null;default:true"`
	HashedPassword string         `json:"-" gorm:"not null"`
	BatchID        *uint          `json:"batch_id"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
