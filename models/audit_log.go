package models

import "time"

// AuditLog is append-only; rows are never updated or deleted.
type AuditLog struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Action      string    `json:"action" gorm:"not null;index"`
	PerformedBy uint      `json:"performed_by" gorm:"not null"`
	TargetID    *uint     `json:"target_id"`
	Details     string    `json:"details"`
	CreatedAt   time.Time `json:"created_at"`
}
