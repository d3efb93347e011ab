package models

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

// Attendance holds one mark per (section, student, date). Marking a date again
// replaces every record for that date, so rows are deleted for real instead of
// being soft-deleted: a soft-deleted row would still occupy the unique index
// and block the replacement insert.
type Attendance struct {
	ID        uint             `json:"id" gorm:"primaryKey"`
	SectionID uint             `json:"section_id" gorm:"not null;uniqueIndex:idx_section_student_date"`
	StudentID uint             `json:"student_id" gorm:"not null;uniqueIndex:idx_section_student_date"`
	Date      time.Time        `json:"date" gorm:"not null;uniqueIndex:idx_section_student_date"`
	Status    AttendanceStatus `json:"status" gorm:"not null"`
	MarkedBy  uint             `json:"marked_by" gorm:"not null"`
	MarkedAt  time.Time        `json:"marked_at"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
