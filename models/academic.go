package models

import (
	"time"

	"gorm.io/gorm"
)

type Department struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	Code      string         `json:"code" gorm:"not null;uniqueIndex:idx_departments_code,where:deleted_at IS NULL"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Program struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	DepartmentID  uint           `json:"department_id" gorm:"not null;index"`
	Name          string         `json:"name" gorm:"not null"`
	DurationYears int            `json:"duration_years" gorm:"not null;default:4"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `json:"-" gorm:"index"`
}

type Batch struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ProgramID uint           `json:"program_id" gorm:"not null;index"`
	Name      string         `json:"name" gorm:"not null"`
	StartYear int            `json:"start_year" gorm:"not null"`
	IsActive  bool           `json:"is_active" gorm:"not null;default:true"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

type Semester struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	Name      string         `json:"name" gorm:"not null"`
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}
