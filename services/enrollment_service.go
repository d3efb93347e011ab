package services

import (
	"errors"
	"fmt"

	"campuscore/models"

	"gorm.io/gorm"
)

type EnrollmentService struct {
	db *gorm.DB
	// defaultSectionName is the named policy for course-level enrollment:
	// when no section is given, the student lands in the course's section
	// with this name.
	defaultSectionName string
}

func NewEnrollmentService(db *gorm.DB, defaultSectionName string) *EnrollmentService {
	return &EnrollmentService{db: db, defaultSectionName: defaultSectionName}
}

type EnrollRequest struct {
	StudentID uint  `json:"student_id" binding:"required"`
	SectionID *uint `json:"section_id"`
	CourseID  *uint `json:"course_id"`
}

// Enroll adds a student to a section. Callers pass either an explicit section
// or just a course; in the latter case the default-section policy applies.
func (s *EnrollmentService) Enroll(req *EnrollRequest) (*models.Enrollment, error) {
	var student models.User
	if err := s.db.First(&student, req.StudentID).Error; err != nil || student.Role != models.RoleStudent {
		return nil, fmt.Errorf("%w: student", ErrNotFound)
	}

	var section models.Section
	switch {
	case req.SectionID != nil:
		if err := s.db.First(&section, *req.SectionID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
	case req.CourseID != nil:
		err := s.db.Where("course_id = ? AND name = ?", *req.CourseID, s.defaultSectionName).
			First(&section).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("course has no %q section to enroll into", s.defaultSectionName)
		}
		if err != nil {
			return nil, err
		}
	default:
		return nil, errors.New("either section_id or course_id is required")
	}

	var existing models.Enrollment
	err := s.db.Where("section_id = ? AND student_id = ?", section.ID, student.ID).First(&existing).Error
	if err == nil {
		return nil, errors.New("student already enrolled in this section")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var enrolled int64
	if err := s.db.Model(&models.Enrollment{}).Where("section_id = ?", section.ID).Count(&enrolled).Error; err != nil {
		return nil, err
	}
	if enrolled >= int64(section.Capacity) {
		return nil, fmt.Errorf("section %s is full", section.Name)
	}

	enrollment := models.Enrollment{
		SectionID: section.ID,
		StudentID: student.ID,
	}
	if err := s.db.Create(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}

// Unenroll removes the enrollment outright. A soft delete would leave the row
// in idx_section_student and block the student from ever re-enrolling.
func (s *EnrollmentService) Unenroll(sectionID, studentID uint) error {
	res := s.db.Unscoped().Where("section_id = ? AND student_id = ?", sectionID, studentID).
		Delete(&models.Enrollment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type SetFinalGradeRequest struct {
	FinalGrade string `json:"final_grade" binding:"required"`
}

// SetFinalGrade records an opaque letter grade on an enrollment. The value is
// never derived from the gradebook here.
func (s *EnrollmentService) SetFinalGrade(sectionID, studentID uint, grade string) (*models.Enrollment, error) {
	var enrollment models.Enrollment
	err := s.db.Where("section_id = ? AND student_id = ?", sectionID, studentID).First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	enrollment.FinalGrade = &grade
	if err := s.db.Save(&enrollment).Error; err != nil {
		return nil, err
	}
	return &enrollment, nil
}
