package services

import (
	"errors"

	"campuscore/models"

	"gorm.io/gorm"
)

type TeacherService struct {
	db *gorm.DB
}

func NewTeacherService(db *gorm.DB) *TeacherService {
	return &TeacherService{db: db}
}

type TeacherSectionView struct {
	models.Section
	CourseCode    string `json:"course_code"`
	CourseTitle   string `json:"course_title"`
	EnrolledCount int64  `json:"enrolled_count"`
}

type TeacherDashboard struct {
	Sections       []TeacherSectionView `json:"sections"`
	TotalStudents  int64                `json:"total_students"`
	PendingGrading int64                `json:"pending_grading"`
}

func (s *TeacherService) GetDashboard(teacherID uint) (*TeacherDashboard, error) {
	sections, err := s.GetSections(teacherID)
	if err != nil {
		return nil, err
	}

	dashboard := TeacherDashboard{Sections: sections}

	// A student enrolled in two of the teacher's sections counts once
	sectionIDs := make([]uint, 0, len(sections))
	for _, section := range sections {
		sectionIDs = append(sectionIDs, section.ID)
	}
	if len(sectionIDs) > 0 {
		err = s.db.Model(&models.Enrollment{}).
			Where("section_id IN ?", sectionIDs).
			Distinct("student_id").
			Count(&dashboard.TotalStudents).Error
		if err != nil {
			return nil, err
		}
	}

	err = s.db.Model(&models.Submission{}).
		Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
		Joins("JOIN courses ON courses.id = assignments.course_id").
		Where("courses.teacher_id = ? AND submissions.grade IS NULL", teacherID).
		Where("assignments.deleted_at IS NULL AND courses.deleted_at IS NULL").
		Count(&dashboard.PendingGrading).Error
	if err != nil {
		return nil, err
	}

	return &dashboard, nil
}

func (s *TeacherService) GetSections(teacherID uint) ([]TeacherSectionView, error) {
	var sections []models.Section
	if err := s.db.Where("teacher_id = ?", teacherID).Order("id ASC").Find(&sections).Error; err != nil {
		return nil, err
	}

	views := make([]TeacherSectionView, 0, len(sections))
	for _, section := range sections {
		view := TeacherSectionView{Section: section}

		var course models.Course
		if err := s.db.First(&course, section.CourseID).Error; err == nil {
			view.CourseCode = course.Code
			view.CourseTitle = course.Title
		}

		s.db.Model(&models.Enrollment{}).Where("section_id = ?", section.ID).Count(&view.EnrolledCount)
		views = append(views, view)
	}
	return views, nil
}

func (s *TeacherService) GetSection(sectionID, teacherID uint, role models.Role) (*TeacherSectionView, error) {
	section, err := s.getOwnedSection(sectionID, teacherID, role)
	if err != nil {
		return nil, err
	}

	view := TeacherSectionView{Section: *section}

	var course models.Course
	if err := s.db.First(&course, section.CourseID).Error; err == nil {
		view.CourseCode = course.Code
		view.CourseTitle = course.Title
	}

	s.db.Model(&models.Enrollment{}).Where("section_id = ?", section.ID).Count(&view.EnrolledCount)
	return &view, nil
}

type SectionStudent struct {
	StudentID  uint    `json:"student_id"`
	FullName   string  `json:"full_name"`
	Email      string  `json:"email"`
	FinalGrade *string `json:"final_grade"`
}

func (s *TeacherService) GetSectionStudents(sectionID, teacherID uint, role models.Role) ([]SectionStudent, error) {
	if _, err := s.getOwnedSection(sectionID, teacherID, role); err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := s.db.Where("section_id = ?", sectionID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	studentIDs := make([]uint, 0, len(enrollments))
	for _, enrollment := range enrollments {
		studentIDs = append(studentIDs, enrollment.StudentID)
	}

	users := map[uint]models.User{}
	if len(studentIDs) > 0 {
		var rows []models.User
		if err := s.db.Where("id IN ?", studentIDs).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, user := range rows {
			users[user.ID] = user
		}
	}

	students := make([]SectionStudent, 0, len(enrollments))
	for _, enrollment := range enrollments {
		user := users[enrollment.StudentID]
		students = append(students, SectionStudent{
			StudentID:  enrollment.StudentID,
			FullName:   user.FullName,
			Email:      user.Email,
			FinalGrade: enrollment.FinalGrade,
		})
	}
	return students, nil
}

func (s *TeacherService) getOwnedSection(sectionID, teacherID uint, role models.Role) (*models.Section, error) {
	var section models.Section
	if err := s.db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != models.RoleAdmin && (section.TeacherID == nil || *section.TeacherID != teacherID) {
		return nil, ErrForbidden
	}
	return &section, nil
}
