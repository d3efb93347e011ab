package services

import (
	"errors"
	"fmt"

	"campuscore/models"

	"gorm.io/gorm"
)

type CourseService struct {
	db *gorm.DB
}

func NewCourseService(db *gorm.DB) *CourseService {
	return &CourseService{db: db}
}

type CreateCourseRequest struct {
	Code        string `json:"code" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	CreditHours int    `json:"credit_hours" binding:"omitempty,min=1,max=10"`
	ProgramID   *uint  `json:"program_id"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	CreditHours *int    `json:"credit_hours" binding:"omitempty,min=1,max=10"`
	ProgramID   *uint   `json:"program_id"`
}

func (s *CourseService) GetCourses(offset, limit int) ([]models.Course, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	var courses []models.Course
	err := s.db.Offset(offset).Limit(limit).Order("code").Find(&courses).Error
	return courses, err
}

func (s *CourseService) GetCourseByID(courseID uint) (*models.Course, error) {
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) CreateCourse(userID uint, role models.Role, req *CreateCourseRequest) (*models.Course, error) {
	creditHours := req.CreditHours
	if creditHours == 0 {
		creditHours = 3
	}

	course := models.Course{
		Code:        req.Code,
		Title:       req.Title,
		Description: req.Description,
		CreditHours: creditHours,
		ProgramID:   req.ProgramID,
		// Admin-created courses skip the approval queue
		IsApproved: role == models.RoleAdmin,
	}
	if role == models.RoleTeacher {
		course.TeacherID = &userID
	}

	if err := s.db.Create(&course).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (s *CourseService) UpdateCourse(courseID, userID uint, role models.Role, req *UpdateCourseRequest) (*models.Course, error) {
	course, err := s.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin {
		if course.TeacherID == nil || *course.TeacherID != userID {
			return nil, ErrForbidden
		}
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.CreditHours != nil {
		course.CreditHours = *req.CreditHours
	}
	if req.ProgramID != nil {
		course.ProgramID = req.ProgramID
	}

	if err := s.db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) DeleteCourse(courseID, userID uint, role models.Role) error {
	course, err := s.GetCourseByID(courseID)
	if err != nil {
		return err
	}

	if role != models.RoleAdmin {
		if role != models.RoleTeacher || course.TeacherID == nil || *course.TeacherID != userID {
			return ErrForbidden
		}
	}

	return s.db.Delete(course).Error
}

func (s *CourseService) ApproveCourse(courseID uint) (*models.Course, error) {
	course, err := s.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	course.IsApproved = true
	if err := s.db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) TogglePublish(courseID uint) (*models.Course, error) {
	course, err := s.GetCourseByID(courseID)
	if err != nil {
		return nil, err
	}

	if !course.IsApproved && !course.IsPublished {
		return nil, fmt.Errorf("course %s must be approved before publishing", course.Code)
	}

	course.IsPublished = !course.IsPublished
	if err := s.db.Save(course).Error; err != nil {
		return nil, err
	}
	return course, nil
}
