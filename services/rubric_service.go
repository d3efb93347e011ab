package services

import (
	"errors"

	"campuscore/models"

	"gorm.io/gorm"
)

type RubricService struct {
	db *gorm.DB
}

func NewRubricService(db *gorm.DB) *RubricService {
	return &RubricService{db: db}
}

type CreateRubricRequest struct {
	CourseID    *uint                  `json:"course_id"`
	Title       string                 `json:"title" binding:"required"`
	Description string                 `json:"description"`
	Criteria    []CreateCriterionInput `json:"criteria" binding:"required,min=1,dive"`
}

type CreateCriterionInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	MaxPoints   float64 `json:"max_points" binding:"required,gt=0"`
}

func (s *RubricService) CreateRubric(userID uint, req *CreateRubricRequest) (*models.Rubric, error) {
	rubric := models.Rubric{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		CreatedBy:   userID,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rubric).Error; err != nil {
			return err
		}
		for i, input := range req.Criteria {
			criterion := models.RubricCriterion{
				RubricID:    rubric.ID,
				Name:        input.Name,
				Description: input.Description,
				MaxPoints:   input.MaxPoints,
				SortOrder:   i + 1,
			}
			if err := tx.Create(&criterion).Error; err != nil {
				return err
			}
			rubric.Criteria = append(rubric.Criteria, criterion)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rubric, nil
}

// GetCourseRubrics returns the course's rubrics plus the shared ones.
func (s *RubricService) GetCourseRubrics(courseID uint) ([]models.Rubric, error) {
	var rubrics []models.Rubric
	err := s.db.Where("course_id = ? OR course_id IS NULL", courseID).
		Order("created_at DESC").
		Find(&rubrics).Error
	if err != nil {
		return nil, err
	}
	return rubrics, nil
}

func (s *RubricService) GetRubricByID(rubricID uint) (*models.Rubric, error) {
	var rubric models.Rubric
	err := s.db.Preload("Criteria", func(db *gorm.DB) *gorm.DB {
		return db.Order("rubric_criteria.sort_order ASC")
	}).First(&rubric, rubricID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &rubric, nil
}

func (s *RubricService) DeleteRubric(rubricID, userID uint, role models.Role) error {
	rubric, err := s.GetRubricByID(rubricID)
	if err != nil {
		return err
	}

	if role != models.RoleAdmin && rubric.CreatedBy != userID {
		return ErrForbidden
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rubric_id = ?", rubricID).Delete(&models.RubricCriterion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Rubric{}, rubricID).Error
	})
}
