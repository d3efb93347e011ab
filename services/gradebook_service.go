package services

import (
	"errors"

	"campuscore/models"

	"gorm.io/gorm"
)

type GradebookService struct {
	db *gorm.DB
}

func NewGradebookService(db *gorm.DB) *GradebookService {
	return &GradebookService{db: db}
}

type GradebookAssignment struct {
	ID        uint    `json:"id"`
	Title     string  `json:"title"`
	MaxPoints float64 `json:"max_points"`
}

type GradebookStudentRow struct {
	StudentID    uint              `json:"student_id"`
	StudentName  string            `json:"student_name"`
	StudentEmail string            `json:"student_email"`
	Grades       map[uint]*float64 `json:"grades"` // assignment id -> grade, nil when ungraded
	TotalPoints  float64           `json:"total_points"`
	MaxPoints    float64           `json:"max_points"`
	Percentage   float64           `json:"percentage"`
}

type GradebookView struct {
	CourseID    uint                  `json:"course_id"`
	CourseTitle string                `json:"course_title"`
	Assignments []GradebookAssignment `json:"assignments"`
	Students    []GradebookStudentRow `json:"students"`
}

// BuildGradebook composes per-assignment grades into per-student roll-ups.
// Every assignment counts toward a student's max_points whether or not a
// graded submission exists, so ungraded work drags the percentage down
// instead of being excluded. Submissions pointing at assignments outside the
// course contribute nothing.
func BuildGradebook(course *models.Course, assignments []models.Assignment, students []models.User, submissions []models.Submission) GradebookView {
	view := GradebookView{
		CourseID:    course.ID,
		CourseTitle: course.Title,
		Assignments: []GradebookAssignment{},
		Students:    []GradebookStudentRow{},
	}

	for _, a := range assignments {
		view.Assignments = append(view.Assignments, GradebookAssignment{
			ID:        a.ID,
			Title:     a.Title,
			MaxPoints: a.MaxPoints,
		})
	}

	// (student, assignment) -> submission
	byKey := make(map[[2]uint]models.Submission, len(submissions))
	for _, sub := range submissions {
		byKey[[2]uint{sub.StudentID, sub.AssignmentID}] = sub
	}

	for _, student := range students {
		row := GradebookStudentRow{
			StudentID:    student.ID,
			StudentName:  student.FullName,
			StudentEmail: student.Email,
			Grades:       make(map[uint]*float64, len(assignments)),
		}

		for _, assignment := range assignments {
			row.MaxPoints += assignment.MaxPoints

			sub, ok := byKey[[2]uint{student.ID, assignment.ID}]
			if ok && sub.Grade != nil {
				grade := *sub.Grade
				row.Grades[assignment.ID] = &grade
				row.TotalPoints += grade
			} else {
				row.Grades[assignment.ID] = nil
			}
		}

		row.Percentage = round2(Percentage(row.TotalPoints, row.MaxPoints))
		view.Students = append(view.Students, row)
	}

	return view
}

// CourseGradebook loads everything the gradebook needs with one query per
// entity set and composes it in memory. Teachers must teach a section of the
// course; admins bypass the ownership check.
func (s *GradebookService) CourseGradebook(courseID, userID uint, role models.Role) (*GradebookView, error) {
	var course models.Course
	if err := s.db.First(&course, courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role == models.RoleTeacher {
		var count int64
		if err := s.db.Model(&models.Section{}).
			Where("course_id = ? AND teacher_id = ?", courseID, userID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrForbidden
		}
	}

	var assignments []models.Assignment
	if err := s.db.Where("course_id = ?", courseID).
		Order("due_date").
		Find(&assignments).Error; err != nil {
		return nil, err
	}

	// Students enrolled in any section of the course, deduplicated
	var enrollments []models.Enrollment
	if err := s.db.
		Joins("JOIN sections ON sections.id = enrollments.section_id").
		Where("sections.course_id = ?", courseID).
		Find(&enrollments).Error; err != nil {
		return nil, err
	}

	seen := make(map[uint]struct{}, len(enrollments))
	studentIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		if _, ok := seen[e.StudentID]; !ok {
			seen[e.StudentID] = struct{}{}
			studentIDs = append(studentIDs, e.StudentID)
		}
	}

	var students []models.User
	if len(studentIDs) > 0 {
		if err := s.db.Where("id IN ?", studentIDs).Order("full_name").Find(&students).Error; err != nil {
			return nil, err
		}
	}

	var submissions []models.Submission
	if len(studentIDs) > 0 {
		if err := s.db.
			Joins("JOIN assignments ON assignments.id = submissions.assignment_id").
			Where("assignments.course_id = ? AND submissions.student_id IN ?", courseID, studentIDs).
			Find(&submissions).Error; err != nil {
			return nil, err
		}
	}

	view := BuildGradebook(&course, assignments, students, submissions)
	return &view, nil
}
