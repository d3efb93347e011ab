package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"campuscore/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssignmentService struct {
	db           *gorm.DB
	uploadDir    string
	notification *NotificationService
}

func NewAssignmentService(db *gorm.DB, uploadDir string, notification *NotificationService) *AssignmentService {
	return &AssignmentService{
		db:           db,
		uploadDir:    uploadDir,
		notification: notification,
	}
}

type CreateAssignmentRequest struct {
	CourseID    uint    `json:"course_id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	DueDate     *string `json:"due_date"`
	MaxPoints   float64 `json:"max_points" binding:"omitempty,min=0"`
}

func (s *AssignmentService) CreateAssignment(userID uint, req *CreateAssignmentRequest) (*models.Assignment, error) {
	var course models.Course
	if err := s.db.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var dueDate *time.Time
	if req.DueDate != nil && *req.DueDate != "" {
		t, err := parseDateTime(*req.DueDate)
		if err != nil {
			return nil, err
		}
		dueDate = &t
	}

	maxPoints := req.MaxPoints
	if maxPoints == 0 {
		maxPoints = 100
	}

	assignment := models.Assignment{
		CourseID:    req.CourseID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		MaxPoints:   maxPoints,
		CreatedBy:   userID,
	}
	if err := s.db.Create(&assignment).Error; err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (s *AssignmentService) GetCourseAssignments(courseID uint) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.db.Where("course_id = ?", courseID).Order("due_date").Find(&assignments).Error
	return assignments, err
}

func (s *AssignmentService) GetAssignmentByID(assignmentID uint) (*models.Assignment, error) {
	var assignment models.Assignment
	if err := s.db.First(&assignment, assignmentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &assignment, nil
}

// Submit records a student's one submission for an assignment, optionally
// storing an uploaded file under a uuid-based name.
func (s *AssignmentService) Submit(assignmentID, studentID uint, content string, file *multipart.FileHeader) (*models.Submission, error) {
	if _, err := s.GetAssignmentByID(assignmentID); err != nil {
		return nil, err
	}

	var existing models.Submission
	err := s.db.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&existing).Error
	if err == nil {
		return nil, ErrAlreadySubmitted
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var filePath *string
	if file != nil {
		path, err := s.saveUpload(file)
		if err != nil {
			return nil, err
		}
		filePath = &path
	}

	submission := models.Submission{
		AssignmentID: assignmentID,
		StudentID:    studentID,
		Content:      content,
		FilePath:     filePath,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.db.Create(&submission).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

type SubmissionView struct {
	models.Submission
	Student *struct {
		ID       uint   `json:"id"`
		FullName string `json:"full_name"`
		Email    string `json:"email"`
	} `json:"student,omitempty"`
}

func (s *AssignmentService) GetSubmissions(assignmentID uint) ([]SubmissionView, error) {
	if _, err := s.GetAssignmentByID(assignmentID); err != nil {
		return nil, err
	}

	var submissions []models.Submission
	if err := s.db.Where("assignment_id = ?", assignmentID).Find(&submissions).Error; err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(submissions))
	for _, sub := range submissions {
		ids = append(ids, sub.StudentID)
	}

	students := make(map[uint]models.User, len(ids))
	if len(ids) > 0 {
		var users []models.User
		if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
			return nil, err
		}
		for _, u := range users {
			students[u.ID] = u
		}
	}

	views := make([]SubmissionView, 0, len(submissions))
	for _, sub := range submissions {
		view := SubmissionView{Submission: sub}
		if student, ok := students[sub.StudentID]; ok {
			view.Student = &struct {
				ID       uint   `json:"id"`
				FullName string `json:"full_name"`
				Email    string `json:"email"`
			}{ID: student.ID, FullName: student.FullName, Email: student.Email}
		}
		views = append(views, view)
	}
	return views, nil
}

type GradeSubmissionRequest struct {
	Grade    float64 `json:"grade" binding:"min=0"`
	Feedback string  `json:"feedback"`
}

// GradeSubmission sets or overwrites a submission's grade and notifies the
// student.
func (s *AssignmentService) GradeSubmission(submissionID, graderID uint, req *GradeSubmissionRequest) (*models.Submission, error) {
	var submission models.Submission
	if err := s.db.First(&submission, submissionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	assignment, err := s.GetAssignmentByID(submission.AssignmentID)
	if err != nil {
		return nil, err
	}
	if req.Grade > assignment.MaxPoints {
		return nil, fmt.Errorf("grade %.2f exceeds max points %.2f", req.Grade, assignment.MaxPoints)
	}

	now := time.Now().UTC()
	submission.Grade = &req.Grade
	submission.Feedback = &req.Feedback
	submission.GradedBy = &graderID
	submission.GradedAt = &now

	if err := s.db.Save(&submission).Error; err != nil {
		return nil, err
	}

	if s.notification != nil {
		title := fmt.Sprintf("Graded: %s", assignment.Title)
		content := fmt.Sprintf("You scored %.2f/%.2f", req.Grade, assignment.MaxPoints)
		s.notification.Notify(submission.StudentID, models.NotificationGrade, title, content, nil)
	}
	return &submission, nil
}

func (s *AssignmentService) GetStudentSubmissions(studentID uint) ([]models.Submission, error) {
	var submissions []models.Submission
	err := s.db.Where("student_id = ?", studentID).Order("submitted_at DESC").Find(&submissions).Error
	return submissions, err
}

func (s *AssignmentService) GetStudentSubmission(assignmentID, studentID uint) (*models.Submission, error) {
	var submission models.Submission
	err := s.db.Where("assignment_id = ? AND student_id = ?", assignmentID, studentID).
		First(&submission).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &submission, nil
}

func (s *AssignmentService) saveUpload(file *multipart.FileHeader) (string, error) {
	dir := filepath.Join(s.uploadDir, "assignments")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := uuid.NewString() + filepath.Ext(file.Filename)
	path := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return path, nil
}
