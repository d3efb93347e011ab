package services

import (
	"errors"
	"time"

	"campuscore/models"

	"gorm.io/gorm"
)

type QuizService struct {
	db *gorm.DB
}

func NewQuizService(db *gorm.DB) *QuizService {
	return &QuizService{db: db}
}

type CreateQuizRequest struct {
	CourseID       uint                    `json:"course_id" binding:"required"`
	Title          string                  `json:"title" binding:"required"`
	Description    string                  `json:"description"`
	TimeLimit      *int                    `json:"time_limit" binding:"omitempty,min=1"`
	MaxAttempts    int                     `json:"max_attempts" binding:"required,min=1"`
	PassingScore   *float64                `json:"passing_score" binding:"omitempty,min=0,max=100"`
	AvailableFrom  *string                 `json:"available_from"`
	AvailableUntil *string                 `json:"available_until"`
	Questions      []CreateQuestionRequest `json:"questions" binding:"required,min=1"`
}

type CreateQuestionRequest struct {
	Type          models.QuestionType `json:"type" binding:"required,oneof=mcq true_false"`
	Text          string              `json:"text" binding:"required"`
	Points        float64             `json:"points" binding:"min=0"`
	CorrectAnswer string              `json:"correct_answer" binding:"required"`
	Order         int                 `json:"order"`
	Options       []string            `json:"options" binding:"omitempty,max=6"`
}

type SubmitQuizRequest struct {
	Answers map[uint]string `json:"answers" binding:"required"`
}

func (s *QuizService) CreateQuiz(userID uint, req *CreateQuizRequest) (*models.Quiz, error) {
	availableFrom, availableUntil, err := parseAvailabilityWindow(req.AvailableFrom, req.AvailableUntil)
	if err != nil {
		return nil, err
	}

	quiz := models.Quiz{
		CourseID:       req.CourseID,
		Title:          req.Title,
		Description:    req.Description,
		TimeLimit:      req.TimeLimit,
		MaxAttempts:    req.MaxAttempts,
		PassingScore:   req.PassingScore,
		AvailableFrom:  availableFrom,
		AvailableUntil: availableUntil,
		CreatedBy:      userID,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&quiz).Error; err != nil {
			return err
		}

		for _, qReq := range req.Questions {
			if qReq.Type == models.QuestionMCQ && len(qReq.Options) < 2 {
				return errors.New("multiple-choice questions need at least two options")
			}

			question := models.Question{
				QuizID:        quiz.ID,
				Type:          qReq.Type,
				Text:          qReq.Text,
				Points:        qReq.Points,
				CorrectAnswer: qReq.CorrectAnswer,
				Order:         qReq.Order,
			}
			if err := tx.Create(&question).Error; err != nil {
				return err
			}

			for i, optText := range qReq.Options {
				option := models.QuestionOption{
					QuestionID: question.ID,
					Text:       optText,
					Order:      i + 1,
				}
				if err := tx.Create(&option).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetQuizByID(quiz.ID)
}

func (s *QuizService) GetCourseQuizzes(courseID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := s.db.Where("course_id = ?", courseID).
		Order("created_at DESC").
		Find(&quizzes).Error
	return quizzes, err
}

func (s *QuizService) GetQuizByID(quizID uint) (*models.Quiz, error) {
	var quiz models.Quiz
	err := s.db.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order(`questions."order"`)
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order(`question_options."order"`)
		}).
		First(&quiz, quizID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// StudentQuizView strips the answer key from a quiz so students can take it
// without seeing the solutions.
type StudentQuizView struct {
	models.Quiz
	Questions []StudentQuestionView `json:"questions"`
}

type StudentQuestionView struct {
	ID      uint                    `json:"id"`
	Type    models.QuestionType     `json:"type"`
	Text    string                  `json:"text"`
	Points  float64                 `json:"points"`
	Order   int                     `json:"order"`
	Options []models.QuestionOption `json:"options"`
}

func (s *QuizService) GetQuizForStudent(quizID uint) (*StudentQuizView, error) {
	quiz, err := s.GetQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	view := StudentQuizView{Quiz: *quiz}
	view.Quiz.Questions = nil
	for _, q := range quiz.Questions {
		view.Questions = append(view.Questions, StudentQuestionView{
			ID:      q.ID,
			Type:    q.Type,
			Text:    q.Text,
			Points:  q.Points,
			Order:   q.Order,
			Options: q.Options,
		})
	}
	return &view, nil
}

func (s *QuizService) DeleteQuiz(quizID uint) error {
	if _, err := s.GetQuizByID(quizID); err != nil {
		return err
	}
	return s.db.Delete(&models.Quiz{}, quizID).Error
}

// StartAttempt creates a new attempt for a student, enforcing the availability
// window and the quiz's attempt budget. Attempt numbers stay dense per
// (quiz, student): 1..k in creation order.
func (s *QuizService) StartAttempt(quizID, studentID uint) (*models.QuizAttempt, error) {
	var student models.User
	if err := s.db.First(&student, studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if student.Role != models.RoleStudent {
		return nil, ErrForbidden
	}

	quiz, err := s.GetQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if quiz.AvailableFrom != nil && now.Before(*quiz.AvailableFrom) {
		return nil, ErrQuizNotAvailable
	}
	if quiz.AvailableUntil != nil && now.After(*quiz.AvailableUntil) {
		return nil, ErrQuizNotAvailable
	}

	var attempt models.QuizAttempt
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.QuizAttempt{}).
			Where("quiz_id = ? AND student_id = ?", quizID, studentID).
			Count(&count).Error; err != nil {
			return err
		}
		if count >= int64(quiz.MaxAttempts) {
			return ErrMaxAttemptsExceeded
		}

		attempt = models.QuizAttempt{
			QuizID:        quizID,
			StudentID:     studentID,
			AttemptNumber: int(count) + 1,
			StartedAt:     now,
		}
		return tx.Create(&attempt).Error
	})
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

// SubmitAttempt grades and finalizes one attempt in a single transaction.
// The submitted_at check-and-set guarantees at most one successful grading per
// attempt; a losing concurrent submission fails with ErrQuizAlreadySubmitted
// and writes nothing.
func (s *QuizService) SubmitAttempt(quizID, attemptID, studentID uint, req *SubmitQuizRequest) (*AttemptResult, error) {
	quiz, err := s.GetQuizByID(quizID)
	if err != nil {
		return nil, err
	}

	var result AttemptResult
	err = s.db.Transaction(func(tx *gorm.DB) error {
		var attempt models.QuizAttempt
		if err := tx.First(&attempt, attemptID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}
		if attempt.QuizID != quizID {
			return ErrNotFound
		}
		if attempt.StudentID != studentID {
			return ErrForbidden
		}
		if attempt.SubmittedAt != nil {
			return ErrQuizAlreadySubmitted
		}

		graded, score, maxScore := GradeQuestions(quiz.Questions, req.Answers)
		percentage := Percentage(score, maxScore)

		// Conditional update: only the first submission ever lands, even when
		// two requests race past the read above.
		now := time.Now().UTC()
		res := tx.Model(&models.QuizAttempt{}).
			Where("id = ? AND submitted_at IS NULL", attempt.ID).
			Updates(map[string]interface{}{
				"submitted_at": now,
				"score":        score,
				"max_score":    maxScore,
				"percentage":   percentage,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrQuizAlreadySubmitted
		}

		for i := range graded {
			graded[i].AttemptID = attempt.ID
			if err := tx.Create(&graded[i]).Error; err != nil {
				return err
			}
		}

		result = AttemptResult{
			AttemptID:  attempt.ID,
			Score:      score,
			MaxScore:   maxScore,
			Percentage: percentage,
			Passed:     Passed(quiz.PassingScore, percentage),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetQuizAttempts lists attempts for a quiz. Students see only their own;
// teachers and admins see everyone's.
func (s *QuizService) GetQuizAttempts(quizID uint, userID uint, role models.Role) ([]models.QuizAttempt, error) {
	if _, err := s.GetQuizByID(quizID); err != nil {
		return nil, err
	}

	query := s.db.Where("quiz_id = ?", quizID)
	if role == models.RoleStudent {
		query = query.Where("student_id = ?", userID)
	}

	var attempts []models.QuizAttempt
	err := query.Order("started_at DESC").Find(&attempts).Error
	return attempts, err
}

type AnswerReview struct {
	QuestionID    uint                    `json:"question_id"`
	QuestionText  string                  `json:"question_text"`
	QuestionType  models.QuestionType     `json:"question_type"`
	Points        float64                 `json:"points"`
	StudentAnswer string                  `json:"student_answer"`
	CorrectAnswer string                  `json:"correct_answer"`
	IsCorrect     bool                    `json:"is_correct"`
	PointsEarned  float64                 `json:"points_earned"`
	Options       []models.QuestionOption `json:"options,omitempty"`
}

type AttemptReview struct {
	Attempt models.QuizAttempt `json:"attempt"`
	Results []AnswerReview     `json:"results"`
}

// GetAttemptResults returns the per-question breakdown of a finished attempt.
func (s *QuizService) GetAttemptResults(attemptID, userID uint, role models.Role) (*AttemptReview, error) {
	var attempt models.QuizAttempt
	if err := s.db.Preload("Answers").First(&attempt, attemptID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role == models.RoleStudent && attempt.StudentID != userID {
		return nil, ErrForbidden
	}

	quiz, err := s.GetQuizByID(attempt.QuizID)
	if err != nil {
		return nil, err
	}

	questionsByID := make(map[uint]models.Question, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questionsByID[q.ID] = q
	}

	review := AttemptReview{Attempt: attempt}
	review.Attempt.Answers = nil
	for _, answer := range attempt.Answers {
		question, ok := questionsByID[answer.QuestionID]
		if !ok {
			// Question was removed after the attempt; the answer no longer
			// contributes to the review.
			continue
		}
		review.Results = append(review.Results, AnswerReview{
			QuestionID:    question.ID,
			QuestionText:  question.Text,
			QuestionType:  question.Type,
			Points:        question.Points,
			StudentAnswer: answer.AnswerText,
			CorrectAnswer: question.CorrectAnswer,
			IsCorrect:     answer.IsCorrect,
			PointsEarned:  answer.PointsEarned,
			Options:       question.Options,
		})
	}
	return &review, nil
}

// parseAvailabilityWindow parses optional RFC3339 bounds and rejects an
// inverted window.
func parseAvailabilityWindow(from, until *string) (*time.Time, *time.Time, error) {
	var availableFrom, availableUntil *time.Time

	if from != nil && *from != "" {
		t, err := parseDateTime(*from)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		availableFrom = &t
	}
	if until != nil && *until != "" {
		t, err := parseDateTime(*until)
		if err != nil {
			return nil, nil, ErrInvalidDate
		}
		availableUntil = &t
	}
	if availableFrom != nil && availableUntil != nil && availableFrom.After(*availableUntil) {
		return nil, nil, errors.New("available_from must not be after available_until")
	}
	return availableFrom, availableUntil, nil
}

// parseDateTime accepts RFC3339 or a bare local datetime/date, matching what
// the web client sends.
func parseDateTime(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}
