package services

import (
	"testing"
	"time"

	"campuscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createQuiz(t *testing.T, db *gorm.DB, courseID, createdBy uint, maxAttempts int, passingScore *float64) models.Quiz {
	t.Helper()
	quiz := models.Quiz{
		CourseID:     courseID,
		Title:        "Week 1 Quiz",
		MaxAttempts:  maxAttempts,
		PassingScore: passingScore,
		CreatedBy:    createdBy,
	}
	require.NoError(t, db.Create(&quiz).Error)

	questions := []models.Question{
		{QuizID: quiz.ID, Type: models.QuestionMCQ, Text: "Capital of France?", Points: 2, CorrectAnswer: "Paris", Order: 1},
		{QuizID: quiz.ID, Type: models.QuestionTrueFalse, Text: "The sky is blue.", Points: 1, CorrectAnswer: "true", Order: 2},
	}
	for i := range questions {
		require.NoError(t, db.Create(&questions[i]).Error)
	}
	quiz.Questions = questions
	return quiz
}

func TestStartAttemptRejectsNonStudents(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	quiz := createQuiz(t, db, course.ID, teacher.ID, 2, nil)

	_, err := svc.StartAttempt(quiz.ID, teacher.ID)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.StartAttempt(quiz.ID, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStartAttemptEnforcesMaxAttempts(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	quiz := createQuiz(t, db, course.ID, teacher.ID, 2, nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")

	first, err := svc.StartAttempt(quiz.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, first.AttemptNumber)
	assert.Nil(t, first.SubmittedAt)

	second, err := svc.StartAttempt(quiz.ID, student.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, second.AttemptNumber)

	_, err = svc.StartAttempt(quiz.ID, student.ID)
	assert.ErrorIs(t, err, ErrMaxAttemptsExceeded)

	// Another student's budget is untouched
	other := createStudent(t, db, "Bilal", "bilal@example.edu")
	attempt, err := svc.StartAttempt(quiz.ID, other.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, attempt.AttemptNumber)
}

func TestStartAttemptOutsideAvailabilityWindow(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	student := createStudent(t, db, "Amara", "amara@example.edu")

	future := time.Now().UTC().Add(24 * time.Hour)
	notYet := models.Quiz{CourseID: course.ID, Title: "Future Quiz", MaxAttempts: 1, AvailableFrom: &future, CreatedBy: teacher.ID}
	require.NoError(t, db.Create(&notYet).Error)

	_, err := svc.StartAttempt(notYet.ID, student.ID)
	assert.ErrorIs(t, err, ErrQuizNotAvailable)

	past := time.Now().UTC().Add(-24 * time.Hour)
	closed := models.Quiz{CourseID: course.ID, Title: "Closed Quiz", MaxAttempts: 1, AvailableUntil: &past, CreatedBy: teacher.ID}
	require.NoError(t, db.Create(&closed).Error)

	_, err = svc.StartAttempt(closed.ID, student.ID)
	assert.ErrorIs(t, err, ErrQuizNotAvailable)
}

func TestSubmitAttemptGradesAndFinalizes(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	passing := 60.0
	quiz := createQuiz(t, db, course.ID, teacher.ID, 1, &passing)
	student := createStudent(t, db, "Amara", "amara@example.edu")

	attempt, err := svc.StartAttempt(quiz.ID, student.ID)
	require.NoError(t, err)

	result, err := svc.SubmitAttempt(quiz.ID, attempt.ID, student.ID, &SubmitQuizRequest{
		Answers: map[uint]string{
			quiz.Questions[0].ID: "Paris",
			quiz.Questions[1].ID: "false",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, result.Score)
	assert.Equal(t, 3.0, result.MaxScore)
	assert.InDelta(t, 66.67, result.Percentage, 0.01)
	require.NotNil(t, result.Passed)
	assert.True(t, *result.Passed)

	var stored models.QuizAttempt
	require.NoError(t, db.First(&stored, attempt.ID).Error)
	assert.NotNil(t, stored.SubmittedAt)
	assert.Equal(t, 2.0, *stored.Score)

	var answers []models.Answer
	require.NoError(t, db.Where("attempt_id = ?", attempt.ID).Find(&answers).Error)
	assert.Len(t, answers, 2)
}

func TestSubmitAttemptNoPassingScoreMeansNoOutcome(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	quiz := createQuiz(t, db, course.ID, teacher.ID, 1, nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")

	attempt, err := svc.StartAttempt(quiz.ID, student.ID)
	require.NoError(t, err)

	result, err := svc.SubmitAttempt(quiz.ID, attempt.ID, student.ID, &SubmitQuizRequest{Answers: map[uint]string{}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Score)
	assert.Nil(t, result.Passed)
}

func TestSubmitAttemptRejectsDoubleSubmit(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	quiz := createQuiz(t, db, course.ID, teacher.ID, 1, nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")

	attempt, err := svc.StartAttempt(quiz.ID, student.ID)
	require.NoError(t, err)

	first, err := svc.SubmitAttempt(quiz.ID, attempt.ID, student.ID, &SubmitQuizRequest{
		Answers: map[uint]string{quiz.Questions[0].ID: "Paris"},
	})
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(quiz.ID, attempt.ID, student.ID, &SubmitQuizRequest{
		Answers: map[uint]string{
			quiz.Questions[0].ID: "Paris",
			quiz.Questions[1].ID: "true",
		},
	})
	assert.ErrorIs(t, err, ErrQuizAlreadySubmitted)

	// The stored score is still the first submission's
	var stored models.QuizAttempt
	require.NoError(t, db.First(&stored, attempt.ID).Error)
	assert.Equal(t, first.Score, *stored.Score)
}

func TestSubmitAttemptOwnershipAndIdentity(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	quiz := createQuiz(t, db, course.ID, teacher.ID, 1, nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")
	other := createStudent(t, db, "Bilal", "bilal@example.edu")

	attempt, err := svc.StartAttempt(quiz.ID, student.ID)
	require.NoError(t, err)

	_, err = svc.SubmitAttempt(quiz.ID, attempt.ID, other.ID, &SubmitQuizRequest{Answers: map[uint]string{}})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.SubmitAttempt(quiz.ID, 9999, student.ID, &SubmitQuizRequest{Answers: map[uint]string{}})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetQuizForStudentHidesAnswers(t *testing.T) {
	db := newTestDB(t)
	svc := NewQuizService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	quiz := createQuiz(t, db, course.ID, teacher.ID, 1, nil)

	view, err := svc.GetQuizForStudent(quiz.ID)
	require.NoError(t, err)

	require.Len(t, view.Questions, 2)
	for _, q := range view.Questions {
		assert.NotEmpty(t, q.Text)
	}
	// The embedded quiz must not leak the keyed questions
	assert.Nil(t, view.Quiz.Questions)
}
