package services

import (
	"testing"

	"campuscore/models"

	"github.com/stretchr/testify/assert"
)

func sampleQuestions() []models.Question {
	return []models.Question{
		{ID: 1, Type: models.QuestionMCQ, Points: 2, CorrectAnswer: "Paris"},
		{ID: 2, Type: models.QuestionTrueFalse, Points: 1, CorrectAnswer: "true"},
		{ID: 3, Type: models.QuestionMCQ, Points: 3, CorrectAnswer: "O(n log n)"},
	}
}

func TestGradeQuestionsAllCorrect(t *testing.T) {
	graded, score, maxScore := GradeQuestions(sampleQuestions(), map[uint]string{
		1: "Paris",
		2: "true",
		3: "O(n log n)",
	})

	assert.Equal(t, 6.0, score)
	assert.Equal(t, 6.0, maxScore)
	assert.Len(t, graded, 3)
	for _, answer := range graded {
		assert.True(t, answer.IsCorrect)
	}
}

func TestGradeQuestionsTrueFalseCaseInsensitive(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Type: models.QuestionTrueFalse, Points: 1, CorrectAnswer: "True"},
	}

	for _, submitted := range []string{"true", "TRUE", "tRuE"} {
		_, score, _ := GradeQuestions(questions, map[uint]string{1: submitted})
		assert.Equal(t, 1.0, score, "submitted %q should match", submitted)
	}
}

func TestGradeQuestionsMCQCaseSensitive(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Type: models.QuestionMCQ, Points: 2, CorrectAnswer: "Paris"},
	}

	_, score, maxScore := GradeQuestions(questions, map[uint]string{1: "paris"})
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 2.0, maxScore)
}

func TestGradeQuestionsMissingAnswerScoresZero(t *testing.T) {
	graded, score, maxScore := GradeQuestions(sampleQuestions(), map[uint]string{
		1: "Paris",
	})

	assert.Equal(t, 2.0, score)
	assert.Equal(t, 6.0, maxScore)

	// Unanswered questions still get an answer row, recorded as empty
	assert.Len(t, graded, 3)
	assert.Equal(t, "", graded[1].AnswerText)
	assert.False(t, graded[1].IsCorrect)
	assert.Equal(t, 0.0, graded[1].PointsEarned)
}

func TestGradeQuestionsNoPartialCredit(t *testing.T) {
	questions := []models.Question{
		{ID: 1, Type: models.QuestionMCQ, Points: 5, CorrectAnswer: "Pari"},
	}

	// A near-miss earns nothing
	graded, score, _ := GradeQuestions(questions, map[uint]string{1: "Paris"})
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0.0, graded[0].PointsEarned)
}

func TestGradeQuestionsMaxScoreIndependentOfAnswers(t *testing.T) {
	questions := sampleQuestions()

	_, _, maxEmpty := GradeQuestions(questions, map[uint]string{})
	_, _, maxFull := GradeQuestions(questions, map[uint]string{1: "Paris", 2: "true", 3: "O(n log n)"})
	_, _, maxJunk := GradeQuestions(questions, map[uint]string{1: "x", 2: "y", 3: "z", 99: "stray"})

	assert.Equal(t, 6.0, maxEmpty)
	assert.Equal(t, maxEmpty, maxFull)
	assert.Equal(t, maxEmpty, maxJunk)
}

func TestGradeQuestionsEmptyQuiz(t *testing.T) {
	graded, score, maxScore := GradeQuestions(nil, map[uint]string{1: "anything"})

	assert.Empty(t, graded)
	assert.Equal(t, 0.0, score)
	assert.Equal(t, 0.0, maxScore)
}

func TestPercentageZeroMaxScore(t *testing.T) {
	assert.Equal(t, 0.0, Percentage(0, 0))
	assert.Equal(t, 50.0, Percentage(3, 6))
}

func TestPassedNilWithoutThreshold(t *testing.T) {
	assert.Nil(t, Passed(nil, 100))

	threshold := 60.0
	passed := Passed(&threshold, 60)
	assert.NotNil(t, passed)
	assert.True(t, *passed)

	failed := Passed(&threshold, 59.99)
	assert.NotNil(t, failed)
	assert.False(t, *failed)
}
