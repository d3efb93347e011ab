package services

import (
	"math"
	"strings"

	"campuscore/models"
)

// AttemptResult is what a student gets back immediately after submitting.
// Passed is nil when the quiz has no passing score configured; callers must
// not collapse that into false.
type AttemptResult struct {
	AttemptID  uint    `json:"attempt_id"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	Percentage float64 `json:"percentage"`
	Passed     *bool   `json:"passed"`
}

// GradeQuestions scores one set of submitted answers against a quiz's question
// key. Missing answers default to the empty string and score as incorrect.
// True/false answers match case-insensitively, MCQ answers match exactly.
// There is no partial credit: a question earns its full point value or zero.
func GradeQuestions(questions []models.Question, answers map[uint]string) (graded []models.Answer, score, maxScore float64) {
	graded = make([]models.Answer, 0, len(questions))

	for _, question := range questions {
		maxScore += question.Points

		answerText := answers[question.ID]

		isCorrect := false
		switch question.Type {
		case models.QuestionTrueFalse:
			isCorrect = strings.EqualFold(answerText, question.CorrectAnswer)
		case models.QuestionMCQ:
			isCorrect = answerText == question.CorrectAnswer
		}

		pointsEarned := 0.0
		if isCorrect {
			pointsEarned = question.Points
			score += pointsEarned
		}

		graded = append(graded, models.Answer{
			QuestionID:   question.ID,
			AnswerText:   answerText,
			IsCorrect:    isCorrect,
			PointsEarned: pointsEarned,
		})
	}

	return graded, score, maxScore
}

// Percentage returns score/maxScore as a percentage, 0 when maxScore is 0.
func Percentage(score, maxScore float64) float64 {
	if maxScore <= 0 {
		return 0
	}
	return score / maxScore * 100
}

// Passed reports the pass/fail outcome against an optional passing threshold.
// A quiz without a threshold has no outcome, so the result is nil.
func Passed(passingScore *float64, percentage float64) *bool {
	if passingScore == nil {
		return nil
	}
	passed := percentage >= *passingScore
	return &passed
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
