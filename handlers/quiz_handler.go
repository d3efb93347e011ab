package handlers

import (
	"net/http"

	"campuscore/models"
	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type QuizHandler struct {
	quizService *services.QuizService
}

func NewQuizHandler(quizService *services.QuizService) *QuizHandler {
	return &QuizHandler{
		quizService: quizService,
	}
}

func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	quiz, err := h.quizService.CreateQuiz(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) GetCourseQuizzes(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quizzes, err := h.quizService.GetCourseQuizzes(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

// GetQuizByID hides correct answers from students; teachers and admins see
// the full quiz.
func (h *QuizHandler) GetQuizByID(c *gin.Context) {
	if _, ok := currentUser(c); !ok {
		return
	}
	quizID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if currentRole(c) == models.RoleStudent {
		view, err := h.quizService.GetQuizForStudent(quizID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	quiz, err := h.quizService.GetQuizByID(quizID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) DeleteQuiz(c *gin.Context) {
	quizID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.quizService.DeleteQuiz(quizID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Quiz deleted successfully"})
}

func (h *QuizHandler) StartAttempt(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attempt, err := h.quizService.StartAttempt(quizID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

func (h *QuizHandler) SubmitAttempt(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	attemptID, ok := parseIDParam(c, "attemptId")
	if !ok {
		return
	}

	var req services.SubmitQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quizService.SubmitAttempt(quizID, attemptID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *QuizHandler) GetQuizAttempts(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	quizID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	attempts, err := h.quizService.GetQuizAttempts(quizID, userID, currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

func (h *QuizHandler) GetAttemptResults(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	attemptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	review, err := h.quizService.GetAttemptResults(attemptID, userID, currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, review)
}
