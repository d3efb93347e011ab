package handlers

import (
	"net/http"

	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type RubricHandler struct {
	rubricService *services.RubricService
}

func NewRubricHandler(rubricService *services.RubricService) *RubricHandler {
	return &RubricHandler{
		rubricService: rubricService,
	}
}

func (h *RubricHandler) CreateRubric(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateRubricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rubric, err := h.rubricService.CreateRubric(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rubric)
}

func (h *RubricHandler) GetCourseRubrics(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rubrics, err := h.rubricService.GetCourseRubrics(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rubrics)
}

func (h *RubricHandler) GetRubricByID(c *gin.Context) {
	rubricID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	rubric, err := h.rubricService.GetRubricByID(rubricID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rubric)
}

func (h *RubricHandler) DeleteRubric(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	rubricID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.rubricService.DeleteRubric(rubricID, userID, currentRole(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rubric deleted successfully"})
}
