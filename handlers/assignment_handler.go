package handlers

import (
	"net/http"

	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentService *services.AssignmentService
}

func NewAssignmentHandler(assignmentService *services.AssignmentService) *AssignmentHandler {
	return &AssignmentHandler{
		assignmentService: assignmentService,
	}
}

func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.assignmentService.CreateAssignment(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, assignment)
}

func (h *AssignmentHandler) GetCourseAssignments(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignments, err := h.assignmentService.GetCourseAssignments(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignments)
}

func (h *AssignmentHandler) GetAssignmentByID(c *gin.Context) {
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	assignment, err := h.assignmentService.GetAssignmentByID(assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, assignment)
}

// Submit accepts multipart form data: a text "content" field and an optional
// "file" attachment.
func (h *AssignmentHandler) Submit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	content := c.PostForm("content")
	file, err := c.FormFile("file")
	if err != nil {
		file = nil
	}
	if content == "" && file == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Submission needs content or a file"})
		return
	}

	submission, err := h.assignmentService.Submit(assignmentID, userID, content, file)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, submission)
}

func (h *AssignmentHandler) GetSubmissions(c *gin.Context) {
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submissions, err := h.assignmentService.GetSubmissions(assignmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *AssignmentHandler) GradeSubmission(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	submissionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.GradeSubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submission, err := h.assignmentService.GradeSubmission(submissionID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}

func (h *AssignmentHandler) GetMySubmissions(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	submissions, err := h.assignmentService.GetStudentSubmissions(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submissions)
}

func (h *AssignmentHandler) GetMySubmission(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	assignmentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	submission, err := h.assignmentService.GetStudentSubmission(assignmentID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, submission)
}
