package handlers

import (
	"net/http"

	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type TeacherHandler struct {
	teacherService *services.TeacherService
}

func NewTeacherHandler(teacherService *services.TeacherService) *TeacherHandler {
	return &TeacherHandler{
		teacherService: teacherService,
	}
}

func (h *TeacherHandler) GetDashboard(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	dashboard, err := h.teacherService.GetDashboard(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}

func (h *TeacherHandler) GetSections(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	sections, err := h.teacherService.GetSections(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sections)
}

func (h *TeacherHandler) GetSection(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	section, err := h.teacherService.GetSection(sectionID, userID, currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, section)
}

func (h *TeacherHandler) GetSectionStudents(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	students, err := h.teacherService.GetSectionStudents(sectionID, userID, currentRole(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}
