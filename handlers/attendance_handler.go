package handlers

import (
	"net/http"
	"strconv"

	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	attendanceService *services.AttendanceService
}

func NewAttendanceHandler(attendanceService *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

func (h *AttendanceHandler) MarkAttendance(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.MarkAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	marked, err := h.attendanceService.Mark(sectionID, userID, currentRole(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Attendance marked", "records": marked})
}

func (h *AttendanceHandler) GetSectionRecords(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	records, err := h.attendanceService.GetSectionRecords(sectionID, userID, currentRole(c), c.Query("date"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

func (h *AttendanceHandler) GetStudentSummary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	studentID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	sectionID, _ := strconv.ParseUint(c.Query("section_id"), 10, 32)

	summary, err := h.attendanceService.GetStudentSummary(studentID, userID, currentRole(c), uint(sectionID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *AttendanceHandler) GetSectionReport(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	report, err := h.attendanceService.GetSectionReport(sectionID, userID, currentRole(c), c.Query("from"), c.Query("to"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *AttendanceHandler) GetMyEnrollments(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	enrollments, err := h.attendanceService.GetStudentEnrollments(userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, enrollments)
}

func (h *AttendanceHandler) GetMyRecords(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, _ := strconv.ParseUint(c.Query("section_id"), 10, 32)

	records, err := h.attendanceService.GetStudentRecords(userID, uint(sectionID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
