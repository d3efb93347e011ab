package handlers

import (
	"net/http"
	"strconv"

	"campuscore/models"
	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminService *services.AdminService
}

func NewAdminHandler(adminService *services.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminService.GetStats()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *AdminHandler) GetUsers(c *gin.Context) {
	role := models.Role(c.Query("role"))
	users, err := h.adminService.GetUsers(role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AdminHandler) CreateUser(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminService.CreateUser(adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.adminService.UpdateUser(adminID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(adminID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func (h *AdminHandler) ToggleUserActive(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.adminService.ToggleUserActive(adminID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AdminHandler) CreateDepartment(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dept, err := h.adminService.CreateDepartment(adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dept)
}

func (h *AdminHandler) GetDepartments(c *gin.Context) {
	depts, err := h.adminService.GetDepartments()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, depts)
}

func (h *AdminHandler) DeleteDepartment(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	deptID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteDepartment(adminID, deptID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted successfully"})
}

func (h *AdminHandler) CreateProgram(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateProgramRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	program, err := h.adminService.CreateProgram(adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, program)
}

func (h *AdminHandler) GetPrograms(c *gin.Context) {
	departmentID, _ := strconv.ParseUint(c.Query("department_id"), 10, 32)
	programs, err := h.adminService.GetPrograms(uint(departmentID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, programs)
}

func (h *AdminHandler) DeleteProgram(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	programID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteProgram(adminID, programID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Program deleted successfully"})
}

func (h *AdminHandler) GetBatches(c *gin.Context) {
	programID, _ := strconv.ParseUint(c.Query("program_id"), 10, 32)
	batches, err := h.adminService.GetBatches(uint(programID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batches)
}

func (h *AdminHandler) GetBatch(c *gin.Context) {
	batchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	batch, err := h.adminService.GetBatch(batchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *AdminHandler) CreateBatch(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.adminService.CreateBatch(adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *AdminHandler) UpdateBatch(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	batchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.UpdateBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	batch, err := h.adminService.UpdateBatch(adminID, batchID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *AdminHandler) ToggleBatchActive(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	batchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	batch, err := h.adminService.ToggleBatchActive(adminID, batchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *AdminHandler) DeleteBatch(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	batchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteBatch(adminID, batchID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Batch deleted successfully"})
}

func (h *AdminHandler) GetBatchStudents(c *gin.Context) {
	batchID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	students, err := h.adminService.GetBatchStudents(batchID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, students)
}

func (h *AdminHandler) CreateSemester(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateSemesterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	semester, err := h.adminService.CreateSemester(adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, semester)
}

func (h *AdminHandler) CreateSection(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	section, err := h.adminService.CreateSection(adminID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, section)
}

func (h *AdminHandler) AssignTeacher(c *gin.Context) {
	adminID, ok := currentUser(c)
	if !ok {
		return
	}
	sectionID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		TeacherID uint `json:"teacher_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.adminService.AssignTeacher(adminID, sectionID, req.TeacherID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": message})
}

func (h *AdminHandler) GetAuditLogs(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))
	logs, err := h.adminService.GetAuditLogs(limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}
