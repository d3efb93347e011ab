package handlers

import (
	"net/http"

	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	announcementService *services.AnnouncementService
}

func NewAnnouncementHandler(announcementService *services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		announcementService: announcementService,
	}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	announcement, err := h.announcementService.Create(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) GetCourseAnnouncements(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	announcements, err := h.announcementService.GetCourseAnnouncements(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcements)
}

func (h *AnnouncementHandler) GetByID(c *gin.Context) {
	announcementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	announcement, err := h.announcementService.GetByID(announcementID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	announcementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateAnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	announcement, err := h.announcementService.Update(announcementID, userID, currentRole(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, announcement)
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	announcementID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.announcementService.Delete(announcementID, userID, currentRole(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Announcement deleted successfully"})
}
