package handlers

import (
	"net/http"

	"campuscore/services"

	"github.com/gin-gonic/gin"
)

type DiscussionHandler struct {
	discussionService *services.DiscussionService
}

func NewDiscussionHandler(discussionService *services.DiscussionService) *DiscussionHandler {
	return &DiscussionHandler{
		discussionService: discussionService,
	}
}

func (h *DiscussionHandler) CreateThread(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req services.CreateThreadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	thread, err := h.discussionService.CreateThread(userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, thread)
}

func (h *DiscussionHandler) GetCourseThreads(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	threads, err := h.discussionService.GetCourseThreads(courseID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, threads)
}

func (h *DiscussionHandler) GetThread(c *gin.Context) {
	threadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	thread, err := h.discussionService.GetThread(threadID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, thread)
}

func (h *DiscussionHandler) DeleteThread(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	threadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.discussionService.DeleteThread(threadID, userID, currentRole(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Thread deleted successfully"})
}

func (h *DiscussionHandler) CreateReply(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	threadID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req services.CreateReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	reply, err := h.discussionService.CreateReply(threadID, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, reply)
}

func (h *DiscussionHandler) UpvoteReply(c *gin.Context) {
	replyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	upvotes, err := h.discussionService.UpvoteReply(replyID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upvotes": upvotes})
}

func (h *DiscussionHandler) DeleteReply(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	replyID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.discussionService.DeleteReply(replyID, userID, currentRole(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Reply deleted successfully"})
}
