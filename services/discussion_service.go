package services

import (
	"errors"
	"fmt"

	"campuscore/models"

	"gorm.io/gorm"
)

type DiscussionService struct {
	db           *gorm.DB
	notification *NotificationService
}

func NewDiscussionService(db *gorm.DB, notification *NotificationService) *DiscussionService {
	return &DiscussionService{db: db, notification: notification}
}

type CreateThreadRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
}

func (s *DiscussionService) CreateThread(userID uint, req *CreateThreadRequest) (*models.DiscussionThread, error) {
	thread := models.DiscussionThread{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Content:   req.Content,
		CreatedBy: userID,
	}
	if err := s.db.Create(&thread).Error; err != nil {
		return nil, err
	}
	return &thread, nil
}

type ThreadListItem struct {
	models.DiscussionThread
	CreatorName  string `json:"creator_name"`
	RepliesCount int64  `json:"replies_count"`
}

func (s *DiscussionService) GetCourseThreads(courseID uint) ([]ThreadListItem, error) {
	var threads []models.DiscussionThread
	err := s.db.Where("course_id = ?", courseID).
		Order("is_pinned DESC, created_at DESC").
		Find(&threads).Error
	if err != nil {
		return nil, err
	}

	items := make([]ThreadListItem, 0, len(threads))
	for _, thread := range threads {
		var repliesCount int64
		s.db.Model(&models.ThreadReply{}).Where("thread_id = ?", thread.ID).Count(&repliesCount)

		items = append(items, ThreadListItem{
			DiscussionThread: thread,
			CreatorName:      s.userName(thread.CreatedBy),
			RepliesCount:     repliesCount,
		})
	}
	return items, nil
}

type ReplyView struct {
	models.ThreadReply
	CreatorName string `json:"creator_name"`
}

type ThreadView struct {
	models.DiscussionThread
	CreatorName string      `json:"creator_name"`
	Replies     []ReplyView `json:"replies"`
}

func (s *DiscussionService) GetThread(threadID uint) (*ThreadView, error) {
	thread, err := s.getThread(threadID)
	if err != nil {
		return nil, err
	}

	var replies []models.ThreadReply
	if err := s.db.Where("thread_id = ?", threadID).Order("created_at ASC").Find(&replies).Error; err != nil {
		return nil, err
	}

	view := ThreadView{
		DiscussionThread: *thread,
		CreatorName:      s.userName(thread.CreatedBy),
		Replies:          []ReplyView{},
	}
	for _, reply := range replies {
		view.Replies = append(view.Replies, ReplyView{
			ThreadReply: reply,
			CreatorName: s.userName(reply.CreatedBy),
		})
	}
	return &view, nil
}

func (s *DiscussionService) DeleteThread(threadID, userID uint, role models.Role) error {
	thread, err := s.getThread(threadID)
	if err != nil {
		return err
	}

	if role != models.RoleAdmin && thread.CreatedBy != userID {
		return ErrForbidden
	}

	return s.db.Delete(thread).Error
}

type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

func (s *DiscussionService) CreateReply(threadID, userID uint, req *CreateReplyRequest) (*models.ThreadReply, error) {
	thread, err := s.getThread(threadID)
	if err != nil {
		return nil, err
	}

	reply := models.ThreadReply{
		ThreadID:  threadID,
		Content:   req.Content,
		CreatedBy: userID,
	}
	if err := s.db.Create(&reply).Error; err != nil {
		return nil, err
	}

	// Replying to your own thread shouldn't ping you
	if thread.CreatedBy != userID && s.notification != nil {
		title := fmt.Sprintf("New reply in %q", thread.Title)
		s.notification.Notify(thread.CreatedBy, models.NotificationDiscussion, title, req.Content, nil)
	}
	return &reply, nil
}

func (s *DiscussionService) UpvoteReply(replyID uint) (int, error) {
	var reply models.ThreadReply
	if err := s.db.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}

	reply.Upvotes++
	if err := s.db.Save(&reply).Error; err != nil {
		return 0, err
	}
	return reply.Upvotes, nil
}

func (s *DiscussionService) DeleteReply(replyID, userID uint, role models.Role) error {
	var reply models.ThreadReply
	if err := s.db.First(&reply, replyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if role != models.RoleAdmin && reply.CreatedBy != userID {
		return ErrForbidden
	}

	return s.db.Delete(&reply).Error
}

func (s *DiscussionService) getThread(threadID uint) (*models.DiscussionThread, error) {
	var thread models.DiscussionThread
	if err := s.db.First(&thread, threadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &thread, nil
}

func (s *DiscussionService) userName(userID uint) string {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return "Unknown"
	}
	return user.FullName
}
