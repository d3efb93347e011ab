package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"campuscore/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const unreadCountTTL = 5 * time.Minute

type NotificationService struct {
	db    *gorm.DB
	redis *redis.Client
	hub   *Hub
}

func NewNotificationService(db *gorm.DB, redisClient *redis.Client) *NotificationService {
	return &NotificationService{db: db, redis: redisClient}
}

// SetHub attaches the websocket hub after construction; the hub and the
// service reference each other at startup.
func (s *NotificationService) SetHub(hub *Hub) {
	s.hub = hub
}

// Notify persists a notification and pushes it to the user's live websocket
// connections, if any. Push failures are invisible here: the row is the
// source of truth, the socket is best-effort.
func (s *NotificationService) Notify(userID uint, notifType models.NotificationType, title, content string, link *string) (*models.Notification, error) {
	notification := models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Content: content,
		Link:    link,
	}
	if err := s.db.Create(&notification).Error; err != nil {
		return nil, err
	}

	s.invalidateUnreadCount(userID)

	if s.hub != nil {
		s.hub.SendToUser(userID, "notification", notification)
	}
	return &notification, nil
}

func (s *NotificationService) GetUserNotifications(userID uint, limit int, unreadOnly bool) ([]models.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	return notifications, err
}

// GetUnreadCount returns the user's unread notification count, served from a
// short-lived redis counter when warm.
func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uint) (int64, error) {
	key := unreadCountKey(userID)
	if cached, err := s.redis.Get(ctx, key).Result(); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			return count, nil
		}
	}

	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}

	s.redis.Set(ctx, key, count, unreadCountTTL)
	return count, nil
}

func (s *NotificationService) MarkRead(notificationID, userID uint) error {
	notification, err := s.getOwned(notificationID, userID)
	if err != nil {
		return err
	}

	if err := s.db.Model(notification).Update("is_read", true).Error; err != nil {
		return err
	}
	s.invalidateUnreadCount(userID)
	return nil
}

func (s *NotificationService) MarkAllRead(userID uint) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, res.Error
	}
	s.invalidateUnreadCount(userID)
	return res.RowsAffected, nil
}

func (s *NotificationService) Delete(notificationID, userID uint) error {
	notification, err := s.getOwned(notificationID, userID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(notification).Error; err != nil {
		return err
	}
	s.invalidateUnreadCount(userID)
	return nil
}

func (s *NotificationService) getOwned(notificationID, userID uint) (*models.Notification, error) {
	var notification models.Notification
	if err := s.db.First(&notification, notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, ErrForbidden
	}
	return &notification, nil
}

func (s *NotificationService) invalidateUnreadCount(userID uint) {
	s.redis.Del(context.Background(), unreadCountKey(userID))
}

func unreadCountKey(userID uint) string {
	return fmt.Sprintf("notif:unread:%d", userID)
}
