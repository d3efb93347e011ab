package services

import (
	"errors"

	"campuscore/models"

	"gorm.io/gorm"
)

type AnnouncementService struct {
	db           *gorm.DB
	notification *NotificationService
	mailer       *EmailService
}

func NewAnnouncementService(db *gorm.DB, notification *NotificationService, mailer *EmailService) *AnnouncementService {
	return &AnnouncementService{
		db:           db,
		notification: notification,
		mailer:       mailer,
	}
}

type CreateAnnouncementRequest struct {
	CourseID uint   `json:"course_id" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	IsPinned bool   `json:"is_pinned"`
}

// Create posts an announcement and fans out notifications plus email to every
// student enrolled in the course. Delivery is best-effort: the announcement
// row is the source of truth.
func (s *AnnouncementService) Create(userID uint, req *CreateAnnouncementRequest) (*models.Announcement, error) {
	var course models.Course
	if err := s.db.First(&course, req.CourseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	announcement := models.Announcement{
		CourseID:  req.CourseID,
		Title:     req.Title,
		Content:   req.Content,
		IsPinned:  req.IsPinned,
		CreatedBy: userID,
	}
	if err := s.db.Create(&announcement).Error; err != nil {
		return nil, err
	}

	go s.fanOut(&course, &announcement)

	return &announcement, nil
}

func (s *AnnouncementService) fanOut(course *models.Course, announcement *models.Announcement) {
	var enrollments []models.Enrollment
	if err := s.db.
		Joins("JOIN sections ON sections.id = enrollments.section_id").
		Where("sections.course_id = ?", course.ID).
		Find(&enrollments).Error; err != nil {
		return
	}

	seen := make(map[uint]struct{}, len(enrollments))
	link := "/courses/" + course.Code + "/announcements"
	for _, e := range enrollments {
		if _, ok := seen[e.StudentID]; ok {
			continue
		}
		seen[e.StudentID] = struct{}{}

		s.notification.Notify(e.StudentID, models.NotificationAnnouncement, announcement.Title, announcement.Content, &link)

		var student models.User
		if err := s.db.First(&student, e.StudentID).Error; err == nil {
			s.mailer.SendAnnouncement(student.Email, student.FullName, course.Title, announcement.Title, announcement.Content)
		}
	}
}

type AnnouncementView struct {
	models.Announcement
	CreatorName string `json:"creator_name"`
}

func (s *AnnouncementService) GetCourseAnnouncements(courseID uint) ([]AnnouncementView, error) {
	var announcements []models.Announcement
	err := s.db.Where("course_id = ?", courseID).
		Order("is_pinned DESC, created_at DESC").
		Find(&announcements).Error
	if err != nil {
		return nil, err
	}

	views := make([]AnnouncementView, 0, len(announcements))
	for _, ann := range announcements {
		views = append(views, AnnouncementView{
			Announcement: ann,
			CreatorName:  s.creatorName(ann.CreatedBy),
		})
	}
	return views, nil
}

func (s *AnnouncementService) GetByID(announcementID uint) (*AnnouncementView, error) {
	announcement, err := s.getRecord(announcementID)
	if err != nil {
		return nil, err
	}
	return &AnnouncementView{
		Announcement: *announcement,
		CreatorName:  s.creatorName(announcement.CreatedBy),
	}, nil
}

func (s *AnnouncementService) Update(announcementID, userID uint, role models.Role, req *CreateAnnouncementRequest) (*models.Announcement, error) {
	announcement, err := s.getRecord(announcementID)
	if err != nil {
		return nil, err
	}

	if role != models.RoleAdmin && announcement.CreatedBy != userID {
		return nil, ErrForbidden
	}

	announcement.CourseID = req.CourseID
	announcement.Title = req.Title
	announcement.Content = req.Content
	announcement.IsPinned = req.IsPinned

	if err := s.db.Save(announcement).Error; err != nil {
		return nil, err
	}
	return announcement, nil
}

func (s *AnnouncementService) Delete(announcementID, userID uint, role models.Role) error {
	announcement, err := s.getRecord(announcementID)
	if err != nil {
		return err
	}

	if role != models.RoleAdmin && announcement.CreatedBy != userID {
		return ErrForbidden
	}

	return s.db.Delete(announcement).Error
}

func (s *AnnouncementService) getRecord(announcementID uint) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := s.db.First(&announcement, announcementID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &announcement, nil
}

func (s *AnnouncementService) creatorName(userID uint) string {
	var creator models.User
	if err := s.db.First(&creator, userID).Error; err != nil {
		return "Unknown"
	}
	return creator.FullName
}
