package services

import (
	"errors"
	"fmt"
	"time"

	"campuscore/models"

	"gorm.io/gorm"
)

type AttendanceService struct {
	db *gorm.DB
}

func NewAttendanceService(db *gorm.DB) *AttendanceService {
	return &AttendanceService{db: db}
}

type MarkAttendanceRequest struct {
	Date    string                 `json:"date" binding:"required"`
	Records []AttendanceMarkRecord `json:"records" binding:"required"`
}

type AttendanceMarkRecord struct {
	StudentID uint                    `json:"student_id" binding:"required"`
	Status    models.AttendanceStatus `json:"status" binding:"required,oneof=present absent late"`
}

// StudentAttendanceSummary is one student's attendance roll-up. Late marks
// count as fully attended.
type StudentAttendanceSummary struct {
	TotalClasses int     `json:"total_classes"`
	Present      int     `json:"present"`
	Absent       int     `json:"absent"`
	Late         int     `json:"late"`
	Percentage   float64 `json:"attendance_percentage"`
}

type SectionReportRow struct {
	StudentID   uint    `json:"student_id"`
	StudentName string  `json:"student_name"`
	Present     int     `json:"present"`
	Absent      int     `json:"absent"`
	Late        int     `json:"late"`
	Percentage  float64 `json:"attendance_percentage"`
}

type SectionReportStats struct {
	TotalClasses      int     `json:"total_classes"`
	EnrolledCount     int     `json:"enrolled_count"`
	AveragePercentage float64 `json:"average_percentage"`
}

type SectionReport struct {
	SectionID    uint               `json:"section_id"`
	SectionName  string             `json:"section_name"`
	Students     []SectionReportRow `json:"students"`
	OverallStats SectionReportStats `json:"overall_stats"`
}

// SummarizeAttendance rolls up one student's records. Percentage is
// (present+late)/total, 0 when there are no records.
func SummarizeAttendance(records []models.Attendance) StudentAttendanceSummary {
	summary := StudentAttendanceSummary{TotalClasses: len(records)}
	for _, r := range records {
		switch r.Status {
		case models.AttendancePresent:
			summary.Present++
		case models.AttendanceAbsent:
			summary.Absent++
		case models.AttendanceLate:
			summary.Late++
		}
	}
	if summary.TotalClasses > 0 {
		summary.Percentage = round2(float64(summary.Present+summary.Late) / float64(summary.TotalClasses) * 100)
	}
	return summary
}

// BuildSectionReport aggregates a section's records per enrolled student.
// total_classes is the number of distinct calendar dates in the record set,
// not the record count, and every student's percentage divides by it: a
// student with no record on a held date is still penalized for that date.
func BuildSectionReport(section *models.Section, students []models.User, records []models.Attendance) SectionReport {
	report := SectionReport{
		SectionID:   section.ID,
		SectionName: section.Name,
		Students:    []SectionReportRow{},
	}

	dates := make(map[string]struct{})
	for _, r := range records {
		dates[r.Date.Format("2006-01-02")] = struct{}{}
	}
	totalClasses := len(dates)

	byStudent := make(map[uint][]models.Attendance)
	for _, r := range records {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r)
	}

	totalAttended := 0
	for _, student := range students {
		row := SectionReportRow{
			StudentID:   student.ID,
			StudentName: student.FullName,
		}
		for _, r := range byStudent[student.ID] {
			switch r.Status {
			case models.AttendancePresent:
				row.Present++
			case models.AttendanceAbsent:
				row.Absent++
			case models.AttendanceLate:
				row.Late++
			}
		}
		attended := row.Present + row.Late
		totalAttended += attended
		if totalClasses > 0 {
			row.Percentage = round2(float64(attended) / float64(totalClasses) * 100)
		}
		report.Students = append(report.Students, row)
	}

	report.OverallStats = SectionReportStats{
		TotalClasses:  totalClasses,
		EnrolledCount: len(students),
	}
	if totalClasses > 0 && len(students) > 0 {
		report.OverallStats.AveragePercentage = round2(float64(totalAttended) / float64(len(students)*totalClasses) * 100)
	}
	return report
}

// Mark records attendance for a section on one date. Marking is a full
// replace per date: prior records for that exact date are discarded before
// the new set is inserted, all inside one transaction.
func (s *AttendanceService) Mark(sectionID, userID uint, role models.Role, req *MarkAttendanceRequest) (int, error) {
	section, err := s.getOwnedSection(sectionID, userID, role)
	if err != nil {
		return 0, err
	}

	date, err := parseAttendanceDate(req.Date)
	if err != nil {
		return 0, err
	}

	now := time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ? AND date = ?", section.ID, date).
			Delete(&models.Attendance{}).Error; err != nil {
			return err
		}

		for _, record := range req.Records {
			attendance := models.Attendance{
				SectionID: section.ID,
				StudentID: record.StudentID,
				Date:      date,
				Status:    record.Status,
				MarkedBy:  userID,
				MarkedAt:  now,
			}
			if err := tx.Create(&attendance).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return len(req.Records), nil
}

type AttendanceRecordView struct {
	ID          uint                    `json:"id"`
	StudentID   uint                    `json:"student_id"`
	StudentName string                  `json:"student_name"`
	Date        string                  `json:"date"`
	Status      models.AttendanceStatus `json:"status"`
	MarkedBy    uint                    `json:"marked_by"`
}

// GetSectionRecords lists a section's records, optionally filtered by date.
func (s *AttendanceService) GetSectionRecords(sectionID, teacherID uint, role models.Role, dateFilter string) ([]AttendanceRecordView, error) {
	section, err := s.getOwnedSection(sectionID, teacherID, role)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("section_id = ?", section.ID)
	if dateFilter != "" {
		date, err := parseAttendanceDate(dateFilter)
		if err != nil {
			return nil, err
		}
		query = query.Where("date = ?", date)
	}

	var records []models.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	students, err := s.studentsByID(records)
	if err != nil {
		return nil, err
	}

	views := make([]AttendanceRecordView, 0, len(records))
	for _, r := range records {
		name := "Unknown"
		if student, ok := students[r.StudentID]; ok {
			name = student.FullName
		}
		views = append(views, AttendanceRecordView{
			ID:          r.ID,
			StudentID:   r.StudentID,
			StudentName: name,
			Date:        r.Date.Format("2006-01-02"),
			Status:      r.Status,
			MarkedBy:    r.MarkedBy,
		})
	}
	return views, nil
}

// GetStudentSummary rolls up one student's attendance, optionally scoped to a
// section. Students can only view their own summary.
func (s *AttendanceService) GetStudentSummary(studentID, requesterID uint, role models.Role, sectionID uint) (*StudentAttendanceSummary, error) {
	if role == models.RoleStudent && requesterID != studentID {
		return nil, ErrForbidden
	}

	query := s.db.Where("student_id = ?", studentID)
	if sectionID != 0 {
		query = query.Where("section_id = ?", sectionID)
	}

	var records []models.Attendance
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	summary := SummarizeAttendance(records)
	return &summary, nil
}

// GetSectionReport builds the per-section attendance report over an optional
// date range.
func (s *AttendanceService) GetSectionReport(sectionID, teacherID uint, role models.Role, from, to string) (*SectionReport, error) {
	section, err := s.getOwnedSection(sectionID, teacherID, role)
	if err != nil {
		return nil, err
	}

	query := s.db.Where("section_id = ?", section.ID)
	if from != "" {
		fromDate, err := parseAttendanceDate(from)
		if err != nil {
			return nil, err
		}
		query = query.Where("date >= ?", fromDate)
	}
	if to != "" {
		toDate, err := parseAttendanceDate(to)
		if err != nil {
			return nil, err
		}
		query = query.Where("date <= ?", toDate)
	}

	var records []models.Attendance
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}

	var enrollments []models.Enrollment
	if err := s.db.Where("section_id = ?", section.ID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	studentIDs := make([]uint, 0, len(enrollments))
	for _, e := range enrollments {
		studentIDs = append(studentIDs, e.StudentID)
	}

	var students []models.User
	if len(studentIDs) > 0 {
		if err := s.db.Where("id IN ?", studentIDs).Order("full_name").Find(&students).Error; err != nil {
			return nil, err
		}
	}

	report := BuildSectionReport(section, students, records)
	return &report, nil
}

type EnrolledSectionView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	CourseTitle string `json:"course_title"`
	CourseCode  string `json:"course_code"`
}

// GetStudentEnrollments lists the sections a student is enrolled in.
func (s *AttendanceService) GetStudentEnrollments(studentID uint) ([]EnrolledSectionView, error) {
	var enrollments []models.Enrollment
	if err := s.db.Where("student_id = ?", studentID).Find(&enrollments).Error; err != nil {
		return nil, err
	}

	views := make([]EnrolledSectionView, 0, len(enrollments))
	for _, e := range enrollments {
		var section models.Section
		if err := s.db.First(&section, e.SectionID).Error; err != nil {
			continue
		}
		var course models.Course
		if err := s.db.First(&course, section.CourseID).Error; err != nil {
			continue
		}
		views = append(views, EnrolledSectionView{
			ID:          section.ID,
			Name:        section.Name,
			CourseTitle: course.Title,
			CourseCode:  course.Code,
		})
	}
	return views, nil
}

type StudentRecordView struct {
	ID          uint                    `json:"id"`
	Date        string                  `json:"date"`
	Status      models.AttendanceStatus `json:"status"`
	SectionName string                  `json:"section_name"`
	CourseTitle string                  `json:"course_title"`
	CourseCode  string                  `json:"course_code"`
}

// GetStudentRecords lists a student's own attendance records, newest first.
func (s *AttendanceService) GetStudentRecords(studentID uint, sectionID uint) ([]StudentRecordView, error) {
	query := s.db.Where("student_id = ?", studentID)
	if sectionID != 0 {
		query = query.Where("section_id = ?", sectionID)
	}

	var records []models.Attendance
	if err := query.Order("date DESC").Find(&records).Error; err != nil {
		return nil, err
	}

	views := make([]StudentRecordView, 0, len(records))
	for _, r := range records {
		view := StudentRecordView{
			ID:          r.ID,
			Date:        r.Date.Format("2006-01-02"),
			Status:      r.Status,
			SectionName: "Unknown",
			CourseTitle: "Unknown",
			CourseCode:  "Unknown",
		}
		var section models.Section
		if err := s.db.First(&section, r.SectionID).Error; err == nil {
			view.SectionName = section.Name
			var course models.Course
			if err := s.db.First(&course, section.CourseID).Error; err == nil {
				view.CourseTitle = course.Title
				view.CourseCode = course.Code
			}
		}
		views = append(views, view)
	}
	return views, nil
}

func (s *AttendanceService) getOwnedSection(sectionID, teacherID uint, role models.Role) (*models.Section, error) {
	var section models.Section
	if err := s.db.First(&section, sectionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if role != models.RoleAdmin {
		if section.TeacherID == nil || *section.TeacherID != teacherID {
			return nil, fmt.Errorf("%w: not your section", ErrForbidden)
		}
	}
	return &section, nil
}

func (s *AttendanceService) studentsByID(records []models.Attendance) (map[uint]models.User, error) {
	ids := make([]uint, 0, len(records))
	seen := make(map[uint]struct{})
	for _, r := range records {
		if _, ok := seen[r.StudentID]; !ok {
			seen[r.StudentID] = struct{}{}
			ids = append(ids, r.StudentID)
		}
	}

	students := make(map[uint]models.User, len(ids))
	if len(ids) == 0 {
		return students, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		students[u.ID] = u
	}
	return students, nil
}

// parseAttendanceDate normalizes any accepted timestamp to a UTC calendar
// date so records for the same day always collide.
func parseAttendanceDate(value string) (time.Time, error) {
	t, err := parseDateTime(value)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}
