package services

import (
	"testing"
	"time"

	"campuscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return d
}

func TestSummarizeAttendanceLateCountsAsAttended(t *testing.T) {
	records := []models.Attendance{
		{Status: models.AttendancePresent, Date: day("2026-01-05")},
		{Status: models.AttendancePresent, Date: day("2026-01-06")},
		{Status: models.AttendancePresent, Date: day("2026-01-07")},
		{Status: models.AttendanceAbsent, Date: day("2026-01-08")},
		{Status: models.AttendanceLate, Date: day("2026-01-09")},
	}

	summary := SummarizeAttendance(records)

	assert.Equal(t, 5, summary.TotalClasses)
	assert.Equal(t, 3, summary.Present)
	assert.Equal(t, 1, summary.Absent)
	assert.Equal(t, 1, summary.Late)
	assert.Equal(t, 80.00, summary.Percentage)
}

func TestSummarizeAttendanceEmpty(t *testing.T) {
	summary := SummarizeAttendance(nil)

	assert.Equal(t, 0, summary.TotalClasses)
	assert.Equal(t, 0.0, summary.Percentage)
}

func TestBuildSectionReportDistinctDates(t *testing.T) {
	section := models.Section{ID: 1, Name: "Section A"}
	students := []models.User{
		{ID: 10, FullName: "Amara"},
		{ID: 11, FullName: "Bilal"},
	}
	// Two distinct dates; Bilal has no record on the second
	records := []models.Attendance{
		{StudentID: 10, Status: models.AttendancePresent, Date: day("2026-02-02")},
		{StudentID: 11, Status: models.AttendanceLate, Date: day("2026-02-02")},
		{StudentID: 10, Status: models.AttendanceAbsent, Date: day("2026-02-03")},
	}

	report := BuildSectionReport(&section, students, records)

	assert.Equal(t, 2, report.OverallStats.TotalClasses)
	assert.Equal(t, 2, report.OverallStats.EnrolledCount)

	require.Len(t, report.Students, 2)
	amara, bilal := report.Students[0], report.Students[1]

	assert.Equal(t, 50.00, amara.Percentage)
	// Missing a held date still divides by the section's total classes
	assert.Equal(t, 50.00, bilal.Percentage)

	// (1 attended + 1 attended) / (2 students * 2 classes)
	assert.Equal(t, 50.00, report.OverallStats.AveragePercentage)
}

func TestBuildSectionReportNoRecords(t *testing.T) {
	section := models.Section{ID: 1, Name: "Section A"}
	students := []models.User{{ID: 10, FullName: "Amara"}}

	report := BuildSectionReport(&section, students, nil)

	assert.Equal(t, 0, report.OverallStats.TotalClasses)
	assert.Equal(t, 0.0, report.OverallStats.AveragePercentage)
	require.Len(t, report.Students, 1)
	assert.Equal(t, 0.0, report.Students[0].Percentage)
}

func TestMarkReplacesExistingDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", &teacher.ID)

	studentA := createStudent(t, db, "Amara", "amara@example.edu")
	studentB := createStudent(t, db, "Bilal", "bilal@example.edu")
	enroll(t, db, section.ID, studentA.ID)
	enroll(t, db, section.ID, studentB.ID)

	first := &MarkAttendanceRequest{
		Date: "2026-03-02",
		Records: []AttendanceMarkRecord{
			{StudentID: studentA.ID, Status: models.AttendancePresent},
			{StudentID: studentB.ID, Status: models.AttendanceAbsent},
		},
	}
	marked, err := svc.Mark(section.ID, teacher.ID, models.RoleTeacher, first)
	require.NoError(t, err)
	assert.Equal(t, 2, marked)

	// Re-marking the same date replaces everything, including records for
	// students omitted the second time around
	second := &MarkAttendanceRequest{
		Date: "2026-03-02",
		Records: []AttendanceMarkRecord{
			{StudentID: studentA.ID, Status: models.AttendanceLate},
		},
	}
	marked, err = svc.Mark(section.ID, teacher.ID, models.RoleTeacher, second)
	require.NoError(t, err)
	assert.Equal(t, 1, marked)

	var remaining []models.Attendance
	require.NoError(t, db.Where("section_id = ?", section.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, studentA.ID, remaining[0].StudentID)
	assert.Equal(t, models.AttendanceLate, remaining[0].Status)
}

func TestMarkRejectsUnownedSection(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	owner := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	other := createTeacher(t, db, "Prof. Diaz", "diaz@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", &owner.ID)

	req := &MarkAttendanceRequest{
		Date:    "2026-03-02",
		Records: []AttendanceMarkRecord{{StudentID: 1, Status: models.AttendancePresent}},
	}

	_, err := svc.Mark(section.ID, other.ID, models.RoleTeacher, req)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins bypass ownership
	_, err = svc.Mark(section.ID, other.ID, models.RoleAdmin, req)
	assert.NoError(t, err)
}

func TestMarkRejectsBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", &teacher.ID)

	req := &MarkAttendanceRequest{
		Date:    "02/03/2026",
		Records: []AttendanceMarkRecord{{StudentID: 1, Status: models.AttendancePresent}},
	}

	_, err := svc.Mark(section.ID, teacher.ID, models.RoleTeacher, req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestGetSectionReportEndToEnd(t *testing.T) {
	db := newTestDB(t)
	svc := NewAttendanceService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", &teacher.ID)

	studentA := createStudent(t, db, "Amara", "amara@example.edu")
	studentB := createStudent(t, db, "Bilal", "bilal@example.edu")
	enroll(t, db, section.ID, studentA.ID)
	enroll(t, db, section.ID, studentB.ID)

	for _, mark := range []*MarkAttendanceRequest{
		{Date: "2026-03-02", Records: []AttendanceMarkRecord{
			{StudentID: studentA.ID, Status: models.AttendancePresent},
			{StudentID: studentB.ID, Status: models.AttendanceAbsent},
		}},
		{Date: "2026-03-03", Records: []AttendanceMarkRecord{
			{StudentID: studentA.ID, Status: models.AttendanceLate},
			{StudentID: studentB.ID, Status: models.AttendancePresent},
		}},
	} {
		_, err := svc.Mark(section.ID, teacher.ID, models.RoleTeacher, mark)
		require.NoError(t, err)
	}

	report, err := svc.GetSectionReport(section.ID, teacher.ID, models.RoleTeacher, "", "")
	require.NoError(t, err)

	assert.Equal(t, 2, report.OverallStats.TotalClasses)
	assert.Equal(t, 2, report.OverallStats.EnrolledCount)
	// 3 attended out of 4 student-classes
	assert.Equal(t, 75.00, report.OverallStats.AveragePercentage)

	require.Len(t, report.Students, 2)
	byID := map[uint]SectionReportRow{}
	for _, row := range report.Students {
		byID[row.StudentID] = row
	}
	assert.Equal(t, 100.00, byID[studentA.ID].Percentage)
	assert.Equal(t, 50.00, byID[studentB.ID].Percentage)
}
