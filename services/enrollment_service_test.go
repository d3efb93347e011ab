package services

import (
	"testing"

	"campuscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrollByCourseUsesDefaultSection(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db, "Section A")

	course := createCourse(t, db, "CS101", "Intro to CS")
	defaultSection := createSection(t, db, course.ID, "Section A", nil)
	createSection(t, db, course.ID, "Section B", nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")

	enrollment, err := svc.Enroll(&EnrollRequest{StudentID: student.ID, CourseID: &course.ID})
	require.NoError(t, err)

	assert.Equal(t, defaultSection.ID, enrollment.SectionID)
	assert.Equal(t, student.ID, enrollment.StudentID)
}

func TestEnrollRejectsDuplicateAndNonStudents(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db, "Section A")

	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")
	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")

	_, err := svc.Enroll(&EnrollRequest{StudentID: student.ID, SectionID: &section.ID})
	require.NoError(t, err)

	_, err = svc.Enroll(&EnrollRequest{StudentID: student.ID, SectionID: &section.ID})
	assert.Error(t, err)

	_, err = svc.Enroll(&EnrollRequest{StudentID: teacher.ID, SectionID: &section.ID})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReenrollAfterUnenroll(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db, "Section A")

	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")

	_, err := svc.Enroll(&EnrollRequest{StudentID: student.ID, SectionID: &section.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Unenroll(section.ID, student.ID))

	enrollment, err := svc.Enroll(&EnrollRequest{StudentID: student.ID, SectionID: &section.ID})
	require.NoError(t, err)
	assert.Equal(t, student.ID, enrollment.StudentID)

	assert.ErrorIs(t, svc.Unenroll(section.ID, 9999), ErrNotFound)
}

func TestEnrollRespectsCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db, "Section A")

	course := createCourse(t, db, "CS101", "Intro to CS")
	section := models.Section{CourseID: course.ID, Name: "Tiny", Capacity: 1}
	require.NoError(t, db.Create(&section).Error)

	first := createStudent(t, db, "Amara", "amara@example.edu")
	second := createStudent(t, db, "Bilal", "bilal@example.edu")

	_, err := svc.Enroll(&EnrollRequest{StudentID: first.ID, SectionID: &section.ID})
	require.NoError(t, err)

	_, err = svc.Enroll(&EnrollRequest{StudentID: second.ID, SectionID: &section.ID})
	assert.Error(t, err)
}

func TestSetFinalGradeIsOpaque(t *testing.T) {
	db := newTestDB(t)
	svc := NewEnrollmentService(db, "Section A")

	course := createCourse(t, db, "CS101", "Intro to CS")
	section := createSection(t, db, course.ID, "Section A", nil)
	student := createStudent(t, db, "Amara", "amara@example.edu")
	enroll(t, db, section.ID, student.ID)

	enrollment, err := svc.SetFinalGrade(section.ID, student.ID, "A-")
	require.NoError(t, err)
	require.NotNil(t, enrollment.FinalGrade)
	assert.Equal(t, "A-", *enrollment.FinalGrade)

	_, err = svc.SetFinalGrade(section.ID, 9999, "B")
	assert.ErrorIs(t, err, ErrNotFound)
}
