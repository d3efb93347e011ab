package services

import (
	"testing"

	"campuscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gradePtr(v float64) *float64 { return &v }

func TestBuildGradebookUngradedCountsAgainstStudent(t *testing.T) {
	course := models.Course{ID: 1, Title: "Intro to CS"}
	assignments := []models.Assignment{
		{ID: 1, CourseID: 1, Title: "Homework 1", MaxPoints: 50},
		{ID: 2, CourseID: 1, Title: "Homework 2", MaxPoints: 100},
	}
	students := []models.User{{ID: 10, FullName: "Amara", Email: "amara@example.edu"}}
	submissions := []models.Submission{
		{AssignmentID: 1, StudentID: 10, Grade: gradePtr(90)},
		// Homework 2 submitted but not graded yet
		{AssignmentID: 2, StudentID: 10},
	}

	view := BuildGradebook(&course, assignments, students, submissions)

	require.Len(t, view.Students, 1)
	row := view.Students[0]

	assert.Equal(t, 90.0, row.TotalPoints)
	// MaxPoints includes the ungraded assignment
	assert.Equal(t, 150.0, row.MaxPoints)
	assert.Equal(t, 60.00, row.Percentage)

	require.Contains(t, row.Grades, uint(1))
	require.Contains(t, row.Grades, uint(2))
	assert.Equal(t, 90.0, *row.Grades[1])
	assert.Nil(t, row.Grades[2])
}

func TestBuildGradebookNoAssignments(t *testing.T) {
	course := models.Course{ID: 1, Title: "Intro to CS"}
	students := []models.User{{ID: 10, FullName: "Amara"}}

	view := BuildGradebook(&course, nil, students, nil)

	require.Len(t, view.Students, 1)
	assert.Equal(t, 0.0, view.Students[0].MaxPoints)
	assert.Equal(t, 0.0, view.Students[0].Percentage)
}

func TestCourseGradebookDeduplicatesStudents(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradebookService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	sectionA := createSection(t, db, course.ID, "Section A", &teacher.ID)
	sectionB := createSection(t, db, course.ID, "Section B", &teacher.ID)

	student := createStudent(t, db, "Amara", "amara@example.edu")
	enroll(t, db, sectionA.ID, student.ID)
	enroll(t, db, sectionB.ID, student.ID)

	assignment := models.Assignment{CourseID: course.ID, Title: "Homework 1", MaxPoints: 50, CreatedBy: teacher.ID}
	require.NoError(t, db.Create(&assignment).Error)
	require.NoError(t, db.Create(&models.Submission{
		AssignmentID: assignment.ID,
		StudentID:    student.ID,
		Grade:        gradePtr(45),
	}).Error)

	view, err := svc.CourseGradebook(course.ID, teacher.ID, models.RoleTeacher)
	require.NoError(t, err)

	// One row despite two enrollments
	require.Len(t, view.Students, 1)
	assert.Equal(t, 45.0, view.Students[0].TotalPoints)
	assert.Equal(t, 90.00, view.Students[0].Percentage)
}

func TestCourseGradebookTeacherMustTeachCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradebookService(db)

	owner := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	outsider := createTeacher(t, db, "Prof. Diaz", "diaz@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	createSection(t, db, course.ID, "Section A", &owner.ID)

	_, err := svc.CourseGradebook(course.ID, outsider.ID, models.RoleTeacher)
	assert.ErrorIs(t, err, ErrForbidden)

	// Admins see every gradebook
	_, err = svc.CourseGradebook(course.ID, outsider.ID, models.RoleAdmin)
	assert.NoError(t, err)
}

func TestCourseGradebookUnknownCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradebookService(db)

	_, err := svc.CourseGradebook(9999, 1, models.RoleAdmin)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCourseGradebookEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	svc := NewGradebookService(db)

	teacher := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	course := createCourse(t, db, "CS101", "Intro to CS")
	createSection(t, db, course.ID, "Section A", &teacher.ID)

	view, err := svc.CourseGradebook(course.ID, teacher.ID, models.RoleTeacher)
	require.NoError(t, err)

	assert.Empty(t, view.Assignments)
	assert.Empty(t, view.Students)
}
