package services

import (
	"testing"

	"campuscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecreateCourseAfterDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	first, err := svc.CreateCourse(1, models.RoleAdmin, &CreateCourseRequest{
		Code:  "CS101",
		Title: "Intro to CS",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(first.ID, 1, models.RoleAdmin))

	// The deleted course must not reserve its code.
	second, err := svc.CreateCourse(1, models.RoleAdmin, &CreateCourseRequest{
		Code:  "CS101",
		Title: "Intro to CS, revised",
	})
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	_, err = svc.GetCourseByID(first.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteCourseOwnership(t *testing.T) {
	db := newTestDB(t)
	svc := NewCourseService(db)

	owner := createTeacher(t, db, "Prof. Osei", "osei@example.edu")
	other := createTeacher(t, db, "Prof. Lund", "lund@example.edu")

	course, err := svc.CreateCourse(owner.ID, models.RoleTeacher, &CreateCourseRequest{
		Code:  "CS201",
		Title: "Data Structures",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteCourse(course.ID, other.ID, models.RoleTeacher), ErrForbidden)
	assert.NoError(t, svc.DeleteCourse(course.ID, owner.ID, models.RoleTeacher))
}
