package services

import (
	"fmt"
	"testing"

	"campuscore/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a per-test in-memory database. The shared cache keeps the
// database alive across gorm's pooled connections; naming it after the test
// keeps tests isolated from each other.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Course{},
		&models.Section{},
		&models.Enrollment{},
		&models.Quiz{},
		&models.Question{},
		&models.QuestionOption{},
		&models.QuizAttempt{},
		&models.Answer{},
		&models.Assignment{},
		&models.Submission{},
		&models.Attendance{},
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return db
}

func createStudent(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{
		Email:          email,
		FullName:       name,
		Role:           models.RoleStudent,
		IsActive:       true,
		HashedPassword: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createTeacher(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{
		Email:          email,
		FullName:       name,
		Role:           models.RoleTeacher,
		IsActive:       true,
		HashedPassword: "x",
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createCourse(t *testing.T, db *gorm.DB, code, title string) models.Course {
	t.Helper()
	course := models.Course{Code: code, Title: title, IsApproved: true, IsPublished: true}
	require.NoError(t, db.Create(&course).Error)
	return course
}

func createSection(t *testing.T, db *gorm.DB, courseID uint, name string, teacherID *uint) models.Section {
	t.Helper()
	section := models.Section{CourseID: courseID, Name: name, TeacherID: teacherID, Capacity: 40}
	require.NoError(t, db.Create(&section).Error)
	return section
}

func enroll(t *testing.T, db *gorm.DB, sectionID, studentID uint) {
	t.Helper()
	require.NoError(t, db.Create(&models.Enrollment{SectionID: sectionID, StudentID: studentID}).Error)
}
