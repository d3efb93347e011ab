package services

import (
	"testing"
	"time"

	"campuscore/middleware"
	"campuscore/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newAuthService(t *testing.T) *AuthService {
	t.Helper()
	db := newTestDB(t)
	mailer := NewEmailService("", "noreply@example.edu", "Test")
	return NewAuthService(db, nil, mailer, testSecret, 30*time.Minute, "http://localhost")
}

func TestRegisterDefaultsToStudent(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{
		Email:    "amara@example.edu",
		FullName: "Amara",
		Password: "correct-horse",
	})
	require.NoError(t, err)

	assert.Equal(t, models.RoleStudent, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct-horse", user.HashedPassword)
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	req := &RegisterRequest{Email: "amara@example.edu", FullName: "Amara", Password: "correct-horse"}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginIssuesUsableToken(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{
		Email:    "amara@example.edu",
		FullName: "Amara",
		Password: "correct-horse",
		Role:     models.RoleTeacher,
	})
	require.NoError(t, err)

	resp, err := svc.Login(&LoginRequest{Email: "amara@example.edu", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", resp.TokenType)

	claims, err := middleware.ParseToken(resp.AccessToken, testSecret)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, models.RoleTeacher, claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(&RegisterRequest{Email: "amara@example.edu", FullName: "Amara", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(&LoginRequest{Email: "amara@example.edu", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(&LoginRequest{Email: "nobody@example.edu", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginRejectsInactiveUser(t *testing.T) {
	svc := newAuthService(t)

	user, err := svc.Register(&RegisterRequest{Email: "amara@example.edu", FullName: "Amara", Password: "correct-horse"})
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = svc.Login(&LoginRequest{Email: "amara@example.edu", Password: "correct-horse"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
