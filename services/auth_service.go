package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"campuscore/middleware"
	"campuscore/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const tokenLifetime = 24 * time.Hour

type AuthService struct {
	db            *gorm.DB
	redis         *redis.Client
	mailer        *EmailService
	jwtSecret     string
	resetTokenTTL time.Duration
	frontendURL   string
}

func NewAuthService(db *gorm.DB, redisClient *redis.Client, mailer *EmailService, jwtSecret string, resetTokenTTL time.Duration, frontendURL string) *AuthService {
	return &AuthService{
		db:            db,
		redis:         redisClient,
		mailer:        mailer,
		jwtSecret:     jwtSecret,
		resetTokenTTL: resetTokenTTL,
		frontendURL:   frontendURL,
	}
}

type RegisterRequest struct {
	Email    string      `json:"email" binding:"required,email"`
	FullName string      `json:"full_name" binding:"required"`
	Password string      `json:"password" binding:"required,min=8"`
	Role     models.Role `json:"role" binding:"omitempty,oneof=admin teacher student"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        models.User `json:"user"`
}

func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	role := req.Role
	if role == "" {
		role = models.RoleStudent
	}

	user := models.User{
		Email:          req.Email,
		FullName:       req.FullName,
		Role:           role,
		IsActive:       true,
		HashedPassword: hashed,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) Login(req *LoginRequest) (*LoginResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if !CheckPassword(req.Password, user.HashedPassword) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(&user)
	if err != nil {
		return nil, err
	}

	return &LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        user,
	}, nil
}

func (s *AuthService) GetProfile(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// RequestPasswordReset stores a one-time token in redis with a TTL and mails
// it to the user. An unknown email is not an error: the response never leaks
// whether an account exists.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	token, err := generateResetToken()
	if err != nil {
		return err
	}

	key := "pwreset:" + token
	if err := s.redis.Set(ctx, key, user.ID, s.resetTokenTTL).Err(); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, token)
	return s.mailer.SendPasswordReset(user.Email, user.FullName, link)
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword consumes a reset token and sets the new password. The token
// is deleted before the update so it can only ever be used once.
func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	key := "pwreset:" + req.Token

	userID, err := s.redis.GetDel(ctx, key).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrInvalidResetToken
		}
		return err
	}

	hashed, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	return s.db.Model(&models.User{}).
		Where("id = ?", uint(userID)).
		Update("hashed_password", hashed).Error
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	claims := middleware.Claims{
		UserID: user.ID,
		Role:   user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
