// internal/services/auth_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

type AuthService struct {
	db         *gorm.DB
	jwtManager *utils.JWTManager
}

func NewAuthService(db *gorm.DB, jwtManager *utils.JWTManager) *AuthService {
	return &AuthService{
		db:         db,
		jwtManager: jwtManager,
	}
}

type RegisterRequest struct {
	BusinessName        string `json:"business_name" binding:"required,min=2,max=255"`
	BusinessDescription string `json:"business_description" binding:"max=2000"`
	Email               string `json:"email" binding:"required,email"`
	Password            string `json:"password" binding:"required,strong_password"`
	FirstName           string `json:"first_name" binding:"required,max=100"`
	LastName            string `json:"last_name" binding:"required,max=100"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,strong_password"`
}

type AuthResponse struct {
	User         *models.User `json:"user"`
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
}

// Register creates a business together with its first user. The user
// becomes the business admin and owner; both rows commit atomically.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		business := models.Business{
			Name:           strings.TrimSpace(req.BusinessName),
			Description:    req.BusinessDescription,
			CanCreateUsers: true,
			CanAssignRoles: true,
		}
		if err := tx.Create(&business).Error; err != nil {
			return err
		}

		user = models.User{
			Email:      email,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Role:       models.RoleAdmin,
			BusinessID: business.ID,
			IsActive:   true,
		}
		if err := user.SetPassword(req.Password); err != nil {
			return err
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		return tx.Model(&business).Update("owner_id", user.ID).Error
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"business_id": user.BusinessID,
	}).Info("Business registered")

	return s.buildAuthResponse(&user)
}

// Login authenticates a user by email and password.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := s.db.Preload("Business").Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := user.CheckPassword(req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if user.PasswordChangeRequired && user.TempPasswordExpired(time.Now()) {
		return nil, ErrTempPasswordExpired
	}

	return s.buildAuthResponse(&user)
}

// RefreshToken exchanges a valid refresh token for a new token pair.
func (s *AuthService) RefreshToken(refreshToken string) (*AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.GetUserByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return s.buildAuthResponse(user)
}

// ChangePassword verifies the current password and sets a new one. A
// successful change clears the forced-change flag and the temp expiry.
func (s *AuthService) ChangePassword(userID uuid.UUID, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	if err := user.CheckPassword(req.CurrentPassword); err != nil {
		return ErrInvalidCredentials
	}

	if req.NewPassword == req.CurrentPassword {
		return ErrInvalidInput
	}

	if err := user.SetPassword(req.NewPassword); err != nil {
		return err
	}

	updates := map[string]interface{}{
		"password_hash":            user.PasswordHash,
		"password_change_required": false,
		"temp_password_expires_at": nil,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return err
	}

	logrus.WithField("user_id", user.ID).Info("Password changed")
	return nil
}

func (s *AuthService) GetUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.Preload("Business").First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *AuthService) buildAuthResponse(user *models.User) (*AuthResponse, error) {
	accessToken, refreshToken, err := s.jwtManager.GenerateTokenPair(user)
	if err != nil {
		return nil, err
	}

	return &AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
