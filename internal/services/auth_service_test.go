// internal/services/auth_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
)

type AuthServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *AuthService
}

func (s *AuthServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewAuthService(s.db, testJWTManager())
}

func (s *AuthServiceTestSuite) register(email string) *AuthResponse {
	resp, err := s.service.Register(&RegisterRequest{
		BusinessName: "Acme Goods",
		Email:        email,
		Password:     "Password123",
		FirstName:    "Ada",
		LastName:     "Admin",
	})
	s.Require().NoError(err)
	return resp
}

func (s *AuthServiceTestSuite) TestRegisterCreatesBusinessAndAdmin() {
	resp := s.register("ada@acme.test")

	s.Equal(models.RoleAdmin, resp.User.Role)
	s.NotEmpty(resp.AccessToken)
	s.NotEmpty(resp.RefreshToken)

	var business models.Business
	s.Require().NoError(s.db.First(&business, "id = ?", resp.User.BusinessID).Error)
	s.Equal("Acme Goods", business.Name)
	s.Require().NotNil(business.OwnerID)
	s.Equal(resp.User.ID, *business.OwnerID)
}

func (s *AuthServiceTestSuite) TestRegisterDuplicateEmail() {
	s.register("ada@acme.test")

	_, err := s.service.Register(&RegisterRequest{
		BusinessName: "Other Biz",
		Email:        "Ada@Acme.test",
		Password:     "Password123",
		FirstName:    "Ada",
		LastName:     "Clone",
	})
	s.ErrorIs(err, ErrConflict)
}

func (s *AuthServiceTestSuite) TestLogin() {
	s.register("ada@acme.test")

	resp, err := s.service.Login(&LoginRequest{Email: "ada@acme.test", Password: "Password123"})
	s.Require().NoError(err)
	s.Equal("ada@acme.test", resp.User.Email)

	_, err = s.service.Login(&LoginRequest{Email: "ada@acme.test", Password: "wrong"})
	s.ErrorIs(err, ErrInvalidCredentials)

	_, err = s.service.Login(&LoginRequest{Email: "nobody@acme.test", Password: "Password123"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestLoginDisabledAccount() {
	resp := s.register("ada@acme.test")

	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Update("is_active", false).Error)

	_, err := s.service.Login(&LoginRequest{Email: "ada@acme.test", Password: "Password123"})
	s.ErrorIs(err, ErrAccountDisabled)
}

func (s *AuthServiceTestSuite) TestLoginExpiredTempPassword() {
	resp := s.register("ada@acme.test")

	expired := time.Now().Add(-time.Hour)
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Updates(map[string]interface{}{
		"password_change_required": true,
		"temp_password_expires_at": expired,
	}).Error)

	_, err := s.service.Login(&LoginRequest{Email: "ada@acme.test", Password: "Password123"})
	s.ErrorIs(err, ErrTempPasswordExpired)
}

func (s *AuthServiceTestSuite) TestRefreshToken() {
	resp := s.register("ada@acme.test")

	refreshed, err := s.service.RefreshToken(resp.RefreshToken)
	s.Require().NoError(err)
	s.Equal(resp.User.ID, refreshed.User.ID)

	// An access token must not work as a refresh token.
	_, err = s.service.RefreshToken(resp.AccessToken)
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestChangePassword() {
	resp := s.register("ada@acme.test")

	err := s.service.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "Password123",
		NewPassword:     "NewPassword456",
	})
	s.Require().NoError(err)

	_, err = s.service.Login(&LoginRequest{Email: "ada@acme.test", Password: "NewPassword456"})
	s.NoError(err)

	_, err = s.service.Login(&LoginRequest{Email: "ada@acme.test", Password: "Password123"})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestChangePasswordClearsForcedFlag() {
	resp := s.register("ada@acme.test")

	future := time.Now().Add(24 * time.Hour)
	s.Require().NoError(s.db.Model(&models.User{}).Where("id = ?", resp.User.ID).Updates(map[string]interface{}{
		"password_change_required": true,
		"temp_password_expires_at": future,
	}).Error)

	err := s.service.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "Password123",
		NewPassword:     "NewPassword456",
	})
	s.Require().NoError(err)

	var user models.User
	s.Require().NoError(s.db.First(&user, "id = ?", resp.User.ID).Error)
	s.False(user.PasswordChangeRequired)
	s.Nil(user.TempPasswordExpiresAt)
}

func (s *AuthServiceTestSuite) TestChangePasswordWrongCurrent() {
	resp := s.register("ada@acme.test")

	err := s.service.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "NewPassword456",
	})
	s.ErrorIs(err, ErrInvalidCredentials)
}

func (s *AuthServiceTestSuite) TestChangePasswordSameAsCurrent() {
	resp := s.register("ada@acme.test")

	err := s.service.ChangePassword(resp.User.ID, &ChangePasswordRequest{
		CurrentPassword: "Password123",
		NewPassword:     "Password123",
	})
	s.ErrorIs(err, ErrInvalidInput)
}

func TestAuthServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AuthServiceTestSuite))
}
