// internal/services/user_service.go
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

const tempPasswordTTL = 7 * 24 * time.Hour

// userSortFields are the only columns the user listing may sort by.
var userSortFields = []string{"email", "first_name", "last_name", "role", "created_at"}

type UserService struct {
	db       *gorm.DB
	authz    *AuthorizationService
	notifier *NotificationService
}

func NewUserService(db *gorm.DB, authz *AuthorizationService, notifier *NotificationService) *UserService {
	return &UserService{
		db:       db,
		authz:    authz,
		notifier: notifier,
	}
}

type InviteUserRequest struct {
	Email     string      `json:"email" binding:"required,email"`
	FirstName string      `json:"first_name" binding:"required,max=100"`
	LastName  string      `json:"last_name" binding:"required,max=100"`
	Role      models.Role `json:"role" binding:"required,oneof=admin editor approver viewer"`
}

type UpdateUserRequest struct {
	FirstName *string      `json:"first_name" binding:"omitempty,max=100"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=100"`
	Role      *models.Role `json:"role" binding:"omitempty,oneof=admin editor approver viewer"`
	IsActive  *bool        `json:"is_active"`
}

// Invite creates a user in the admin's business with a generated temporary
// password and emails it to them. The temporary password expires after
// seven days; the user must change it on first use.
func (s *UserService) Invite(actor Actor, req *InviteUserRequest) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	var business models.Business
	if err := s.db.First(&business, "id = ?", actor.BusinessID).Error; err != nil {
		return nil, err
	}
	if !business.CanCreateUsers {
		return nil, ErrForbidden
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	tempPassword, err := utils.GenerateTemporaryPassword(12)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(tempPasswordTTL)
	user := models.User{
		Email:                  email,
		FirstName:              req.FirstName,
		LastName:               req.LastName,
		Role:                   req.Role,
		BusinessID:             actor.BusinessID,
		IsActive:               true,
		PasswordChangeRequired: true,
		TempPasswordExpiresAt:  &expiresAt,
		InvitationSentAt:       &now,
	}
	if err := user.SetPassword(tempPassword); err != nil {
		return nil, err
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	// Email delivery is best effort; the account exists either way and the
	// admin can re-invite.
	if err := s.notifier.SendInvitationEmail(&user, business.Name, tempPassword); err != nil {
		logrus.WithError(err).WithField("user_id", user.ID).Warn("Failed to send invitation email")
	}

	logrus.WithFields(logrus.Fields{
		"user_id":     user.ID,
		"business_id": user.BusinessID,
		"invited_by":  actor.ID,
	}).Info("User invited")

	return &user, nil
}

// List returns users in the actor's business. Admins see everyone; other
// roles see only themselves.
func (s *UserService) List(actor Actor, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.User{}).Where("business_id = ?", actor.BusinessID)

	if actor.Role != models.RoleAdmin {
		query = query.Where("id = ?", actor.ID)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("email LIKE ? OR first_name LIKE ? OR last_name LIKE ?", search, search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var users []models.User
	err := utils.ApplySort(query, params, userSortFields).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginationResult(users, total, params)
	return &result, nil
}

// Get returns a user in the actor's business. Non-admins may only fetch
// themselves.
func (s *UserService) Get(actor Actor, id uuid.UUID) (*models.User, error) {
	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if !s.authz.InScope(actor, user.BusinessID) {
		return nil, ErrNotFound
	}

	if actor.Role != models.RoleAdmin && actor.ID != user.ID {
		return nil, ErrForbidden
	}

	return user, nil
}

// Update edits a user's profile, role or active flag. Only admins may
// update users, role changes additionally require the business's
// can_assign_roles flag, and an admin cannot deactivate themselves.
func (s *UserService) Update(actor Actor, id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	user, err := s.findUser(id)
	if err != nil {
		return nil, err
	}

	if !s.authz.InScope(actor, user.BusinessID) {
		return nil, ErrNotFound
	}

	updates := map[string]interface{}{}
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Role != nil && *req.Role != user.Role {
		var business models.Business
		if err := s.db.First(&business, "id = ?", actor.BusinessID).Error; err != nil {
			return nil, err
		}
		if !business.CanAssignRoles {
			return nil, ErrForbidden
		}
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		if actor.ID == user.ID && !*req.IsActive {
			return nil, ErrInvalidInput
		}
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(user).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.findUser(id)
}

// Delete removes a user from the actor's business. Admins cannot delete
// themselves.
func (s *UserService) Delete(actor Actor, id uuid.UUID) error {
	if actor.Role != models.RoleAdmin {
		return ErrForbidden
	}

	if actor.ID == id {
		return ErrInvalidInput
	}

	user, err := s.findUser(id)
	if err != nil {
		return err
	}

	if !s.authz.InScope(actor, user.BusinessID) {
		return ErrNotFound
	}

	if err := s.db.Delete(user).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    id,
		"deleted_by": actor.ID,
	}).Info("User deleted")

	return nil
}

func (s *UserService) findUser(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}
