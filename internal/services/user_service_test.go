// internal/services/user_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService

	business *models.Business
	otherBiz *models.Business
	admin    Actor
	editor   Actor
	outsider Actor
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = setupTestDB(s.T())
	s.service = NewUserService(s.db, NewAuthorizationService(), testNotifier())

	s.business = createTestBusiness(s.T(), s.db, "Acme Goods")
	s.otherBiz = createTestBusiness(s.T(), s.db, "Rival Goods")

	s.admin = actorFor(createTestUser(s.T(), s.db, s.business.ID, "admin@acme.test", models.RoleAdmin))
	s.editor = actorFor(createTestUser(s.T(), s.db, s.business.ID, "editor@acme.test", models.RoleEditor))
	s.outsider = actorFor(createTestUser(s.T(), s.db, s.otherBiz.ID, "admin@rival.test", models.RoleAdmin))
}

func (s *UserServiceTestSuite) TestInvite() {
	user, err := s.service.Invite(s.admin, &InviteUserRequest{
		Email:     "new@acme.test",
		FirstName: "New",
		LastName:  "Hire",
		Role:      models.RoleApprover,
	})

	s.Require().NoError(err)
	s.Equal(s.business.ID, user.BusinessID)
	s.Equal(models.RoleApprover, user.Role)
	s.True(user.PasswordChangeRequired)
	s.Require().NotNil(user.TempPasswordExpiresAt)
	s.NotNil(user.InvitationSentAt)

	// Expiry is roughly seven days out.
	expectedExpiry := time.Now().Add(7 * 24 * time.Hour)
	s.WithinDuration(expectedExpiry, *user.TempPasswordExpiresAt, time.Minute)
}

func (s *UserServiceTestSuite) TestInviteNonAdminForbidden() {
	_, err := s.service.Invite(s.editor, &InviteUserRequest{
		Email:     "new@acme.test",
		FirstName: "New",
		LastName:  "Hire",
		Role:      models.RoleViewer,
	})
	s.ErrorIs(err, ErrForbidden)
}

func (s *UserServiceTestSuite) TestInviteDuplicateEmail() {
	_, err := s.service.Invite(s.admin, &InviteUserRequest{
		Email:     "editor@acme.test",
		FirstName: "Dup",
		LastName:  "User",
		Role:      models.RoleViewer,
	})
	s.ErrorIs(err, ErrConflict)
}

func (s *UserServiceTestSuite) TestInviteBlockedWhenBusinessCannotCreateUsers() {
	s.Require().NoError(s.db.Model(&models.Business{}).Where("id = ?", s.business.ID).Update("can_create_users", false).Error)

	_, err := s.service.Invite(s.admin, &InviteUserRequest{
		Email:     "new@acme.test",
		FirstName: "New",
		LastName:  "Hire",
		Role:      models.RoleViewer,
	})
	s.ErrorIs(err, ErrForbidden)
}

func (s *UserServiceTestSuite) TestListAdminSeesAllNonAdminSeesSelf() {
	adminResult, err := s.service.List(s.admin, utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"})
	s.Require().NoError(err)
	s.Equal(int64(2), adminResult.Total)

	editorResult, err := s.service.List(s.editor, utils.PaginationParams{Page: 1, Limit: 20, Sort: "created_at", Order: "desc"})
	s.Require().NoError(err)
	s.Equal(int64(1), editorResult.Total)

	users := editorResult.Data.([]models.User)
	s.Equal(s.editor.ID, users[0].ID)
}

func (s *UserServiceTestSuite) TestGetCrossBusinessReportsNotFound() {
	_, err := s.service.Get(s.outsider, s.editor.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *UserServiceTestSuite) TestUpdateRole() {
	role := models.RoleApprover
	updated, err := s.service.Update(s.admin, s.editor.ID, &UpdateUserRequest{Role: &role})
	s.Require().NoError(err)
	s.Equal(models.RoleApprover, updated.Role)
}

func (s *UserServiceTestSuite) TestUpdateRoleBlockedWhenBusinessCannotAssignRoles() {
	s.Require().NoError(s.db.Model(&models.Business{}).Where("id = ?", s.business.ID).Update("can_assign_roles", false).Error)

	role := models.RoleApprover
	_, err := s.service.Update(s.admin, s.editor.ID, &UpdateUserRequest{Role: &role})
	s.ErrorIs(err, ErrForbidden)
}

func (s *UserServiceTestSuite) TestAdminCannotDeactivateSelf() {
	inactive := false
	_, err := s.service.Update(s.admin, s.admin.ID, &UpdateUserRequest{IsActive: &inactive})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *UserServiceTestSuite) TestDelete() {
	s.Require().NoError(s.service.Delete(s.admin, s.editor.ID))

	_, err := s.service.Get(s.admin, s.editor.ID)
	s.ErrorIs(err, ErrNotFound)
}

func (s *UserServiceTestSuite) TestAdminCannotDeleteSelf() {
	s.ErrorIs(s.service.Delete(s.admin, s.admin.ID), ErrInvalidInput)
}

func (s *UserServiceTestSuite) TestDeleteCrossBusinessReportsNotFound() {
	s.ErrorIs(s.service.Delete(s.outsider, s.editor.ID), ErrNotFound)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
