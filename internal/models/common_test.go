// internal/models/common_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRolePermissions(t *testing.T) {
	tests := []struct {
		name    string
		role    Role
		action  Action
		allowed bool
	}{
		{"admin can create", RoleAdmin, ActionCreateProduct, true},
		{"admin can edit", RoleAdmin, ActionEditProduct, true},
		{"admin can approve", RoleAdmin, ActionApproveProduct, true},
		{"admin can delete", RoleAdmin, ActionDeleteProduct, true},
		{"admin can view", RoleAdmin, ActionViewAll, true},
		{"editor can create", RoleEditor, ActionCreateProduct, true},
		{"editor can edit", RoleEditor, ActionEditProduct, true},
		{"editor cannot approve", RoleEditor, ActionApproveProduct, false},
		{"editor cannot delete", RoleEditor, ActionDeleteProduct, false},
		{"editor can view", RoleEditor, ActionViewAll, true},
		{"approver cannot create", RoleApprover, ActionCreateProduct, false},
		{"approver cannot edit", RoleApprover, ActionEditProduct, false},
		{"approver can approve", RoleApprover, ActionApproveProduct, true},
		{"approver can view", RoleApprover, ActionViewAll, true},
		{"viewer can only view", RoleViewer, ActionViewAll, true},
		{"viewer cannot create", RoleViewer, ActionCreateProduct, false},
		{"viewer cannot approve", RoleViewer, ActionApproveProduct, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.role.Can(tt.action))
		})
	}
}

func TestUnknownRoleHasNoPermissions(t *testing.T) {
	unknown := Role("superuser")

	assert.False(t, unknown.Valid())
	assert.Empty(t, unknown.Permissions())
	assert.False(t, unknown.Can(ActionViewAll))
	assert.False(t, unknown.Can(ActionCreateProduct))
}

func TestProductStatusTransitions(t *testing.T) {
	assert.True(t, ProductStatusDraft.CanTransitionTo(ProductStatusPendingApproval))
	assert.True(t, ProductStatusPendingApproval.CanTransitionTo(ProductStatusApproved))

	// No skipping, no reversing, no leaving approved.
	assert.False(t, ProductStatusDraft.CanTransitionTo(ProductStatusApproved))
	assert.False(t, ProductStatusPendingApproval.CanTransitionTo(ProductStatusDraft))
	assert.False(t, ProductStatusApproved.CanTransitionTo(ProductStatusDraft))
	assert.False(t, ProductStatusApproved.CanTransitionTo(ProductStatusPendingApproval))
	assert.False(t, ProductStatusDraft.CanTransitionTo(ProductStatusDraft))
}

func TestProductStatusValid(t *testing.T) {
	assert.True(t, ProductStatusDraft.Valid())
	assert.True(t, ProductStatusPendingApproval.Valid())
	assert.True(t, ProductStatusApproved.Valid())
	assert.False(t, ProductStatus("rejected").Valid())
	assert.False(t, ProductStatus("").Valid())
}
