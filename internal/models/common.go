// internal/models/common.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns the primary key so inserts behave the same on
// PostgreSQL and on the sqlite databases used in tests.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Enums

// Role is one of the four fixed user roles. Unknown roles carry no
// permissions at all (fail closed).
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEditor   Role = "editor"
	RoleApprover Role = "approver"
	RoleViewer   Role = "viewer"
)

// Action identifies an operation gated by the permission table.
type Action string

const (
	ActionCreateProduct  Action = "create_product"
	ActionEditProduct    Action = "edit_product"
	ActionApproveProduct Action = "approve_product"
	ActionDeleteProduct  Action = "delete_product"
	ActionViewAll        Action = "view_all"
)

// rolePermissions is the static permission table. It is the single source
// of truth for what each role may do; nothing grants permissions anywhere
// else.
var rolePermissions = map[Role][]Action{
	RoleAdmin:    {ActionCreateProduct, ActionEditProduct, ActionApproveProduct, ActionDeleteProduct, ActionViewAll},
	RoleEditor:   {ActionCreateProduct, ActionEditProduct, ActionViewAll},
	RoleApprover: {ActionApproveProduct, ActionViewAll},
	RoleViewer:   {ActionViewAll},
}

// Permissions returns the actions granted to the role. An unknown role
// gets an empty set.
func (r Role) Permissions() []Action {
	return rolePermissions[r]
}

// Can reports whether the role is granted the action.
func (r Role) Can(action Action) bool {
	for _, a := range rolePermissions[r] {
		if a == action {
			return true
		}
	}
	return false
}

// Valid reports whether r is one of the four enumerated roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// ProductStatus is the three-value product lifecycle field.
type ProductStatus string

const (
	ProductStatusDraft           ProductStatus = "draft"
	ProductStatusPendingApproval ProductStatus = "pending_approval"
	ProductStatusApproved        ProductStatus = "approved"
)

// productTransitions encodes the lifecycle as an explicit state machine:
// draft -> pending_approval -> approved, no skipping, no reverse edges.
// approved is terminal.
var productTransitions = map[ProductStatus]ProductStatus{
	ProductStatusDraft:           ProductStatusPendingApproval,
	ProductStatusPendingApproval: ProductStatusApproved,
}

// CanTransitionTo reports whether next is the single legal successor of s.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	successor, ok := productTransitions[s]
	return ok && successor == next
}

// Valid reports whether s is one of the three enumerated statuses.
func (s ProductStatus) Valid() bool {
	switch s {
	case ProductStatusDraft, ProductStatusPendingApproval, ProductStatusApproved:
		return true
	}
	return false
}
