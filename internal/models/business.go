// internal/models/business.go
package models

import "github.com/google/uuid"

// Business is the tenant boundary: every user and product belongs to
// exactly one business, and cross-business access is always denied.
type Business struct {
	BaseModel
	Name           string     `json:"name" gorm:"size:255;not null"`
	Description    string     `json:"description" gorm:"type:text"`
	CanCreateUsers bool       `json:"can_create_users" gorm:"default:true"`
	CanAssignRoles bool       `json:"can_assign_roles" gorm:"default:true"`
	OwnerID        *uuid.UUID `json:"owner_id" gorm:"type:uuid;index"`

	// Relationships
	Users    []User    `json:"users,omitempty" gorm:"foreignKey:BusinessID"`
	Products []Product `json:"products,omitempty" gorm:"foreignKey:BusinessID"`
}
