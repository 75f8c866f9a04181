// internal/models/product.go
package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name                 string          `json:"name" gorm:"size:255;not null"`
	Description          string          `json:"description" gorm:"type:text"`
	Price                decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Status               ProductStatus   `json:"status" gorm:"type:varchar(20);default:'draft';index"`
	BusinessID           uuid.UUID       `json:"business_id" gorm:"type:uuid;not null;index"`
	BusinessNameSnapshot string          `json:"business_name_snapshot" gorm:"size:255"`
	CreatedByID          *uuid.UUID      `json:"created_by_id" gorm:"type:uuid;index"`
	ApprovedByID         *uuid.UUID      `json:"approved_by_id" gorm:"type:uuid"`
	ApprovedAt           *time.Time      `json:"approved_at"`

	// Relationships
	Business   Business `json:"business,omitempty" gorm:"foreignKey:BusinessID"`
	CreatedBy  *User    `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	ApprovedBy *User    `json:"approved_by,omitempty" gorm:"foreignKey:ApprovedByID"`
}
