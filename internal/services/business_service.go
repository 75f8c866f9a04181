// internal/services/business_service.go
package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
)

type BusinessService struct {
	db *gorm.DB
}

func NewBusinessService(db *gorm.DB) *BusinessService {
	return &BusinessService{db: db}
}

type UpdateBusinessRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
}

// Get returns the actor's own business. There is no cross-business read.
func (s *BusinessService) Get(actor Actor) (*models.Business, error) {
	var business models.Business
	if err := s.db.First(&business, "id = ?", actor.BusinessID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &business, nil
}

// Update edits the actor's business profile. Admin only.
func (s *BusinessService) Update(actor Actor, req *UpdateBusinessRequest) (*models.Business, error) {
	if actor.Role != models.RoleAdmin {
		return nil, ErrForbidden
	}

	business, err := s.Get(actor)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if len(updates) == 0 {
		return business, nil
	}

	if err := s.db.Model(business).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.Get(actor)
}
