// internal/services/product_service.go
package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

// productSortFields are the only columns list endpoints may sort by.
var productSortFields = []string{"name", "price", "status", "created_at", "updated_at"}

type ProductService struct {
	db    *gorm.DB
	authz *AuthorizationService
}

func NewProductService(db *gorm.DB, authz *AuthorizationService) *ProductService {
	return &ProductService{
		db:    db,
		authz: authz,
	}
}

type CreateProductRequest struct {
	Name        string          `json:"name" binding:"required,min=2,max=255"`
	Description string          `json:"description" binding:"max=5000"`
	Price       decimal.Decimal `json:"price"`
}

type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=2,max=255"`
	Description *string          `json:"description" binding:"omitempty,max=5000"`
	Price       *decimal.Decimal `json:"price"`
}

// Create adds a new product in draft status for the actor's business. The
// business name is copied onto the product so public listings survive later
// renames.
func (s *ProductService) Create(actor Actor, req *CreateProductRequest) (*models.Product, error) {
	if !s.authz.IsAllowed(actor, models.ActionCreateProduct) {
		return nil, ErrForbidden
	}

	if req.Price.IsNegative() {
		return nil, ErrInvalidInput
	}

	var business models.Business
	if err := s.db.First(&business, "id = ?", actor.BusinessID).Error; err != nil {
		return nil, err
	}

	createdBy := actor.ID
	product := models.Product{
		Name:                 strings.TrimSpace(req.Name),
		Description:          req.Description,
		Price:                req.Price,
		Status:               models.ProductStatusDraft,
		BusinessID:           actor.BusinessID,
		BusinessNameSnapshot: business.Name,
		CreatedByID:          &createdBy,
	}

	if err := s.db.Create(&product).Error; err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"product_id":  product.ID,
		"business_id": product.BusinessID,
		"user_id":     actor.ID,
	}).Info("Product created")

	return &product, nil
}

// Get returns a single product in the actor's business. Products in other
// businesses report not found.
func (s *ProductService) Get(actor Actor, id uuid.UUID) (*models.Product, error) {
	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(actor, models.ActionViewAll, product.BusinessID); err != nil {
		return nil, err
	}

	return product, nil
}

// List returns products in the actor's business, optionally filtered by
// status and search term.
func (s *ProductService) List(actor Actor, status models.ProductStatus, params utils.PaginationParams) (*utils.PaginationResult, error) {
	if !s.authz.IsAllowed(actor, models.ActionViewAll) {
		return nil, ErrForbidden
	}

	query := s.db.Model(&models.Product{}).Where("business_id = ?", actor.BusinessID)

	if status != "" {
		if !status.Valid() {
			return nil, ErrInvalidInput
		}
		query = query.Where("status = ?", status)
	}

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	err := utils.ApplySort(query, params, productSortFields).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginationResult(products, total, params)
	return &result, nil
}

// ListPublic returns approved products across all businesses. No
// authentication is required and no tenant filter applies.
func (s *ProductService) ListPublic(params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.Product{}).Where("status = ?", models.ProductStatusApproved)

	if params.Search != "" {
		search := "%" + params.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", search, search)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var products []models.Product
	err := utils.ApplySort(query, params, productSortFields).
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&products).Error
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginationResult(products, total, params)
	return &result, nil
}

// Update edits a product's fields. Editing is allowed in any lifecycle
// status; an edit never changes the status.
func (s *ProductService) Update(actor Actor, id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(actor, models.ActionEditProduct, product.BusinessID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, ErrInvalidInput
		}
		updates["price"] = *req.Price
	}

	if len(updates) == 0 {
		return product, nil
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.findProduct(id)
}

// Delete removes a product permanently.
func (s *ProductService) Delete(actor Actor, id uuid.UUID) error {
	product, err := s.findProduct(id)
	if err != nil {
		return err
	}

	if err := s.authz.Authorize(actor, models.ActionDeleteProduct, product.BusinessID); err != nil {
		return err
	}

	if err := s.db.Delete(product).Error; err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"user_id":    actor.ID,
	}).Info("Product deleted")

	return nil
}

// Submit moves a draft product into pending approval. The transition is a
// guarded update keyed on the current status so concurrent submits cannot
// both succeed.
func (s *ProductService) Submit(actor Actor, id uuid.UUID) (*models.Product, error) {
	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(actor, models.ActionEditProduct, product.BusinessID); err != nil {
		return nil, err
	}

	if !product.Status.CanTransitionTo(models.ProductStatusPendingApproval) {
		return nil, ErrInvalidTransition
	}

	res := s.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", id, models.ProductStatusDraft).
		Update("status", models.ProductStatusPendingApproval)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"user_id":    actor.ID,
	}).Info("Product submitted for approval")

	return s.findProduct(id)
}

// Approve moves a pending product to approved and records who approved it
// and when. The status guard in the WHERE clause serializes concurrent
// approvals: exactly one wins, the rest see an invalid transition.
func (s *ProductService) Approve(actor Actor, id uuid.UUID) (*models.Product, error) {
	product, err := s.findProduct(id)
	if err != nil {
		return nil, err
	}

	if err := s.authz.Authorize(actor, models.ActionApproveProduct, product.BusinessID); err != nil {
		return nil, err
	}

	if !product.Status.CanTransitionTo(models.ProductStatusApproved) {
		return nil, ErrInvalidTransition
	}

	now := time.Now()
	res := s.db.Model(&models.Product{}).
		Where("id = ? AND status = ?", id, models.ProductStatusPendingApproval).
		Updates(map[string]interface{}{
			"status":         models.ProductStatusApproved,
			"approved_by_id": actor.ID,
			"approved_at":    now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrInvalidTransition
	}

	logrus.WithFields(logrus.Fields{
		"product_id": id,
		"user_id":    actor.ID,
	}).Info("Product approved")

	return s.findProduct(id)
}

func (s *ProductService) findProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}
