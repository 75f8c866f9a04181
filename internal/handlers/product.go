// internal/handlers/product.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodmarket/marketplace-backend/internal/middleware"
	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/services"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

type ProductHandler struct {
	productService *services.ProductService
}

func NewProductHandler(productService *services.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// Create adds a draft product.
// POST /v1/products
func (h *ProductHandler) Create(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", utils.ValidationErrorDetails(err))
		return
	}

	product, err := h.productService.Create(actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusCreated, product)
}

// List returns the caller's business products.
// GET /v1/products
func (h *ProductHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	params := utils.GetPaginationParams(c)
	status := models.ProductStatus(c.Query("status"))

	result, err := h.productService.List(actor, status, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, result.Data, result.Meta())
}

// ListPublic returns approved products across all businesses.
// GET /v1/public/products
func (h *ProductHandler) ListPublic(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	result, err := h.productService.ListPublic(params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, result.Data, result.Meta())
}

// Get returns one product.
// GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, product)
}

// Update edits a product.
// PUT /v1/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req services.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", utils.ValidationErrorDetails(err))
		return
	}

	product, err := h.productService.Update(actor, id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, product)
}

// Delete removes a product.
// DELETE /v1/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(actor, id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, gin.H{"message": "Product deleted"})
}

// Submit moves a draft product to pending approval.
// POST /v1/products/:id/submit
func (h *ProductHandler) Submit(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.Submit(actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, product)
}

// Approve moves a pending product to approved.
// POST /v1/products/:id/approve
func (h *ProductHandler) Approve(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	product, err := h.productService.Approve(actor, id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, product)
}
