// internal/handlers/business.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodmarket/marketplace-backend/internal/middleware"
	"github.com/prodmarket/marketplace-backend/internal/services"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

type BusinessHandler struct {
	businessService *services.BusinessService
}

func NewBusinessHandler(businessService *services.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Get returns the caller's business.
// GET /v1/businesses/me
func (h *BusinessHandler) Get(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	business, err := h.businessService.Get(actor)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, business)
}

// Update edits the caller's business profile.
// PUT /v1/businesses/me
func (h *BusinessHandler) Update(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.UpdateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", utils.ValidationErrorDetails(err))
		return
	}

	business, err := h.businessService.Update(actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, business)
}
