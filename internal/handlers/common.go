// internal/handlers/common.go
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/prodmarket/marketplace-backend/internal/services"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

// handleServiceError maps service sentinel errors onto HTTP responses.
// Anything unmapped is a 500 with no internal detail leaked.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, "Resource not found")
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, "You do not have permission to perform this action")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusBadRequest, "INVALID_TRANSITION", "The requested status change is not allowed", nil)
	case errors.Is(err, services.ErrInvalidInput):
		utils.BadRequestResponse(c, "Invalid input", nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, "Resource already exists")
	case errors.Is(err, services.ErrInvalidCredentials):
		utils.UnauthorizedResponse(c, "Invalid email or password")
	case errors.Is(err, services.ErrAccountDisabled):
		utils.ForbiddenResponse(c, "Account is disabled")
	case errors.Is(err, services.ErrTempPasswordExpired):
		utils.ForbiddenResponse(c, "Temporary password has expired, ask your administrator for a new invitation")
	default:
		utils.InternalErrorResponse(c, "An unexpected error occurred")
	}
}

// parseIDParam reads and validates the :id path parameter.
func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid resource ID", nil)
		return uuid.Nil, false
	}
	return id, true
}
