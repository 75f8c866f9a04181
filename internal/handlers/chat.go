// internal/handlers/chat.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prodmarket/marketplace-backend/internal/middleware"
	"github.com/prodmarket/marketplace-backend/internal/services"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

type ChatHandler struct {
	chatService *services.ChatService
}

func NewChatHandler(chatService *services.ChatService) *ChatHandler {
	return &ChatHandler{chatService: chatService}
}

// Query sends a message to the chatbot.
// POST /v1/chat
func (h *ChatHandler) Query(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request", utils.ValidationErrorDetails(err))
		return
	}

	message, err := h.chatService.Query(c.Request.Context(), actor, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, message)
}

// History returns the caller's past chatbot exchanges.
// GET /v1/chat/history
func (h *ChatHandler) History(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	params := utils.GetPaginationParams(c)
	result, err := h.chatService.History(actor, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, http.StatusOK, result.Data, result.Meta())
}
