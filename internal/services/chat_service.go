// internal/services/chat_service.go
package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/prodmarket/marketplace-backend/internal/models"
	"github.com/prodmarket/marketplace-backend/internal/utils"
)

// catalogLimit caps how many products are rendered into the model context.
const catalogLimit = 50

type ChatService struct {
	db        *gorm.DB
	responder AIResponder
}

func NewChatService(db *gorm.DB, responder AIResponder) *ChatService {
	return &ChatService{
		db:        db,
		responder: responder,
	}
}

type ChatRequest struct {
	Message string `json:"message" binding:"required,min=1,max=2000"`
}

// Query answers a chatbot question. The catalog handed to the model
// contains only approved products in the actor's own business, so drafts,
// pending products and other tenants' products can never leak into an
// answer. The exchange is persisted for history.
func (s *ChatService) Query(ctx context.Context, actor Actor, req *ChatRequest) (*models.ChatMessage, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, ErrInvalidInput
	}

	var catalog []models.Product
	err := s.db.Where("business_id = ? AND status = ?", actor.BusinessID, models.ProductStatusApproved).
		Order("created_at desc").
		Limit(catalogLimit).
		Find(&catalog).Error
	if err != nil {
		return nil, err
	}

	response, err := s.responder.GenerateResponse(ctx, message, catalog)
	if err != nil {
		return nil, err
	}

	chatMessage := models.ChatMessage{
		UserID:      actor.ID,
		UserMessage: message,
		AIResponse:  response,
	}
	if err := s.db.Create(&chatMessage).Error; err != nil {
		return nil, err
	}

	return &chatMessage, nil
}

// History returns the actor's own past exchanges, newest first.
func (s *ChatService) History(actor Actor, params utils.PaginationParams) (*utils.PaginationResult, error) {
	query := s.db.Model(&models.ChatMessage{}).Where("user_id = ?", actor.ID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var messages []models.ChatMessage
	err := query.Order("created_at desc").
		Offset(params.Offset()).
		Limit(params.Limit).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}

	result := utils.NewPaginationResult(messages, total, params)
	return &result, nil
}
