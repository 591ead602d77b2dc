package service

import (
	"context"

	"gorm.io/gorm"

	"github.com/forkful/chatbot-backend/internal/models"
)

// ConversationService handles conversation history persistence
type ConversationService struct {
	db *gorm.DB
}

// NewConversationService creates a new ConversationService instance
func NewConversationService(db *gorm.DB) *ConversationService {
	return &ConversationService{db: db}
}

// Create records one chat exchange. This is the only failure in the
// request path that propagates to the caller.
func (s *ConversationService) Create(ctx context.Context, userID, userMessage, botResponse string) (*models.Conversation, error) {
	conv := &models.Conversation{
		UserID:      userID,
		UserMessage: userMessage,
		BotResponse: botResponse,
	}
	if err := s.db.WithContext(ctx).Create(conv).Error; err != nil {
		return nil, err
	}
	return conv, nil
}

// ListByUser returns all conversation records for a user, oldest first
func (s *ConversationService) ListByUser(ctx context.Context, userID string) ([]models.Conversation, error) {
	convs := make([]models.Conversation, 0)
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}
