package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/forkful/chatbot-backend/internal/service"
)

// ChatHandler handles chat and conversation-history requests
type ChatHandler struct {
	agent         *service.AgentService
	conversations *service.ConversationService
	logger        *zap.Logger
}

// NewChatHandler creates a new ChatHandler instance
func NewChatHandler(agent *service.AgentService, conversations *service.ConversationService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		agent:         agent,
		conversations: conversations,
		logger:        logger,
	}
}

// ChatRequest is the body of a chat request
type ChatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message" binding:"required"`
}

// RegisterRoutes registers the chat routes
func (h *ChatHandler) RegisterRoutes(router *gin.Engine) {
	router.GET("/", h.Root)
	router.POST("/chat", h.Chat)
	router.GET("/conversations/:user_id", h.Conversations)
}

// Root reports that the service is up
func (h *ChatHandler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Chatbot API is running"})
}

// Chat runs the recipe pipeline for one message and persists the exchange
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.UserID == "" {
		req.UserID = "anonymous"
	}

	result := h.agent.Run(c.Request.Context(), req.Message)

	// Only the synthesized text is kept for history; the structured
	// recipes exist for this response only
	if _, err := h.conversations.Create(c.Request.Context(), req.UserID, req.Message, result.Text); err != nil {
		h.logger.Error("failed to save conversation",
			zap.String("user_id", req.UserID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save conversation"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": result})
}

// Conversations returns all stored exchanges for a user
func (h *ChatHandler) Conversations(c *gin.Context) {
	userID := c.Param("user_id")

	convs, err := h.conversations.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.logger.Error("failed to list conversations",
			zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load conversations"})
		return
	}

	c.JSON(http.StatusOK, convs)
}
