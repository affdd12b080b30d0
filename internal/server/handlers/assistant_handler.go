package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/service/assistant"
	"github.com/medflow-hq/medflow/internal/service/inventory"
)

// AssistantHandler exposes the free-text query interpreter.
type AssistantHandler struct {
	assistantSvc *assistant.Service
	inventorySvc *inventory.Service
	logger       *zap.Logger
}

// NewAssistantHandler constructs the HTTP adapter for the assistant.
func NewAssistantHandler(assistantSvc *assistant.Service, inventorySvc *inventory.Service, logger *zap.Logger) *AssistantHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssistantHandler{
		assistantSvc: assistantSvc,
		inventorySvc: inventorySvc,
		logger:       logger,
	}
}

type queryRequest struct {
	Query string `json:"query" binding:"required"`
}

// Query answers one free-text question against the current snapshot.
func (h *AssistantHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid assistant payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	items, err := h.inventorySvc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed reading inventory for assistant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"response": h.assistantSvc.Respond(req.Query, items)})
}
