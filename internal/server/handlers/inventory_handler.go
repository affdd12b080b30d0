package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/service/inventory"
)

// InventoryHandler exposes CRUD over the medicine collection.
type InventoryHandler struct {
	svc    *inventory.Service
	logger *zap.Logger
}

// NewInventoryHandler constructs the HTTP adapter for the inventory.
func NewInventoryHandler(svc *inventory.Service, logger *zap.Logger) *InventoryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryHandler{svc: svc, logger: logger}
}

// List returns the inventory, optionally narrowed by ?q= and ?category=.
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.svc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed listing inventory", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	query := c.Query("q")
	category := c.Query("category")
	if query != "" || category != "" {
		items = inventory.Filter(items, query, category)
	}
	if items == nil {
		items = []models.Medicine{}
	}

	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Create adds one medicine record.
func (h *InventoryHandler) Create(c *gin.Context) {
	var candidate models.Medicine
	if err := c.ShouldBindJSON(&candidate); err != nil {
		h.logger.Warn("invalid medicine payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.svc.Add(c.Request.Context(), candidate, actorName(c))
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidRecord) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed adding medicine", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusCreated, created)
}

// Update merges a partial patch into the record matching :id.
func (h *InventoryHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var patch models.MedicinePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid patch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.svc.Update(c.Request.Context(), id, patch, actorName(c))
	if err != nil {
		h.logger.Error("failed updating medicine", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	if !updated {
		c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete removes the record matching :id. Deleting an unknown id reports
// not found but leaves the collection persisted as-is.
func (h *InventoryHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	removed, err := h.svc.Remove(c.Request.Context(), id, actorName(c))
	if err != nil {
		h.logger.Error("failed deleting medicine", zap.Int64("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "medicine not found"})
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID canonicalizes the :id path parameter to an integer. Malformed
// input is rejected outright rather than loosely coerced.
func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return 0, false
	}
	return id, true
}
