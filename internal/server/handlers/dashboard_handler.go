package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/service/activity"
	"github.com/medflow-hq/medflow/internal/service/insights"
	"github.com/medflow-hq/medflow/internal/service/inventory"
)

// DashboardHandler serves the derived read-only views: the overview stats,
// the insight cards and the activity log.
type DashboardHandler struct {
	inventorySvc *inventory.Service
	insightsSvc  *insights.Service
	activitySvc  *activity.Service
	logger       *zap.Logger
}

// NewDashboardHandler constructs the HTTP adapter for the dashboard views.
func NewDashboardHandler(inventorySvc *inventory.Service, insightsSvc *insights.Service, activitySvc *activity.Service, logger *zap.Logger) *DashboardHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardHandler{
		inventorySvc: inventorySvc,
		insightsSvc:  insightsSvc,
		activitySvc:  activitySvc,
		logger:       logger,
	}
}

// Stats computes the overview numbers from one inventory snapshot.
func (h *DashboardHandler) Stats(c *gin.Context) {
	items, err := h.inventorySvc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed reading inventory for stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	expiring := inventory.ExpiringWithin(items, time.Now().UTC(), inventory.DefaultExpiryWindowDays)
	if expiring == nil {
		expiring = []models.Medicine{}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalMedicines": len(items),
		"lowStockCount":  len(inventory.LowStock(items, inventory.DefaultLowStockThreshold)),
		"totalValue":     inventory.TotalValue(items),
		"expiring":       expiring,
		"categories":     inventory.CategoryDistribution(items),
	})
}

// Insights generates the advisory cards for the current snapshot.
func (h *DashboardHandler) Insights(c *gin.Context) {
	items, err := h.inventorySvc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed reading inventory for insights", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"insights": h.insightsSvc.Generate(items)})
}

// Activity lists the audit log, newest first.
func (h *DashboardHandler) Activity(c *gin.Context) {
	entries, err := h.activitySvc.List(c.Request.Context())
	if err != nil {
		h.logger.Error("failed reading activity log", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}
	if entries == nil {
		entries = []models.Activity{}
	}

	c.JSON(http.StatusOK, gin.H{"activity": entries})
}
