package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/service/backup"
)

// BackupHandler serves the full-snapshot export as a downloadable file.
type BackupHandler struct {
	svc    *backup.Service
	logger *zap.Logger
}

// NewBackupHandler constructs the HTTP adapter for backups.
func NewBackupHandler(svc *backup.Service, logger *zap.Logger) *BackupHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BackupHandler{svc: svc, logger: logger}
}

// Download assembles a backup bundle and streams it as a JSON attachment.
func (h *BackupHandler) Download(c *gin.Context) {
	bundle, err := h.svc.Export(c.Request.Context(), actorName(c))
	if err != nil {
		h.logger.Error("backup export failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "storage unavailable"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", bundle.Filename()))
	c.IndentedJSON(http.StatusOK, bundle)
}
