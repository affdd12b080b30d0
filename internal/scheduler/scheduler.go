package scheduler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/config"
	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/service/backup"
	"github.com/medflow-hq/medflow/internal/service/inventory"
	"github.com/medflow-hq/medflow/pkg/clients/alert"
)

// Scheduler runs the background jobs: the scheduled data backup and the
// low-stock/expiry alert push.
type Scheduler struct {
	cron         *cron.Cron
	cfg          config.Config
	inventorySvc *inventory.Service
	backupSvc    *backup.Service
	alertClient  alert.Client
	logger       *zap.Logger
}

// NewScheduler creates a new scheduler instance. alertClient may be nil,
// which disables the alert job.
func NewScheduler(cfg config.Config, inventorySvc *inventory.Service, backupSvc *backup.Service, alertClient alert.Client, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Scheduler{
		cron:         cron.New(),
		cfg:          cfg,
		inventorySvc: inventorySvc,
		backupSvc:    backupSvc,
		alertClient:  alertClient,
		logger:       logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	s.logger.Info("starting scheduler")

	if _, err := s.cron.AddFunc(s.cfg.Scheduler.BackupCron, s.runBackup); err != nil {
		s.logger.Error("failed to schedule backup job", zap.Error(err))
	}

	if s.alertClient != nil {
		if _, err := s.cron.AddFunc(s.cfg.Scheduler.AlertCron, s.runStockAlerts); err != nil {
			s.logger.Error("failed to schedule alert job", zap.Error(err))
		}
	}

	s.cron.Start()
}

// Stop stops the scheduler.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping scheduler")
	s.cron.Stop()
}

func (s *Scheduler) runBackup() {
	s.logger.Info("running scheduled backup")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	bundle, err := s.backupSvc.Export(ctx, models.SystemActor)
	if err != nil {
		s.logger.Error("scheduled backup failed", zap.Error(err))
		return
	}

	s.logger.Info("scheduled backup completed", zap.String("filename", bundle.Filename()))
}

func (s *Scheduler) runStockAlerts() {
	s.logger.Info("running stock alert check")
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	items, err := s.inventorySvc.List(ctx)
	if err != nil {
		s.logger.Error("alert inventory read failed", zap.Error(err))
		return
	}

	low := inventory.LowStock(items, inventory.DefaultLowStockThreshold)
	expiring := inventory.ExpiringWithin(items, time.Now().UTC(), inventory.DefaultExpiryWindowDays)
	if len(low) == 0 && len(expiring) == 0 {
		s.logger.Debug("no stock alerts to send")
		return
	}

	a := alert.Alert{
		Title:    "MedFlow stock alert",
		Message:  alertMessage(low, expiring),
		Severity: models.InsightWarning,
	}
	if len(low) > 0 {
		a.Severity = models.InsightDanger
	}

	if err := s.alertClient.Send(ctx, a); err != nil {
		s.logger.Error("failed to send stock alert", zap.Error(err))
		return
	}
	s.logger.Info("stock alert sent", zap.Int("low", len(low)), zap.Int("expiring", len(expiring)))
}

func alertMessage(low, expiring []models.Medicine) string {
	var parts []string
	if len(low) > 0 {
		names := make([]string, 0, len(low))
		for _, item := range low {
			names = append(names, item.Name)
		}
		parts = append(parts, fmt.Sprintf("%d items low on stock: %s.", len(low), strings.Join(names, ", ")))
	}
	if len(expiring) > 0 {
		names := make([]string, 0, len(expiring))
		for _, item := range expiring {
			names = append(names, fmt.Sprintf("%s (%s)", item.Name, item.Expiry))
		}
		parts = append(parts, fmt.Sprintf("%d items expiring within 30 days: %s.", len(expiring), strings.Join(names, ", ")))
	}
	return strings.Join(parts, " ")
}
