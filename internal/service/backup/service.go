package backup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/slots"
)

// Mirror receives a copy of every export, e.g. the Google Sheets adapter.
// A nil Mirror disables mirroring.
type Mirror interface {
	AppendRows(ctx context.Context, sheetRange string, rows [][]interface{}) error
}

// Recorder is the audit sink for backup events.
type Recorder interface {
	Record(ctx context.Context, action, description, actor string) error
}

const (
	backupSummaryRange   = "Backups!A:D"
	backupInventoryRange = "Inventory!A:G"
)

// Service assembles full-snapshot export bundles.
type Service struct {
	store    slots.Store
	recorder Recorder
	mirror   Mirror
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the backup service. mirror may be nil.
func NewService(store slots.Store, recorder Recorder, mirror Mirror, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		recorder: recorder,
		mirror:   mirror,
		logger:   logger,
		now:      time.Now,
	}
}

// Export bundles all persisted collections plus the export timestamp, then
// records one BACKUP activity entry. The bundle therefore never contains
// its own BACKUP entry.
func (s *Service) Export(ctx context.Context, actor string) (models.Backup, error) {
	users, err := slots.Load[[]models.User](ctx, s.store, slots.SlotUsers, s.logger)
	if err != nil {
		return models.Backup{}, err
	}
	items, err := slots.Load[[]models.Medicine](ctx, s.store, slots.SlotInventory, s.logger)
	if err != nil {
		return models.Backup{}, err
	}
	entries, err := slots.Load[[]models.Activity](ctx, s.store, slots.SlotActivity, s.logger)
	if err != nil {
		return models.Backup{}, err
	}

	attendance, err := s.store.Read(ctx, slots.SlotAttendance)
	if err != nil && !errors.Is(err, slots.ErrSlotNotFound) {
		return models.Backup{}, fmt.Errorf("read slot %s: %w", slots.SlotAttendance, err)
	}
	if len(attendance) == 0 || !json.Valid(attendance) {
		attendance = json.RawMessage("null")
	}

	bundle := models.Backup{
		Users:      users,
		Inventory:  items,
		Attendance: attendance,
		Activity:   entries,
		ExportedAt: s.now().UTC(),
	}

	if s.recorder != nil {
		if err := s.recorder.Record(ctx, models.ActionBackup, "System data exported", actor); err != nil {
			s.logger.Warn("failed to record backup activity", zap.Error(err))
		}
	}

	s.mirrorBundle(ctx, bundle)
	s.logger.Info("backup exported",
		zap.Int("inventory", len(bundle.Inventory)),
		zap.Int("activity", len(bundle.Activity)))
	return bundle, nil
}

// mirrorBundle pushes a summary row and the inventory rows to the mirror.
// Mirror failures are logged, never fatal: the local export already
// succeeded.
func (s *Service) mirrorBundle(ctx context.Context, bundle models.Backup) {
	if s.mirror == nil {
		return
	}

	summary := [][]interface{}{{
		bundle.ExportedAt.Format(time.RFC3339),
		len(bundle.Inventory),
		len(bundle.Users),
		len(bundle.Activity),
	}}
	if err := s.mirror.AppendRows(ctx, backupSummaryRange, summary); err != nil {
		s.logger.Warn("backup mirror summary failed", zap.Error(err))
		return
	}

	rows := make([][]interface{}, 0, len(bundle.Inventory))
	for _, item := range bundle.Inventory {
		rows = append(rows, []interface{}{
			item.ID, item.Name, models.NormalizeCategory(item.Category),
			item.Batch, item.Expiry, item.Stock, item.Price,
		})
	}
	if len(rows) == 0 {
		return
	}
	if err := s.mirror.AppendRows(ctx, backupInventoryRange, rows); err != nil {
		s.logger.Warn("backup mirror inventory failed", zap.Error(err))
	}
}
