package activity

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/slots"
)

// Service maintains the bounded, newest-first audit log.
type Service struct {
	store  slots.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires an activity log over the given slot store.
func NewService(store slots.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// Record prepends one entry attributed to actor ("System" when empty) and
// truncates the log to the newest MaxActivityEntries.
func (s *Service) Record(ctx context.Context, action, description, actor string) error {
	entries, err := slots.Load[[]models.Activity](ctx, s.store, slots.SlotActivity, s.logger)
	if err != nil {
		return err
	}

	if actor == "" {
		actor = models.SystemActor
	}

	now := s.now().UTC()
	entry := models.Activity{
		ID:          now.UnixMilli(),
		Action:      action,
		Description: description,
		Timestamp:   now,
		User:        actor,
	}

	entries = append([]models.Activity{entry}, entries...)
	if len(entries) > models.MaxActivityEntries {
		entries = entries[:models.MaxActivityEntries]
	}

	if err := slots.Save(ctx, s.store, slots.SlotActivity, entries); err != nil {
		return err
	}

	s.logger.Debug("activity recorded",
		zap.String("action", action),
		zap.String("actor", actor))
	return nil
}

// List returns the log, newest first.
func (s *Service) List(ctx context.Context) ([]models.Activity, error) {
	return slots.Load[[]models.Activity](ctx, s.store, slots.SlotActivity, s.logger)
}
