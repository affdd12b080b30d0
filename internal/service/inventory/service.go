package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/slots"
)

// ErrInvalidRecord indicates a create request missing required fields or
// carrying out-of-range values.
var ErrInvalidRecord = errors.New("invalid medicine record")

// Recorder is the audit sink the inventory writes to on every mutation.
type Recorder interface {
	Record(ctx context.Context, action, description, actor string) error
}

// Service owns CRUD over the medicine collection. Every operation is a full
// read-modify-write of the inventory slot; the acting user is passed in
// explicitly so attribution never depends on ambient session state.
type Service struct {
	store    slots.Store
	recorder Recorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewService wires the inventory over the given slot store and audit sink.
func NewService(store slots.Store, recorder Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		recorder: recorder,
		logger:   logger,
		now:      time.Now,
	}
}

// List returns the full inventory snapshot in insertion order.
func (s *Service) List(ctx context.Context) ([]models.Medicine, error) {
	return slots.Load[[]models.Medicine](ctx, s.store, slots.SlotInventory, s.logger)
}

// Add assigns a fresh unique id, stamps UpdatedAt, appends the record and
// persists. Emits one ADD_ITEM activity entry.
func (s *Service) Add(ctx context.Context, candidate models.Medicine, actor string) (models.Medicine, error) {
	if err := validate(candidate); err != nil {
		return models.Medicine{}, err
	}

	items, err := s.List(ctx)
	if err != nil {
		return models.Medicine{}, err
	}

	now := s.now().UTC()
	candidate.ID = nextID(items, now)
	candidate.Category = models.NormalizeCategory(candidate.Category)
	candidate.UpdatedAt = now

	items = append(items, candidate)
	if err := slots.Save(ctx, s.store, slots.SlotInventory, items); err != nil {
		return models.Medicine{}, err
	}

	s.audit(ctx, models.ActionAddItem, fmt.Sprintf("Added new medicine: %s", candidate.Name), actor)
	s.logger.Info("medicine added", zap.Int64("id", candidate.ID), zap.String("name", candidate.Name))
	return candidate, nil
}

// Update merges the patch into the record matching id and refreshes
// UpdatedAt. Returns false, without error, when no record matches.
func (s *Service) Update(ctx context.Context, id int64, patch models.MedicinePatch, actor string) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		return false, nil
	}

	oldName := items[idx].Name
	applyPatch(&items[idx], patch)
	items[idx].UpdatedAt = s.now().UTC()

	if err := slots.Save(ctx, s.store, slots.SlotInventory, items); err != nil {
		return false, err
	}

	s.audit(ctx, models.ActionUpdateItem, fmt.Sprintf("Updated details for: %s", oldName), actor)
	return true, nil
}

// Remove deletes the record matching id. A second removal of the same id is
// a no-op: the unchanged set is persisted and false is returned.
func (s *Service) Remove(ctx context.Context, id int64, actor string) (bool, error) {
	items, err := s.List(ctx)
	if err != nil {
		return false, err
	}

	idx := indexOf(items, id)
	if idx < 0 {
		if err := slots.Save(ctx, s.store, slots.SlotInventory, items); err != nil {
			return false, err
		}
		return false, nil
	}

	removed := items[idx]
	items = append(items[:idx], items[idx+1:]...)
	if err := slots.Save(ctx, s.store, slots.SlotInventory, items); err != nil {
		return false, err
	}

	s.audit(ctx, models.ActionDeleteItem, fmt.Sprintf("Deleted medicine: %s", removed.Name), actor)
	return true, nil
}

func (s *Service) audit(ctx context.Context, action, description, actor string) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.Record(ctx, action, description, actor); err != nil {
		s.logger.Warn("failed to record activity", zap.String("action", action), zap.Error(err))
	}
}

// nextID derives a creation-time id, falling back to max(existing)+1 when
// the clock would collide with or trail an existing id.
func nextID(items []models.Medicine, now time.Time) int64 {
	id := now.UnixMilli()
	var maxID int64
	for _, item := range items {
		if item.ID > maxID {
			maxID = item.ID
		}
	}
	if id <= maxID {
		id = maxID + 1
	}
	return id
}

func indexOf(items []models.Medicine, id int64) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func applyPatch(item *models.Medicine, patch models.MedicinePatch) {
	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Category != nil {
		item.Category = models.NormalizeCategory(*patch.Category)
	}
	if patch.Manufacturer != nil {
		item.Manufacturer = *patch.Manufacturer
	}
	if patch.Batch != nil {
		item.Batch = *patch.Batch
	}
	if patch.Expiry != nil {
		item.Expiry = *patch.Expiry
	}
	if patch.Stock != nil {
		item.Stock = *patch.Stock
	}
	if patch.Price != nil {
		item.Price = *patch.Price
	}
}

func validate(candidate models.Medicine) error {
	switch {
	case candidate.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidRecord)
	case candidate.Batch == "":
		return fmt.Errorf("%w: batch is required", ErrInvalidRecord)
	case candidate.Expiry == "":
		return fmt.Errorf("%w: expiry is required", ErrInvalidRecord)
	case candidate.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalidRecord)
	case candidate.Price < 0:
		return fmt.Errorf("%w: price must not be negative", ErrInvalidRecord)
	}

	if _, err := candidate.ExpiryDate(); err != nil {
		return fmt.Errorf("%w: expiry must be a %s date", ErrInvalidRecord, models.DateLayout)
	}
	return nil
}
