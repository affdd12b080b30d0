package slots

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Well-known slot names. Each slot holds one JSON document; the attendance
// slot is reserved for a future module and only travels through backups.
const (
	SlotUsers      = "users"
	SlotInventory  = "inventory"
	SlotAttendance = "attendance"
	SlotActivity   = "activity"
	SlotSession    = "session"
)

// ErrSlotNotFound is returned by Read when a slot has never been written.
var ErrSlotNotFound = errors.New("slot not found")

// Store is the durable key-value contract every backend implements. Values
// are opaque JSON documents; a write replaces the whole slot.
type Store interface {
	Read(ctx context.Context, slot string) ([]byte, error)
	Write(ctx context.Context, slot string, value []byte) error
	Delete(ctx context.Context, slot string) error
}

// Load reads and decodes a slot into T. An absent slot yields the zero
// value. Malformed JSON also yields the zero value, with a warning, so a
// corrupted slot degrades to an empty collection instead of wedging the
// application. Storage-level failures are returned to the caller.
func Load[T any](ctx context.Context, store Store, slot string, logger *zap.Logger) (T, error) {
	var value T

	raw, err := store.Read(ctx, slot)
	if err != nil {
		if errors.Is(err, ErrSlotNotFound) {
			return value, nil
		}
		return value, fmt.Errorf("read slot %s: %w", slot, err)
	}

	if err := json.Unmarshal(raw, &value); err != nil {
		if logger != nil {
			logger.Warn("malformed slot data, treating as empty",
				zap.String("slot", slot), zap.Error(err))
		}
		var zero T
		return zero, nil
	}

	return value, nil
}

// Save encodes value and writes it to the slot.
func Save(ctx context.Context, store Store, slot string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode slot %s: %w", slot, err)
	}

	if err := store.Write(ctx, slot, raw); err != nil {
		return fmt.Errorf("write slot %s: %w", slot, err)
	}

	return nil
}
