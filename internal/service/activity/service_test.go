package activity

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-hq/medflow/internal/domain/models"
	"github.com/medflow-hq/medflow/internal/repository/memory"
)

func TestRecordPrependsNewestFirst(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, models.ActionAddItem, "first", "Super Admin"))
	require.NoError(t, svc.Record(ctx, models.ActionUpdateItem, "second", "Super Admin"))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Description)
	assert.Equal(t, "first", entries[1].Description)
}

func TestRecordDefaultsToSystemActor(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	require.NoError(t, svc.Record(ctx, models.ActionBackup, "System data exported", ""))

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.SystemActor, entries[0].User)
}

func TestLogNeverExceedsCap(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)
	ctx := context.Background()

	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < models.MaxActivityEntries+10; i++ {
		tick := base.Add(time.Duration(i) * time.Second)
		svc.now = func() time.Time { return tick }
		require.NoError(t, svc.Record(ctx, models.ActionAddItem, fmt.Sprintf("entry %d", i), "Super Admin"))
	}

	entries, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, models.MaxActivityEntries)

	// The newest entry survives at the front; the oldest ten were dropped.
	assert.Equal(t, fmt.Sprintf("entry %d", models.MaxActivityEntries+9), entries[0].Description)
	assert.Equal(t, "entry 10", entries[len(entries)-1].Description)

	for i := 1; i < len(entries); i++ {
		assert.False(t, entries[i].Timestamp.After(entries[i-1].Timestamp),
			"entries must be ordered newest first")
	}
}

func TestEmptyLogLists(t *testing.T) {
	svc := NewService(memory.NewStore(), nil)

	entries, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
