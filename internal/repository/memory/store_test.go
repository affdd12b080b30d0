package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medflow-hq/medflow/internal/repository/slots"
)

func TestReadMissingSlot(t *testing.T) {
	store := NewStore()

	_, err := store.Read(context.Background(), slots.SlotInventory)
	assert.ErrorIs(t, err, slots.ErrSlotNotFound)
}

func TestWriteReadRoundtrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, slots.SlotUsers, []byte(`[{"id":1}]`)))

	got, err := store.Read(ctx, slots.SlotUsers)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(got))
}

func TestWriteReplacesValue(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, slots.SlotSession, []byte(`"a"`)))
	require.NoError(t, store.Write(ctx, slots.SlotSession, []byte(`"b"`)))

	got, err := store.Read(ctx, slots.SlotSession)
	require.NoError(t, err)
	assert.Equal(t, `"b"`, string(got))
}

func TestDelete(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, slots.SlotSession, []byte(`{}`)))
	require.NoError(t, store.Delete(ctx, slots.SlotSession))

	_, err := store.Read(ctx, slots.SlotSession)
	assert.ErrorIs(t, err, slots.ErrSlotNotFound)

	// Deleting again is a no-op.
	require.NoError(t, store.Delete(ctx, slots.SlotSession))
}

func TestReadReturnsCopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, slots.SlotUsers, []byte(`abc`)))

	got, err := store.Read(ctx, slots.SlotUsers)
	require.NoError(t, err)
	got[0] = 'x'

	again, err := store.Read(ctx, slots.SlotUsers)
	require.NoError(t, err)
	assert.Equal(t, `abc`, string(again))
}
