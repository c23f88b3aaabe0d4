package docstore

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"VP-RPT/internal/models"
	"VP-RPT/internal/storage"
)

func TestHistoryAppendDoesNotDeduplicate(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryStore(storage.NewMemoryStore(), zerolog.Nop())

	_, err := history.Append(ctx, models.HistoryRecord{PropertyAddress: "12 Test St", IfReplaceText: true})
	require.NoError(t, err)
	_, err = history.Append(ctx, models.HistoryRecord{PropertyAddress: "12 Test St", IfReplaceImage: true})
	require.NoError(t, err)

	records, err := history.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2, "history keeps every snapshot of the same address")
}

func TestHistoryListSortedByUpdatedAtDescending(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryStore(storage.NewMemoryStore(), zerolog.Nop())

	_, err := history.Append(ctx, models.HistoryRecord{PropertyAddress: "first"})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = history.Append(ctx, models.HistoryRecord{PropertyAddress: "second"})
	require.NoError(t, err)

	records, err := history.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "second", records[0].PropertyAddress)
}

func TestHistoryDeleteIdempotent(t *testing.T) {
	ctx := context.Background()
	history := NewHistoryStore(storage.NewMemoryStore(), zerolog.Nop())

	appended, err := history.Append(ctx, models.HistoryRecord{PropertyAddress: "12 Test St"})
	require.NoError(t, err)

	removed, err := history.Delete(ctx, appended.DraftID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = history.Delete(ctx, appended.DraftID)
	require.NoError(t, err)
	assert.False(t, removed, "second delete of the same id is a no-op")
}
