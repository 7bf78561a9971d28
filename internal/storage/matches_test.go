package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtitans/foundit/internal/common"
	"github.com/techtitans/foundit/internal/model"
)

func TestSQLiteStorage_MatchRecords(t *testing.T) {
	ctx := context.Background()
	store, cleanup := createTestStorage(t)
	defer cleanup()

	base := time.Now().UTC()
	records := []*model.MatchRecord{
		{
			ID:            "match-1",
			SourceItemID:  "lost-1",
			MatchedItemID: "found-1",
			Confidence:    82,
			Reason:        "both describe a silver water bottle near the gym",
			CreatedAt:     base,
		},
		{
			ID:            "match-2",
			SourceItemID:  "lost-1",
			MatchedItemID: "found-2",
			Confidence:    90,
			Reason:        "rematch after new report",
			CreatedAt:     base.Add(time.Minute),
		},
		{
			ID:            "match-3",
			SourceItemID:  "lost-2",
			MatchedItemID: "found-3",
			Confidence:    70,
			CreatedAt:     base.Add(2 * time.Minute),
		},
	}
	for _, record := range records {
		require.NoError(t, store.SaveMatchRecord(ctx, record))
	}

	t.Run("list newest first", func(t *testing.T) {
		got, err := store.ListMatchRecords(ctx)
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "match-3", got[0].ID)
		assert.Equal(t, "match-1", got[2].ID)
	})

	t.Run("get by source returns most recent", func(t *testing.T) {
		got, err := store.GetMatchRecordBySource(ctx, "lost-1")
		require.NoError(t, err)
		assert.Equal(t, "match-2", got.ID)
		assert.Equal(t, "found-2", got.MatchedItemID)
		assert.Equal(t, 90, got.Confidence)
	})

	t.Run("get by source not found", func(t *testing.T) {
		_, err := store.GetMatchRecordBySource(ctx, "lost-99")
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("duplicate id rejected", func(t *testing.T) {
		dup := &model.MatchRecord{
			ID:            "match-1",
			SourceItemID:  "lost-3",
			MatchedItemID: "found-4",
			Confidence:    65,
			CreatedAt:     base,
		}
		err := store.SaveMatchRecord(ctx, dup)
		require.Error(t, err)
	})

	t.Run("invalid confidence rejected", func(t *testing.T) {
		bad := &model.MatchRecord{
			ID:            "match-bad",
			SourceItemID:  "lost-4",
			MatchedItemID: "found-5",
			Confidence:    120,
			CreatedAt:     base,
		}
		err := store.SaveMatchRecord(ctx, bad)
		require.Error(t, err)
	})
}
