package pairing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtitans/foundit/internal/model"
)

func resolvedItem(id string, itemType model.ReportType, campus, category, description string, createdAt time.Time) model.Item {
	resolvedAt := createdAt.Add(24 * time.Hour)
	return model.Item{
		ID:          id,
		Type:        itemType,
		Campus:      campus,
		Category:    category,
		Description: description,
		Contact:     "reporter@example.edu",
		Status:      model.StatusResolved,
		CreatedAt:   createdAt,
		ResolvedAt:  &resolvedAt,
	}
}

func TestBuildHistory(t *testing.T) {
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildHistory(nil))
	})

	t.Run("pairs matching lost and found", func(t *testing.T) {
		items := []model.Item{
			resolvedItem("lost-1", model.ReportLost, "north", model.CategoryElectronic, "black wireless headphones", base),
			resolvedItem("found-1", model.ReportFound, "north", model.CategoryElectronic, "black wireless headphones near gym", base.Add(time.Hour)),
		}

		history := BuildHistory(items)
		require.Len(t, history, 1)
		require.True(t, history[0].IsPair())
		assert.Equal(t, "lost-1", history[0].Lost.ID)
		assert.Equal(t, "found-1", history[0].Found.ID)
		assert.Greater(t, history[0].Score, DefaultScoreFloor)
	})

	t.Run("unrelated items stay singletons", func(t *testing.T) {
		items := []model.Item{
			resolvedItem("lost-1", model.ReportLost, "north", model.CategoryElectronic, "black wireless headphones", base),
			resolvedItem("found-1", model.ReportFound, "south", model.CategoryOthers, "red woolen scarf", base.Add(time.Hour)),
		}

		history := BuildHistory(items)
		require.Len(t, history, 2)
		for _, entry := range history {
			assert.False(t, entry.IsPair())
			require.NotNil(t, entry.Item)
		}
	})

	t.Run("each found item is claimed at most once", func(t *testing.T) {
		// Two lost reports compete for one found report. The first lost
		// item in creation order claims it; the second becomes a
		// singleton even though it would also score above the floor.
		items := []model.Item{
			resolvedItem("lost-1", model.ReportLost, "north", model.CategoryElectronic, "black wireless headphones", base),
			resolvedItem("lost-2", model.ReportLost, "north", model.CategoryElectronic, "black wireless headphones", base.Add(time.Minute)),
			resolvedItem("found-1", model.ReportFound, "north", model.CategoryElectronic, "black wireless headphones", base.Add(time.Hour)),
		}

		history := BuildHistory(items)
		require.Len(t, history, 2)

		require.True(t, history[0].IsPair())
		assert.Equal(t, "lost-1", history[0].Lost.ID)
		assert.Equal(t, "found-1", history[0].Found.ID)

		assert.False(t, history[1].IsPair())
		assert.Equal(t, "lost-2", history[1].Item.ID)
	})

	t.Run("lost item claims its highest-scoring found item", func(t *testing.T) {
		items := []model.Item{
			resolvedItem("lost-1", model.ReportLost, "north", model.CategoryElectronic, "black wireless headphones", base),
			resolvedItem("found-weak", model.ReportFound, "north", model.CategoryElectronic, "headphones with broken cable and scratched case", base.Add(time.Hour)),
			resolvedItem("found-strong", model.ReportFound, "north", model.CategoryElectronic, "black wireless headphones", base.Add(2*time.Hour)),
		}

		history := BuildHistory(items)
		require.Len(t, history, 2)
		require.True(t, history[0].IsPair())
		assert.Equal(t, "found-strong", history[0].Found.ID)

		assert.False(t, history[1].IsPair())
		assert.Equal(t, "found-weak", history[1].Item.ID)
	})

	t.Run("category and campus agreement counts toward the score", func(t *testing.T) {
		// Descriptions share nothing, but the composite text still
		// overlaps on category and campus tokens.
		lost := resolvedItem("lost-1", model.ReportLost, "casablanca", model.CategoryElectronic, "laptop charger", base)
		found := resolvedItem("found-1", model.ReportFound, "casablanca", model.CategoryElectronic, "power adapter", base.Add(time.Hour))

		history := BuildHistoryWithFloor([]model.Item{lost, found}, 0.1)
		require.Len(t, history, 1)
		assert.True(t, history[0].IsPair())
	})

	t.Run("unclaimed found items are appended as singletons", func(t *testing.T) {
		items := []model.Item{
			resolvedItem("found-1", model.ReportFound, "north", model.CategoryOthers, "umbrella", base),
			resolvedItem("found-2", model.ReportFound, "south", model.CategoryKeys, "keychain", base.Add(time.Hour)),
		}

		history := BuildHistory(items)
		require.Len(t, history, 2)
		assert.Equal(t, "found-1", history[0].Item.ID)
		assert.Equal(t, "found-2", history[1].Item.ID)
	})

	t.Run("recomputation is deterministic", func(t *testing.T) {
		items := []model.Item{
			resolvedItem("lost-1", model.ReportLost, "north", model.CategoryElectronic, "black wireless headphones", base),
			resolvedItem("lost-2", model.ReportLost, "north", model.CategoryKeys, "dorm keys on a red keychain", base.Add(time.Minute)),
			resolvedItem("found-1", model.ReportFound, "north", model.CategoryElectronic, "black wireless headphones", base.Add(time.Hour)),
			resolvedItem("found-2", model.ReportFound, "north", model.CategoryKeys, "red keychain with dorm keys", base.Add(2*time.Hour)),
		}

		first := BuildHistory(items)
		second := BuildHistory(items)
		require.Equal(t, len(first), len(second))
		for i := range first {
			assert.Equal(t, first[i].IsPair(), second[i].IsPair())
			if first[i].IsPair() {
				assert.Equal(t, first[i].Lost.ID, second[i].Lost.ID)
				assert.Equal(t, first[i].Found.ID, second[i].Found.ID)
			}
		}
	})
}
