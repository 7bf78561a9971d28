// Package pairing reconstructs likely lost/found pairs from resolved
// items for the admin resolution history.
package pairing

import (
	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/similarity"
)

// DefaultScoreFloor is the minimum similarity for claiming a pair.
const DefaultScoreFloor = 0.2

// BuildHistory partitions resolved items into reconstructed lost/found
// pairs and singletons.
//
// The assignment is greedy first-fit over the lost pool in input order:
// each lost item claims the highest-scoring unclaimed found item above
// the floor, and never revisits the decision. Callers that need
// reproducible output must pass items in a fixed order (the repository
// returns them createdAt ascending). This is not a globally optimal
// assignment, and recomputing it is idempotent and side-effect-free.
func BuildHistory(resolved []model.Item) []model.HistoryEntry {
	return BuildHistoryWithFloor(resolved, DefaultScoreFloor)
}

// BuildHistoryWithFloor is BuildHistory with a custom score floor.
func BuildHistoryWithFloor(resolved []model.Item, floor float64) []model.HistoryEntry {
	var lostItems, foundItems []model.Item
	for _, item := range resolved {
		switch item.Type {
		case model.ReportLost:
			lostItems = append(lostItems, item)
		case model.ReportFound:
			foundItems = append(foundItems, item)
		}
	}

	claimed := make(map[string]bool)
	history := make([]model.HistoryEntry, 0, len(resolved))

	for i := range lostItems {
		lost := &lostItems[i]

		var best *model.Item
		bestScore := 0.0
		for j := range foundItems {
			found := &foundItems[j]
			if claimed[found.ID] {
				continue
			}

			score := similarity.Score(compositeText(lost), compositeText(found))
			if score > floor && score > bestScore {
				best = found
				bestScore = score
			}
		}

		if best != nil {
			claimed[best.ID] = true
			history = append(history, model.HistoryEntry{
				Lost:  lost,
				Found: best,
				Score: bestScore,
			})
		} else {
			history = append(history, model.HistoryEntry{Item: lost})
		}
	}

	for i := range foundItems {
		if !claimed[foundItems[i].ID] {
			history = append(history, model.HistoryEntry{Item: &foundItems[i]})
		}
	}

	return history
}

// compositeText widens the similarity input beyond the description so
// that category and campus agreement count toward the score.
func compositeText(item *model.Item) string {
	return item.Description + " " + item.Category + " " + item.Campus
}
