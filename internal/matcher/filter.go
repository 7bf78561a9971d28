package matcher

import (
	"context"
	"fmt"
	"strings"

	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
	"github.com/techtitans/foundit/internal/similarity"
)

// strictCandidates narrows the universe with the full hard filter:
// opposite type, open status, same campus, same category. This is the
// creation-time path, tuned for precision.
func (e *Engine) strictCandidates(ctx context.Context, item *model.Item) ([]model.Item, error) {
	candidates, err := e.storage.ListItems(ctx, service.ItemFilter{
		Type:     item.Type.Opposite(),
		Status:   model.StatusOpen,
		Campus:   item.Campus,
		Category: item.Category,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	return excludeSelf(candidates, item.ID), nil
}

// relaxedCandidates is the staged on-demand path. Hard-filter misses
// (a wrong category tag, inconsistent tagging) must not leave the user
// with zero findable matches, so it starts from (opposite type + open)
// and applies a soft keyword pre-filter scoped to the item's campus.
// If that yields nothing, it falls back to campus-only scope.
func (e *Engine) relaxedCandidates(ctx context.Context, item *model.Item) ([]model.AnnotatedCandidate, error) {
	all, err := e.storage.ListItems(ctx, service.ItemFilter{
		Type:   item.Type.Opposite(),
		Status: model.StatusOpen,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	all = excludeSelf(all, item.ID)

	keywords := similarity.Keywords(item.Description)

	var annotated []model.AnnotatedCandidate
	for _, candidate := range all {
		if candidate.Campus != item.Campus {
			continue
		}
		if hasKeyword(candidate.Description, keywords) {
			annotated = append(annotated, model.AnnotatedCandidate{
				Item:  candidate,
				Label: model.LabelKeywordMatch,
			})
		}
	}

	if len(annotated) > 0 {
		return annotated, nil
	}

	// Keyword pre-filter found nothing; widen to everything on the campus.
	for _, candidate := range all {
		if candidate.Campus != item.Campus {
			continue
		}
		annotated = append(annotated, model.AnnotatedCandidate{
			Item:  candidate,
			Label: model.LabelPotentialMatch,
		})
	}
	return annotated, nil
}

// hasKeyword reports whether the description contains any of the
// target's significant keywords as a substring.
func hasKeyword(description string, keywords []string) bool {
	lowered := strings.ToLower(description)
	for _, keyword := range keywords {
		if strings.Contains(lowered, keyword) {
			return true
		}
	}
	return false
}

func excludeSelf(candidates []model.Item, selfID string) []model.Item {
	filtered := candidates[:0]
	for _, candidate := range candidates {
		if candidate.ID != selfID {
			filtered = append(filtered, candidate)
		}
	}
	return filtered
}
