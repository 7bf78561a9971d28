package matcher

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/similarity"
)

// rank selects the best match (or none) from a candidate set.
//
// Tier 1 submits the whole candidate set to the semantic reasoner in one
// batch request. A verdict below the confidence threshold is a terminal
// no-match. Any reasoner failure (timeout, unparsable response, a
// returned ID that is not in the candidate set) degrades to tier 2, the
// deterministic similarity scorer, so the system stays useful when the
// external call is slow, rate-limited, or down.
func (e *Engine) rank(ctx context.Context, target *model.Item, candidates []model.Item) model.RankResult {
	if len(candidates) == 0 {
		return model.RankResult{}
	}

	if e.reasoner != nil {
		ranking, err := e.reasoner.RankCandidates(ctx, *target, candidates)
		if err == nil {
			if ranking.BestMatchID == "" || ranking.Confidence < e.config.MinConfidence {
				slog.Info("no semantic match above threshold",
					"item_id", target.ID,
					"confidence", ranking.Confidence)
				return model.RankResult{}
			}

			if best := findCandidate(candidates, ranking.BestMatchID); best != nil {
				return model.RankResult{
					BestMatch:  best,
					Confidence: ranking.Confidence,
					Reason:     ranking.Reason,
				}
			}

			// The reasoner picked an ID outside the candidate set; it is
			// hallucinating or the item vanished mid-flight.
			slog.Warn("reasoner returned unknown candidate, falling back",
				"item_id", target.ID,
				"best_match_id", ranking.BestMatchID)
		} else {
			slog.Warn("semantic ranking failed, falling back to similarity scorer",
				"item_id", target.ID,
				"error", err)
		}
	}

	return e.rankBySimilarity(target, candidates)
}

// rankBySimilarity is the deterministic tier: Jaccard similarity of the
// descriptions, a configurable floor, ties broken by earliest createdAt.
func (e *Engine) rankBySimilarity(target *model.Item, candidates []model.Item) model.RankResult {
	var best *model.Item
	bestScore := 0.0

	for i := range candidates {
		candidate := &candidates[i]
		score := similarity.Score(target.Description, candidate.Description)
		if score <= e.config.SimilarityFloor {
			continue
		}

		switch {
		case best == nil || score > bestScore:
			best = candidate
			bestScore = score
		case score == bestScore && candidate.CreatedAt.Before(best.CreatedAt):
			best = candidate
		}
	}

	if best == nil {
		return model.RankResult{Degraded: true}
	}

	confidence := int(math.Round(bestScore * 100))
	return model.RankResult{
		BestMatch:  best,
		Confidence: confidence,
		Reason:     fmt.Sprintf("descriptions share %d%% of their significant words", confidence),
		Degraded:   true,
	}
}

func findCandidate(candidates []model.Item, id string) *model.Item {
	for i := range candidates {
		if candidates[i].ID == id {
			return &candidates[i]
		}
	}
	return nil
}
