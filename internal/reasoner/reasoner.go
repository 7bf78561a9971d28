package reasoner

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/techtitans/foundit/internal/common"
	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

// Reasoner implements service.Reasoner on top of a provider client, with
// rate limiting and retry. Every error it returns is recoverable: callers
// fall through to the deterministic tier.
type Reasoner struct {
	client      Client
	logger      *slog.Logger
	rateLimiter *rateLimiter
	retryOpts   service.RetryOptions
}

// New creates a reasoner for the configured provider.
func New(cfg Config, logger *slog.Logger) (*Reasoner, error) {
	client, err := newClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create reasoner client: %w", err)
	}

	retryOpts := service.RetryOptions{
		MaxAttempts:  cfg.MaxRetries,
		InitialDelay: cfg.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}
	if retryOpts.MaxAttempts == 0 {
		retryOpts.MaxAttempts = 3
	}
	if retryOpts.InitialDelay == 0 {
		retryOpts.InitialDelay = time.Second
	}

	return &Reasoner{
		client:      client,
		logger:      logger,
		retryOpts:   retryOpts,
		rateLimiter: newRateLimiter(cfg.RateLimit),
	}, nil
}

// RankCandidates submits the target and the full candidate list in one
// batch request and returns the provider's verdict.
func (r *Reasoner) RankCandidates(ctx context.Context, target model.Item, candidates []model.Item) (service.Ranking, error) {
	if len(candidates) == 0 {
		return service.Ranking{}, nil
	}

	if err := r.rateLimiter.wait(ctx); err != nil {
		return service.Ranking{}, fmt.Errorf("rate limit error: %w", err)
	}

	prompt, err := buildRankPrompt(target, candidates)
	if err != nil {
		return service.Ranking{}, err
	}

	var parsed RankResponse
	retryErr := common.WithRetry(ctx, func() error {
		content, completeErr := r.client.Complete(ctx, prompt)
		if completeErr != nil {
			r.logger.Warn("reasoner ranking attempt failed",
				"error", completeErr,
				"item_id", target.ID)
			return &common.RetryableError{Err: completeErr, Retryable: true}
		}

		var parseErr error
		parsed, parseErr = parseRankResponse(content)
		if parseErr != nil {
			r.logger.Warn("unparsable reasoner ranking",
				"error", parseErr,
				"item_id", target.ID)
			return &common.RetryableError{Err: parseErr, Retryable: true}
		}
		return nil
	}, r.retryOpts)

	if retryErr != nil {
		return service.Ranking{}, fmt.Errorf("ranking failed: %w", retryErr)
	}

	r.logger.Info("candidates ranked",
		"item_id", target.ID,
		"candidate_count", len(candidates),
		"best_match_id", parsed.BestMatchID,
		"confidence", parsed.Confidence)

	return service.Ranking{
		BestMatchID: parsed.BestMatchID,
		Confidence:  parsed.Confidence,
		Reason:      parsed.Reason,
	}, nil
}

// AnalyzeItem extracts descriptive tags and a one-sentence summary from a
// freshly reported item.
func (r *Reasoner) AnalyzeItem(ctx context.Context, item model.Item) (service.Analysis, error) {
	if err := r.rateLimiter.wait(ctx); err != nil {
		return service.Analysis{}, fmt.Errorf("rate limit error: %w", err)
	}

	prompt := buildAnalysisPrompt(item)

	var parsed AnalysisResponse
	retryErr := common.WithRetry(ctx, func() error {
		content, completeErr := r.client.Complete(ctx, prompt)
		if completeErr != nil {
			r.logger.Warn("reasoner analysis attempt failed",
				"error", completeErr,
				"item_id", item.ID)
			return &common.RetryableError{Err: completeErr, Retryable: true}
		}

		var parseErr error
		parsed, parseErr = parseAnalysisResponse(content)
		if parseErr != nil {
			r.logger.Warn("unparsable reasoner analysis",
				"error", parseErr,
				"item_id", item.ID)
			return &common.RetryableError{Err: parseErr, Retryable: true}
		}
		return nil
	}, r.retryOpts)

	if retryErr != nil {
		return service.Analysis{}, fmt.Errorf("analysis failed: %w", retryErr)
	}

	r.logger.Info("item analyzed",
		"item_id", item.ID,
		"tag_count", len(parsed.Tags))

	return service.Analysis{
		Tags:    parsed.Tags,
		Summary: parsed.ShortDescription,
	}, nil
}

// Close stops background goroutines and cleans up resources.
func (r *Reasoner) Close() error {
	if r.rateLimiter != nil {
		r.rateLimiter.Close()
	}
	return nil
}

// rankCandidate is the candidate projection sent to the provider.
type rankCandidate struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Location    string   `json:"location"`
	Tags        []string `json:"tags"`
}

// buildRankPrompt creates the batch ranking prompt.
func buildRankPrompt(target model.Item, candidates []model.Item) (string, error) {
	projected := make([]rankCandidate, len(candidates))
	for i, c := range candidates {
		projected[i] = rankCandidate{
			ID:          c.ID,
			Description: c.Description,
			Location:    c.Location,
			Tags:        c.Tags,
		}
	}

	candidatesJSON, err := json.Marshal(projected)
	if err != nil {
		return "", fmt.Errorf("failed to encode candidates: %w", err)
	}

	tagsJSON, err := json.Marshal(target.Tags)
	if err != nil {
		return "", fmt.Errorf("failed to encode tags: %w", err)
	}

	return fmt.Sprintf(`I have a NEW item and a list of CANDIDATE items from a campus lost and found.
Goal: Identify if any candidate semantically matches the description of the new item with > 65%% confidence.

NEW ITEM:
Description: %q
Location: %q
Tags: %s

CANDIDATES:
%s

Task:
Compare the NEW ITEM to each CANDIDATE.
Return a JSON object:
{
    "bestMatchId": "id_of_best_match" or null,
    "confidence": number (0-100),
    "reason": "explanation of why it matches"
}
If confidence < 65, set bestMatchId to null.
Do not use markdown. Raw JSON only.`,
		target.Description,
		target.Location,
		string(tagsJSON),
		string(candidatesJSON)), nil
}

// buildAnalysisPrompt creates the intake analysis prompt.
func buildAnalysisPrompt(item model.Item) string {
	return fmt.Sprintf(`Analyze this item for a lost and found database.
Context: Item reported at %s, Category: %s.
Description: %q

Return a JSON object with:
- "tags": array of 5 strings describing features (color, object type, specific details).
- "shortDescription": a clean 1-sentence summary.
Do not use markdown code blocks. Just the Raw JSON string.`,
		item.Campus,
		item.Category,
		item.Description)
}
