// Package matcher implements the core matching engine that pairs lost
// reports with found reports.
package matcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/techtitans/foundit/internal/common"
	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

// Engine orchestrates the matching pipeline: candidate filtering, ranking
// and the match-record/notification side effects.
type Engine struct {
	storage  service.Storage
	reasoner service.Reasoner // optional; nil means deterministic tier only
	notifier service.Notifier
	config   Config
}

// Config holds the empirically chosen matching thresholds. They are
// parameters, not invariants.
type Config struct {
	MinConfidence   int     // accepted-match threshold, 0-100
	SimilarityFloor float64 // minimum Jaccard score for the fallback tier
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		MinConfidence:   65,
		SimilarityFloor: 0.2,
	}
}

// New creates a matching engine with the given dependencies. The reasoner
// may be nil, in which case only the deterministic tier runs.
func New(storage service.Storage, reasoner service.Reasoner, notifier service.Notifier) *Engine {
	return NewWithConfig(storage, reasoner, notifier, DefaultConfig())
}

// NewWithConfig creates a matching engine with custom configuration.
func NewWithConfig(storage service.Storage, reasoner service.Reasoner, notifier service.Notifier, config Config) *Engine {
	return &Engine{
		storage:  storage,
		reasoner: reasoner,
		notifier: notifier,
		config:   config,
	}
}

// ReportItem validates and persists a newly reported item, enriching it
// with intake analysis first, then runs the creation-time auto-match.
// Analysis and matching are best-effort: their failure never fails the
// report itself.
func (e *Engine) ReportItem(ctx context.Context, item *model.Item) (*model.MatchRecord, error) {
	if err := validateReport(item); err != nil {
		return nil, err
	}

	if item.ID == "" {
		item.ID = model.NewItemID()
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = time.Now().UTC()
	}
	item.Status = model.StatusOpen

	e.analyzeItem(ctx, item)

	if err := e.storage.SaveItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to save item: %w", err)
	}

	slog.Info("item reported",
		"item_id", item.ID,
		"type", item.Type,
		"campus", item.Campus,
		"category", item.Category)

	record, err := e.AutoMatch(ctx, item)
	if err != nil {
		// Matching failure is non-fatal; the item is already saved.
		slog.Error("auto-match failed", "item_id", item.ID, "error", err)
		return nil, nil
	}
	return record, nil
}

// AutoMatch runs the creation-time pipeline for an item: strict hard
// filter, ranking, and on an accepted match exactly one match record and
// one best-effort notification. A nil record with nil error is the
// normal no-match outcome.
func (e *Engine) AutoMatch(ctx context.Context, item *model.Item) (*model.MatchRecord, error) {
	candidates, err := e.strictCandidates(ctx, item)
	if err != nil {
		return nil, err
	}

	if len(candidates) == 0 {
		slog.Info("no candidates after hard filter", "item_id", item.ID)
		return nil, nil
	}

	slog.Info("candidates found by hard filter",
		"item_id", item.ID,
		"count", len(candidates))

	result := e.rank(ctx, item, candidates)
	if !result.Matched() || result.Confidence < e.config.MinConfidence {
		slog.Info("no match above confidence threshold",
			"item_id", item.ID,
			"degraded", result.Degraded)
		return nil, nil
	}

	// The candidate may have been deleted between the query and now.
	if _, err := e.storage.GetItem(ctx, result.BestMatch.ID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			slog.Warn("matched item disappeared, treating as no-match",
				"item_id", item.ID,
				"matched_item_id", result.BestMatch.ID)
			return nil, nil
		}
		return nil, err
	}

	record := &model.MatchRecord{
		ID:            model.NewMatchRecordID(),
		SourceItemID:  item.ID,
		MatchedItemID: result.BestMatch.ID,
		Confidence:    result.Confidence,
		Reason:        result.Reason,
		CreatedAt:     time.Now().UTC(),
	}

	if err := e.storage.SaveMatchRecord(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to save match record: %w", err)
	}

	slog.Info("match found",
		"item_id", item.ID,
		"matched_item_id", result.BestMatch.ID,
		"confidence", result.Confidence,
		"degraded", result.Degraded)

	if e.notifier != nil {
		if err := e.notifier.Notify(ctx, item.Contact, "Match Found! A possible match for your item has been reported."); err != nil {
			slog.Warn("notification failed", "item_id", item.ID, "error", err)
		}
	}

	return record, nil
}

// FindMatches is the read-only exploration path for an existing item. It
// uses the relaxed staged filter and annotates each candidate, resolving
// contact identifiers to an email where possible. No match record is
// created.
func (e *Engine) FindMatches(ctx context.Context, itemID string) ([]model.AnnotatedCandidate, error) {
	item, err := e.storage.GetItem(ctx, itemID)
	if err != nil {
		return nil, err
	}

	candidates, err := e.relaxedCandidates(ctx, item)
	if err != nil {
		return nil, err
	}

	slog.Info("exploration candidates",
		"item_id", itemID,
		"count", len(candidates))

	for i := range candidates {
		e.resolveContact(ctx, &candidates[i])
	}
	return candidates, nil
}

// Rematch re-runs the creation-time pipeline over every open item that
// has no match record yet. Returns the number of new match records.
func (e *Engine) Rematch(ctx context.Context, progress service.ProgressCallback) (int, error) {
	items, err := e.storage.ListItems(ctx, service.ItemFilter{Status: model.StatusOpen})
	if err != nil {
		return 0, fmt.Errorf("failed to list open items: %w", err)
	}

	matched := 0
	for i := range items {
		select {
		case <-ctx.Done():
			return matched, ctx.Err()
		default:
		}

		item := &items[i]
		if progress != nil {
			progress(i+1, len(items), item.Description)
		}

		if _, err := e.storage.GetMatchRecordBySource(ctx, item.ID); err == nil {
			continue // already matched
		} else if !errors.Is(err, common.ErrNotFound) {
			return matched, err
		}

		record, err := e.AutoMatch(ctx, item)
		if err != nil {
			slog.Error("rematch failed for item", "item_id", item.ID, "error", err)
			continue
		}
		if record != nil {
			matched++
		}
	}
	return matched, nil
}

// analyzeItem enriches a new item with reasoner tags and a summary,
// falling back to category-derived tags when the reasoner is
// unavailable or fails.
func (e *Engine) analyzeItem(ctx context.Context, item *model.Item) {
	if e.reasoner != nil {
		analysis, err := e.reasoner.AnalyzeItem(ctx, *item)
		if err == nil {
			item.Tags = analysis.Tags
			item.Summary = analysis.Summary
			return
		}
		slog.Warn("intake analysis failed, using fallback tags",
			"item_id", item.ID,
			"error", err)
	}

	if item.Category == model.CategoryElectronic {
		item.Tags = []string{"electronic", "gadget"}
	} else {
		item.Tags = []string{"item"}
	}
	item.Summary = item.Description
}

// resolveContact fills in the best-effort email for an annotated
// candidate. Phone-shaped contacts are looked up in the user profiles;
// failures fall back to the raw contact value.
func (e *Engine) resolveContact(ctx context.Context, candidate *model.AnnotatedCandidate) {
	contact := candidate.Item.Contact
	candidate.Email = contact

	if candidate.Item.IsContactEmail() {
		candidate.ContactType = "email"
		return
	}

	candidate.ContactType = "phone"
	user, err := e.storage.GetUserByPhone(ctx, contact)
	if err != nil {
		if !errors.Is(err, common.ErrNotFound) {
			slog.Warn("contact resolution failed", "contact", contact, "error", err)
		}
		return
	}
	candidate.Email = user.Email
}

// validateReport rejects an item missing required fields before any
// matching work begins.
func validateReport(item *model.Item) error {
	if item == nil {
		return fmt.Errorf("%w: item is nil", common.ErrInvalidItem)
	}
	if !item.Type.IsValid() {
		return fmt.Errorf("%w: report type must be lost or found", common.ErrInvalidItem)
	}
	if item.Campus == "" || item.Category == "" {
		return common.NewUserError("Please select a campus and category.", common.ErrInvalidItem)
	}
	if item.Description == "" {
		return common.NewUserError("Please describe the item.", common.ErrInvalidItem)
	}
	if item.Contact == "" {
		return common.NewUserError("Please provide a contact email or phone number.", common.ErrInvalidItem)
	}
	return nil
}
