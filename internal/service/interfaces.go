// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/techtitans/foundit/internal/model"
)

// ItemFilter defines filtering options for item queries. Zero-valued
// fields are not applied.
type ItemFilter struct {
	Type     model.ReportType
	Status   model.ItemStatus
	Campus   string
	Category string
	Contact  string
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Item operations
	SaveItem(ctx context.Context, item *model.Item) error
	GetItem(ctx context.Context, id string) (*model.Item, error)
	ListItems(ctx context.Context, filter ItemFilter) ([]model.Item, error)
	UpdateItem(ctx context.Context, id string, update ItemUpdate) error
	ResolveItem(ctx context.Context, id string, note string) error
	DeleteItem(ctx context.Context, id string) error
	ListResolvedItems(ctx context.Context) ([]model.Item, error)

	// Match record operations
	SaveMatchRecord(ctx context.Context, record *model.MatchRecord) error
	ListMatchRecords(ctx context.Context) ([]model.MatchRecord, error)
	GetMatchRecordBySource(ctx context.Context, sourceItemID string) (*model.MatchRecord, error)

	// User operations
	SaveUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByPhone(ctx context.Context, phone string) (*model.User, error)
	DeleteUserData(ctx context.Context, email string) (int, error)

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}

// ItemUpdate names the editable item fields. Report type and campus are
// deliberately absent: they are the matcher's partition keys.
type ItemUpdate struct {
	Description *string
	Location    *string
	Contact     *string
	Category    *string
}

// Reasoner is the external semantic-reasoning collaborator. Both calls
// are best-effort: callers must treat any error as "no semantic result"
// and fall through to their deterministic path.
type Reasoner interface {
	// RankCandidates submits the target and the full candidate list in one
	// batch request and returns the reasoner's best candidate, if any.
	RankCandidates(ctx context.Context, target model.Item, candidates []model.Item) (Ranking, error)

	// AnalyzeItem extracts descriptive tags and a one-sentence summary
	// from a freshly reported item.
	AnalyzeItem(ctx context.Context, item model.Item) (Analysis, error)
}

// Ranking is the reasoner's verdict on a candidate set. An empty
// BestMatchID means no candidate cleared the reasoner's own threshold.
type Ranking struct {
	BestMatchID string
	Reason      string
	Confidence  int // 0-100
}

// Analysis is the reasoner's intake analysis of a new item.
type Analysis struct {
	Summary string
	Tags    []string
}

// Notifier delivers match notifications. Fire-and-forget: failures are
// logged by the caller, never propagated.
type Notifier interface {
	Notify(ctx context.Context, contact, message string) error
}

// RetryOptions configures retry behavior for collaborator calls.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// ProgressCallback reports progress during long-running operations.
type ProgressCallback func(current, total int, description string)
