package model

import (
	"time"

	"github.com/google/uuid"
)

// MatchRecord is an accepted pairing between two items. Records are
// append-only; the matching engine never mutates or deletes them.
type MatchRecord struct {
	CreatedAt     time.Time
	ID            string
	SourceItemID  string
	MatchedItemID string
	Reason        string
	Confidence    int // 0-100
}

// NewMatchRecordID returns a fresh identifier for a match record.
func NewMatchRecordID() string {
	return uuid.NewString()
}

// RankResult is the outcome of ranking a candidate set against a target
// item. A nil BestMatch is the normal no-match outcome, not an error.
type RankResult struct {
	BestMatch  *Item
	Reason     string
	Confidence int  // 0-100
	Degraded   bool // true when the deterministic tier produced the result
}

// Matched reports whether the ranker selected a candidate.
func (r RankResult) Matched() bool {
	return r.BestMatch != nil
}

// MatchLabel annotates how a candidate entered the exploration result set.
type MatchLabel string

// Candidate annotations for the exploration path.
const (
	LabelKeywordMatch   MatchLabel = "Keyword Match"
	LabelPotentialMatch MatchLabel = "Potential Match"
)

// AnnotatedCandidate is an exploration-path candidate with its annotation
// and a best-effort resolved contact email.
type AnnotatedCandidate struct {
	Item        Item
	Label       MatchLabel
	Email       string // resolved contact email, falls back to the raw contact
	ContactType string // "email" or "phone"
}
