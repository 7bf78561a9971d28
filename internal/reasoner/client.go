// Package reasoner implements the external semantic-reasoning collaborator
// used by the matching engine: batch candidate ranking and item intake
// analysis over an LLM provider API.
package reasoner

import (
	"context"
	"time"
)

// Client defines the interface for reasoner providers.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Config holds configuration for the reasoner.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   int
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// RankResponse is the parsed ranking verdict from the provider.
type RankResponse struct {
	BestMatchID string `json:"bestMatchId"`
	Reason      string `json:"reason"`
	Confidence  int    `json:"confidence"`
}

// AnalysisResponse is the parsed intake analysis from the provider.
type AnalysisResponse struct {
	ShortDescription string   `json:"shortDescription"`
	Tags             []string `json:"tags"`
}
