package reasoner

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

// stubClient scripts provider responses per call.
type stubClient struct {
	responses []string
	errs      []error
	prompts   []string
	calls     int
}

func (c *stubClient) Complete(_ context.Context, prompt string) (string, error) {
	c.prompts = append(c.prompts, prompt)
	i := c.calls
	c.calls++
	if i < len(c.errs) && c.errs[i] != nil {
		return "", c.errs[i]
	}
	if i < len(c.responses) {
		return c.responses[i], nil
	}
	return "", errors.New("no scripted response")
}

func newTestReasoner(client Client) *Reasoner {
	return &Reasoner{
		client:      client,
		logger:      slog.Default(),
		rateLimiter: newRateLimiter(0),
		retryOpts: service.RetryOptions{
			MaxAttempts:  2,
			InitialDelay: time.Millisecond,
			MaxDelay:     10 * time.Millisecond,
		},
	}
}

func testTarget() model.Item {
	return model.Item{
		ID:          "target-1",
		Description: "black wireless headphones",
		Location:    "library",
		Tags:        []string{"electronic", "headphones"},
	}
}

func testCandidates() []model.Item {
	return []model.Item{
		{ID: "cand-1", Description: "headphones near gym", Location: "gym", Tags: []string{"electronic"}},
		{ID: "cand-2", Description: "blue umbrella", Location: "cafeteria"},
	}
}

func TestRankCandidates(t *testing.T) {
	ctx := context.Background()

	t.Run("returns parsed verdict", func(t *testing.T) {
		client := &stubClient{responses: []string{
			`{"bestMatchId": "cand-1", "confidence": 80, "reason": "same headphones"}`,
		}}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		ranking, err := r.RankCandidates(ctx, testTarget(), testCandidates())
		require.NoError(t, err)
		assert.Equal(t, "cand-1", ranking.BestMatchID)
		assert.Equal(t, 80, ranking.Confidence)
		assert.Equal(t, "same headphones", ranking.Reason)
	})

	t.Run("prompt carries target and every candidate", func(t *testing.T) {
		client := &stubClient{responses: []string{
			`{"bestMatchId": null, "confidence": 0, "reason": "none"}`,
		}}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		_, err := r.RankCandidates(ctx, testTarget(), testCandidates())
		require.NoError(t, err)

		require.Len(t, client.prompts, 1)
		prompt := client.prompts[0]
		assert.Contains(t, prompt, "black wireless headphones")
		assert.Contains(t, prompt, "cand-1")
		assert.Contains(t, prompt, "cand-2")
		assert.Contains(t, prompt, "bestMatchId")
	})

	t.Run("empty candidate set short-circuits", func(t *testing.T) {
		client := &stubClient{}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		ranking, err := r.RankCandidates(ctx, testTarget(), nil)
		require.NoError(t, err)
		assert.Empty(t, ranking.BestMatchID)
		assert.Zero(t, client.calls)
	})

	t.Run("retries transient failures", func(t *testing.T) {
		client := &stubClient{
			errs: []error{errors.New("temporarily overloaded"), nil},
			responses: []string{
				"",
				`{"bestMatchId": "cand-1", "confidence": 75, "reason": "match"}`,
			},
		}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		ranking, err := r.RankCandidates(ctx, testTarget(), testCandidates())
		require.NoError(t, err)
		assert.Equal(t, "cand-1", ranking.BestMatchID)
		assert.Equal(t, 2, client.calls)
	})

	t.Run("retries unparsable responses then fails", func(t *testing.T) {
		client := &stubClient{responses: []string{"not json", "still not json"}}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		_, err := r.RankCandidates(ctx, testTarget(), testCandidates())
		require.Error(t, err)
		assert.Equal(t, 2, client.calls)
	})
}

func TestAnalyzeItem(t *testing.T) {
	ctx := context.Background()

	t.Run("returns tags and summary", func(t *testing.T) {
		client := &stubClient{responses: []string{
			`{"shortDescription": "Black wireless headphones lost at the library.", "tags": ["black", "wireless", "headphones", "electronic", "audio"]}`,
		}}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		analysis, err := r.AnalyzeItem(ctx, model.Item{
			ID:          "item-1",
			Campus:      "north",
			Category:    model.CategoryElectronic,
			Description: "black wireless headphones",
		})
		require.NoError(t, err)
		assert.Equal(t, "Black wireless headphones lost at the library.", analysis.Summary)
		assert.Len(t, analysis.Tags, 5)

		require.Len(t, client.prompts, 1)
		assert.Contains(t, client.prompts[0], "north")
		assert.Contains(t, client.prompts[0], "electronic")
	})

	t.Run("exhausted retries surface an error", func(t *testing.T) {
		client := &stubClient{errs: []error{errors.New("down"), errors.New("down")}}
		r := newTestReasoner(client)
		defer func() { _ = r.Close() }()

		_, err := r.AnalyzeItem(ctx, model.Item{ID: "item-1", Description: "keys"})
		require.Error(t, err)
	})
}
