package matcher

import (
	"context"
	"sync"

	"github.com/techtitans/foundit/internal/model"
	"github.com/techtitans/foundit/internal/service"
)

// MockReasoner is a test implementation of the service.Reasoner interface
// with scriptable results and call recording.
type MockReasoner struct {
	RankErr     error
	AnalyzeErr  error
	RankResult  service.Ranking
	Analysis    service.Analysis
	rankCalls   []MockRankCall
	analyzeSeen []model.Item
	mu          sync.Mutex
}

// MockRankCall records details of a ranking request.
type MockRankCall struct {
	Target     model.Item
	Candidates []model.Item
}

// NewMockReasoner creates a new mock reasoner.
func NewMockReasoner() *MockReasoner {
	return &MockReasoner{
		Analysis: service.Analysis{Tags: []string{"mock"}, Summary: "mock summary"},
	}
}

// RankCandidates returns the scripted ranking result.
func (m *MockReasoner) RankCandidates(_ context.Context, target model.Item, candidates []model.Item) (service.Ranking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rankCalls = append(m.rankCalls, MockRankCall{Target: target, Candidates: candidates})
	if m.RankErr != nil {
		return service.Ranking{}, m.RankErr
	}
	return m.RankResult, nil
}

// AnalyzeItem returns the scripted analysis result.
func (m *MockReasoner) AnalyzeItem(_ context.Context, item model.Item) (service.Analysis, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.analyzeSeen = append(m.analyzeSeen, item)
	if m.AnalyzeErr != nil {
		return service.Analysis{}, m.AnalyzeErr
	}
	return m.Analysis, nil
}

// RankCalls returns a copy of all recorded ranking calls.
func (m *MockReasoner) RankCalls() []MockRankCall {
	m.mu.Lock()
	defer m.mu.Unlock()

	calls := make([]MockRankCall, len(m.rankCalls))
	copy(calls, m.rankCalls)
	return calls
}
