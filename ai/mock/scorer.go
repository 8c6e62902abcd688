package mock

import (
	"context"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
)

// MockCandidateScorer is a test double for ai.CandidateScorer.
// It allows custom behavior injection via function fields.
type MockCandidateScorer struct {
	// ScoreCandidatesFunc is called by ScoreCandidates if set.
	// If nil, every candidate receives a neutral score.
	ScoreCandidatesFunc func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error)

	callCount int
}

// NewMockCandidateScorer creates a mock scorer with default neutral behavior.
// Note: Returns concrete type to allow test assertions via GetMockScorer().
func NewMockCandidateScorer() *MockCandidateScorer {
	return &MockCandidateScorer{}
}

// ScoreCandidates returns a neutral score for every candidate by default.
func (m *MockCandidateScorer) ScoreCandidates(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
	m.callCount++

	if m.ScoreCandidatesFunc != nil {
		return m.ScoreCandidatesFunc(ctx, query, user, candidates)
	}

	scores := make([]ai.CandidateScore, 0, len(candidates))
	for _, c := range candidates {
		scores = append(scores, ai.CandidateScore{
			AppID:      c.App.AppID,
			Relevance:  5.0,
			Confidence: 0.5,
			Pitch:      "A reasonable match for your needs.",
		})
	}
	return scores, nil
}

// CallCount returns the number of times ScoreCandidates was called.
func (m *MockCandidateScorer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockCandidateScorer) Reset() {
	m.callCount = 0
	m.ScoreCandidatesFunc = nil
}
