package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/ai/mock"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRecommender(t *testing.T, provider *mock.MockProvider, opts ...Option) *Recommender {
	t.Helper()

	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	r, err := NewRecommender(repo, provider, opts...)
	require.NoError(t, err)
	t.Cleanup(r.Release)

	return r
}

func fusedFor(appID string, score float64) *core.FusedResult {
	return &core.FusedResult{
		App:     &core.App{AppID: appID, Name: appID},
		Score:   score,
		Sources: []core.RetrievalSource{core.SourceKeyword},
	}
}

func TestRerank_ScoreFormula(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		return []ai.CandidateScore{
			{AppID: "top", Relevance: 8.0, Confidence: 0.9, Pitch: "Great fit", Justification: "Matches the goal"},
		}, nil
	}
	r := newTestRecommender(t, provider)

	results := r.rerank(context.Background(), "query", nil, []*core.FusedResult{fusedFor("top", 0.5)})
	require.Len(t, results, 1)

	// Sole candidate normalizes to 1.0:
	// 0.3*1.0 + 0.7*(8/10) + 0.1 confidence bonus
	assert.InDelta(t, 0.3+0.56+0.1, results[0].FinalScore, 1e-9)
	assert.InDelta(t, 0.3, results[0].Breakdown.Retrieval, 1e-9)
	assert.InDelta(t, 0.56, results[0].Breakdown.LLM, 1e-9)
	assert.InDelta(t, 0.1, results[0].Breakdown.ConfidenceBonus, 1e-9)
	assert.Equal(t, "Great fit", results[0].Pitch)
	assert.Equal(t, "Matches the goal", results[0].Explanation)
}

func TestRerank_NoConfidenceBonusAtThreshold(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		return []ai.CandidateScore{
			{AppID: "a", Relevance: 5.0, Confidence: 0.8},
		}, nil
	}
	r := newTestRecommender(t, provider)

	results := r.rerank(context.Background(), "query", nil, []*core.FusedResult{fusedFor("a", 0.5)})
	require.Len(t, results, 1)

	// Bonus requires confidence strictly above 0.8.
	assert.Zero(t, results[0].Breakdown.ConfidenceBonus)
}

func TestRerank_BatchFallbackOnFailure(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		return nil, errors.New("service down")
	}
	r := newTestRecommender(t, provider)

	pool := []*core.FusedResult{fusedFor("a", 0.6), fusedFor("b", 0.4)}
	results := r.rerank(context.Background(), "query", nil, pool)
	require.Len(t, results, 2)

	// Every candidate survives with its fusion score and a generic
	// explanation.
	assert.InDelta(t, 0.6, results[0].FinalScore, 1e-9)
	assert.InDelta(t, 0.4, results[1].FinalScore, 1e-9)
	assert.Equal(t, fallbackExplanation, results[0].Explanation)
	assert.Equal(t, fallbackExplanation, results[1].Explanation)
}

func TestRerank_RetriesTransientErrorOnce(t *testing.T) {
	calls := 0
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection reset")
		}
		return []ai.CandidateScore{{AppID: "a", Relevance: 7.0, Confidence: 0.6}}, nil
	}
	r := newTestRecommender(t, provider)

	results := r.rerank(context.Background(), "query", nil, []*core.FusedResult{fusedFor("a", 0.5)})
	require.Len(t, results, 1)

	assert.Equal(t, 2, calls)
	assert.InDelta(t, 0.3+0.49, results[0].FinalScore, 1e-9)
}

func TestRerank_NoRetryOnMalformedResponse(t *testing.T) {
	calls := 0
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		calls++
		return nil, ai.ErrMalformedResponse
	}
	r := newTestRecommender(t, provider)

	results := r.rerank(context.Background(), "query", nil, []*core.FusedResult{fusedFor("a", 0.5)})
	require.Len(t, results, 1)

	// Malformed content is a bug, not a transient fault.
	assert.Equal(t, 1, calls)
	assert.InDelta(t, 0.5, results[0].FinalScore, 1e-9)
}

func TestRerank_MissingCandidateRetainedNeutrally(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		// The service only scores one of the two candidates.
		return []ai.CandidateScore{{AppID: "a", Relevance: 9.0, Confidence: 0.9}}, nil
	}
	r := newTestRecommender(t, provider)

	pool := []*core.FusedResult{fusedFor("a", 0.6), fusedFor("b", 0.4)}
	results := r.rerank(context.Background(), "query", nil, pool)
	require.Len(t, results, 2)

	assert.InDelta(t, 0.4, results[1].FinalScore, 1e-9)
	assert.Equal(t, fallbackExplanation, results[1].Explanation)
}

func TestRerank_SplitsIntoBatches(t *testing.T) {
	var batchSizes []int
	provider := mock.NewMockProvider()
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		batchSizes = append(batchSizes, len(candidates))
		scores := make([]ai.CandidateScore, len(candidates))
		for i, c := range candidates {
			scores[i] = ai.CandidateScore{AppID: c.App.AppID, Relevance: 5.0, Confidence: 0.5}
		}
		return scores, nil
	}
	// Single worker so the size log is append-safe.
	r := newTestRecommender(t, provider, WithRerankBatchSize(2), WithRerankConcurrency(1))

	pool := []*core.FusedResult{
		fusedFor("a", 0.5), fusedFor("b", 0.4), fusedFor("c", 0.3),
		fusedFor("d", 0.2), fusedFor("e", 0.1),
	}
	results := r.rerank(context.Background(), "query", nil, pool)

	assert.Len(t, results, 5)
	assert.Equal(t, []int{2, 2, 1}, batchSizes)
}
