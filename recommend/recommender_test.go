package recommend

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/ai/mock"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
	"github.com/poiesic/appscout/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecommender(t *testing.T) {
	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		r, err := NewRecommender(repo, provider)
		require.NoError(t, err)
		assert.NotNil(t, r)
		r.Release()
	})

	t.Run("with options", func(t *testing.T) {
		r, err := NewRecommender(repo, provider,
			WithRetrievalLimit(20),
			WithCandidatePool(12),
			WithRerankBatchSize(4),
			WithRerankConcurrency(2),
			WithRRFConstant(30),
			WithLogger(nil),
			WithMonitor(nil),
		)
		require.NoError(t, err)
		assert.NotNil(t, r)
		assert.Equal(t, 4, r.RerankBatchSize())
		r.Release()
	})

	t.Run("nil catalog", func(t *testing.T) {
		_, err := NewRecommender(nil, provider)
		assert.Equal(t, ErrCatalogRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewRecommender(repo, nil)
		assert.Equal(t, ErrAIProviderRequired, err)
	})
}

// seedSleepCatalog populates the corpus used by the end-to-end tests.
func seedSleepCatalog(t *testing.T, repo storage.CatalogRepository) {
	t.Helper()

	apps := []*core.App{
		{
			AppID:       "com.example.sleepwell",
			Name:        "Sleep Well",
			Category:    "Health",
			Rating:      4.5,
			RatingCount: 1200,
			Description: "Relaxing sounds and sleep stories",
			Keywords:    map[string]float64{"sleep": 0.9, "relax": 0.7},
			Vector:      []float32{1, 0, 0},
		},
		{
			AppID:       "com.example.calmmind",
			Name:        "Calm Mind",
			Category:    "Health",
			Rating:      4.2,
			RatingCount: 800,
			Description: "Guided meditation",
			Keywords:    map[string]float64{"relax": 0.5, "meditation": 0.8},
			Vector:      []float32{0.9, 0.43589, 0},
		},
		{
			AppID:       "com.example.budget",
			Name:        "Budget Tracker",
			Category:    "Finance",
			Rating:      4.7,
			RatingCount: 5000,
			Description: "Track expenses and budgets",
			Keywords:    map[string]float64{"budget": 0.8, "expense": 0.6},
			Vector:      []float32{0, 0, 1},
		},
	}
	_, err := repo.AddApps(context.Background(), apps...)
	require.NoError(t, err)
}

// sleepProvider wires deterministic stub behaviors for the sleep query.
func sleepProvider() *mock.MockProvider {
	provider := mock.NewMockProvider()
	provider.GetMockAnalyzer().AnalyzeIntentFunc = func(ctx context.Context, query string) (*core.QueryIntent, error) {
		return &core.QueryIntent{
			MainTopic:     "sleep",
			UserGoal:      "relax and fall asleep",
			IntentType:    core.IntentSolve,
			KeyConcepts:   []string{"sleep", "relax"},
			SemanticQuery: "relaxing sleep sounds",
			Confidence:    0.9,
		}, nil
	}
	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		scores := make([]ai.CandidateScore, len(candidates))
		for i, c := range candidates {
			rel := 5.0
			if c.App.AppID == "com.example.sleepwell" {
				rel = 9.0
			}
			scores[i] = ai.CandidateScore{
				AppID:         c.App.AppID,
				Relevance:     rel,
				Confidence:    0.85,
				Pitch:         "Worth a try",
				Justification: "Fits the stated need",
			}
		}
		return scores, nil
	}
	return provider
}

func newSeededRecommender(t *testing.T, provider *mock.MockProvider) *Recommender {
	t.Helper()

	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	seedSleepCatalog(t, repo)

	r, err := NewRecommender(repo, provider)
	require.NoError(t, err)
	t.Cleanup(r.Release)
	return r
}

func TestSearch_EndToEnd(t *testing.T) {
	r := newSeededRecommender(t, sleepProvider())

	results, err := r.Search(context.Background(), "apps to help me relax and sleep at night", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	assert.Equal(t, "com.example.sleepwell", results[0].App.AppID)
	assert.Equal(t, 1, results[0].Rank)
	assert.NotEmpty(t, results[0].Explanation)

	// Sleep Well is found by both paths.
	assert.Equal(t, "semantic+keyword", results[0].MethodsLabel())

	// The finance app has no lexical or semantic hit for this query.
	for _, res := range results {
		assert.NotEqual(t, "com.example.budget", res.App.AppID)
	}

	// Ranks are dense and 1-based.
	for i, res := range results {
		assert.Equal(t, i+1, res.Rank)
	}
}

func TestSearch_DeterministicUnderFixedInputs(t *testing.T) {
	r := newSeededRecommender(t, sleepProvider())

	first, err := r.Search(context.Background(), "apps to help me relax and sleep at night", 10, nil)
	require.NoError(t, err)
	second, err := r.Search(context.Background(), "apps to help me relax and sleep at night", 10, nil)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].App.AppID, second[i].App.AppID)
		assert.Equal(t, first[i].FinalScore, second[i].FinalScore)
		assert.Equal(t, first[i].Rank, second[i].Rank)
		assert.Equal(t, first[i].Breakdown, second[i].Breakdown)
	}
}

func TestSearch_FallbackWhenLanguageServiceDown(t *testing.T) {
	provider := mock.NewMockProvider()
	provider.GetMockAnalyzer().AnalyzeIntentFunc = func(ctx context.Context, query string) (*core.QueryIntent, error) {
		return nil, errors.New("service down")
	}
	provider.GetMockEmbedder().EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return []float32{1, 0, 0}, nil
	}
	provider.GetMockScorer().ScoreCandidatesFunc = func(ctx context.Context, query string, user *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
		return nil, errors.New("service down")
	}

	r := newSeededRecommender(t, provider)

	results, err := r.Search(context.Background(), "relax sleep sounds", 10, nil)
	require.NoError(t, err)
	require.NotEmpty(t, results)

	// With scoring down, the final order is the pure fusion order and
	// every score equals its fused retrieval score.
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].FinalScore, results[i].FinalScore)
	}
	assert.Equal(t, fallbackExplanation, results[0].Explanation)
}

func TestSearch_AvoidCategoriesExcluded(t *testing.T) {
	provider := sleepProvider()
	provider.GetMockAnalyzer().AnalyzeIntentFunc = func(ctx context.Context, query string) (*core.QueryIntent, error) {
		return &core.QueryIntent{
			MainTopic:       "sleep",
			IntentType:      core.IntentSolve,
			KeyConcepts:     []string{"sleep", "relax"},
			AvoidCategories: []string{"health"},
			SemanticQuery:   "relaxing sleep sounds",
			Confidence:      0.9,
		}, nil
	}

	r := newSeededRecommender(t, provider)

	results, err := r.Search(context.Background(), "relax and sleep", 10, nil)
	require.NoError(t, err)

	for _, res := range results {
		assert.NotEqual(t, "Health", res.App.Category)
	}
}

func TestSearch_EmptyCatalogIsEmptyResult(t *testing.T) {
	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	defer func() {
		repo.Close()
		backend.Close()
	}()

	r, err := NewRecommender(repo, sleepProvider())
	require.NoError(t, err)
	defer r.Release()

	results, err := r.Search(context.Background(), "anything at all", 10, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearch_CorpusUnavailableIsFatal(t *testing.T) {
	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	repo.Close()

	r, err := NewRecommender(repo, sleepProvider())
	require.NoError(t, err)
	defer r.Release()

	// Closing the backend makes every catalog read fail.
	require.NoError(t, backend.Close())

	_, err = r.Search(context.Background(), "relax and sleep", 10, nil)
	assert.ErrorIs(t, err, ErrCorpusUnavailable)
}

func TestSearch_ValidatesQuery(t *testing.T) {
	r := newSeededRecommender(t, sleepProvider())

	_, err := r.Search(context.Background(), "", 10, nil)
	assert.ErrorIs(t, err, core.ErrEmptyQuery)
}

func TestSearch_RespectsLimit(t *testing.T) {
	r := newSeededRecommender(t, sleepProvider())

	results, err := r.Search(context.Background(), "relax and sleep", 1, nil)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 1)
}

func TestSearch_MonitorReceivesCallbacks(t *testing.T) {
	monitor := &recordingMonitor{}
	provider := sleepProvider()

	repo, backend, err := badger.NewMemoryCatalogRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	seedSleepCatalog(t, repo)

	r, err := NewRecommender(repo, provider, WithMonitor(monitor))
	require.NoError(t, err)
	t.Cleanup(r.Release)

	_, err = r.Search(context.Background(), "relax and sleep", 10, nil)
	require.NoError(t, err)

	assert.True(t, monitor.started)
	assert.True(t, monitor.intentSeen)
	assert.True(t, monitor.fusionSeen)
	assert.True(t, monitor.finished)
}

type recordingMonitor struct {
	started    bool
	intentSeen bool
	fusionSeen bool
	finished   bool
}

func (m *recordingMonitor) Start(_ string)                                   { m.started = true }
func (m *recordingMonitor) AfterIntentAnalysis(_ *core.QueryIntent, _ bool)  { m.intentSeen = true }
func (m *recordingMonitor) AfterLexicalRetrieval(_ []*core.CandidateResult)  {}
func (m *recordingMonitor) AfterSemanticRetrieval(_ []*core.CandidateResult) {}
func (m *recordingMonitor) AfterFusion(_ []*core.FusedResult)                { m.fusionSeen = true }
func (m *recordingMonitor) AfterRerank(_ []*core.RankedResult)               {}
func (m *recordingMonitor) Finish(_ []*core.RankedResult)                    { m.finished = true }
