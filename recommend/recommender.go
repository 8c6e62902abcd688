package recommend

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
	"github.com/poiesic/appscout/storage"
)

const (
	// DefaultResultLimit is the number of results returned when the caller
	// does not specify one.
	DefaultResultLimit = 10

	// DefaultRetrievalLimit caps how many candidates each retrieval path
	// contributes before fusion.
	DefaultRetrievalLimit = 50

	// DefaultCandidatePool is how many fused candidates go to the
	// language service for re-ranking (three batches at the default
	// batch size).
	DefaultCandidatePool = 18

	defaultCorpusPageSize = 500
)

// Recommender turns a free-text query into a ranked, explained list of
// apps by combining lexical and semantic retrieval, rank fusion, and
// LLM-driven intent analysis and re-ranking.
//
// A Recommender is stateless between queries; the only shared state is
// the read-only catalog and the bounded worker pool for scoring calls.
type Recommender struct {
	catalog  storage.CatalogRepository
	analyzer ai.IntentAnalyzer
	embedder ai.Embedder
	scorer   ai.CandidateScorer

	rerankPool      *ants.Pool
	rerankBatchSize int

	retrievalLimit int
	candidatePool  int
	rrfK           int
	corpusPageSize int

	monitor QueryMonitor
	logger  *slog.Logger
}

// Option configures a Recommender.
type Option func(*Recommender) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Recommender) error {
		if logger == nil {
			logger = slog.Default()
		}
		r.logger = logger
		return nil
	}
}

// WithMonitor sets a pipeline monitor that receives callbacks at each
// stage. Default is a no-op monitor.
func WithMonitor(monitor QueryMonitor) Option {
	return func(r *Recommender) error {
		if monitor == nil {
			monitor = &noopMonitor{}
		}
		r.monitor = monitor
		return nil
	}
}

// WithRetrievalLimit caps how many candidates each retrieval path produces.
func WithRetrievalLimit(limit int) Option {
	return func(r *Recommender) error {
		if limit < 1 {
			limit = 1
		}
		r.retrievalLimit = limit
		return nil
	}
}

// WithCandidatePool sets how many fused candidates are re-ranked.
func WithCandidatePool(size int) Option {
	return func(r *Recommender) error {
		if size < 1 {
			size = 1
		}
		r.candidatePool = size
		return nil
	}
}

// WithRerankBatchSize sets how many candidates go to the language service
// per scoring call. Default is DefaultRerankBatchSize.
func WithRerankBatchSize(size int) Option {
	return func(r *Recommender) error {
		if size < 1 {
			size = 1
		}
		r.rerankBatchSize = size
		return nil
	}
}

// WithRerankConcurrency bounds in-flight scoring calls.
// Default is DefaultRerankConcurrency.
func WithRerankConcurrency(size int) Option {
	return func(r *Recommender) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		if r.rerankPool != nil {
			r.rerankPool.Release()
		}
		r.rerankPool = pool
		return nil
	}
}

// WithRRFConstant sets the k in the rank fusion formula 1/(k+rank).
// Default is DefaultRRFConstant.
func WithRRFConstant(k int) Option {
	return func(r *Recommender) error {
		if k < 1 {
			k = DefaultRRFConstant
		}
		r.rrfK = k
		return nil
	}
}

// NewRecommender creates a new recommender over the given catalog and
// AI provider.
func NewRecommender(
	catalog storage.CatalogRepository,
	provider ai.AIProvider,
	opts ...Option,
) (*Recommender, error) {
	if catalog == nil {
		return nil, ErrCatalogRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	rerankPool, err := ants.NewPool(DefaultRerankConcurrency)
	if err != nil {
		return nil, err
	}

	r := &Recommender{
		catalog:         catalog,
		analyzer:        provider.IntentAnalyzer(),
		embedder:        provider.Embedder(),
		scorer:          provider.CandidateScorer(),
		rerankPool:      rerankPool,
		rerankBatchSize: DefaultRerankBatchSize,
		retrievalLimit:  DefaultRetrievalLimit,
		candidatePool:   DefaultCandidatePool,
		rrfK:            DefaultRRFConstant,
		corpusPageSize:  defaultCorpusPageSize,
		monitor:         &noopMonitor{},
		logger:          slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(r); err != nil {
			r.Release()
			return nil, err
		}
	}

	return r, nil
}

// RerankBatchSize reports how many candidates are sent to the language
// service per scoring call.
func (r *Recommender) RerankBatchSize() int {
	return r.rerankBatchSize
}

// Release releases the scoring worker pool.
// The recommender should not be used after calling Release.
func (r *Recommender) Release() {
	if r.rerankPool != nil {
		r.rerankPool.Release()
	}
}

// Search runs the full pipeline for a query and returns up to limit
// ranked results. Pass limit <= 0 for the default. The optional user
// context personalizes re-ranking; a caller-supplied timeout travels in
// ctx and degrades pending stages to their fallback paths.
//
// The caller always receives either a ranked list (possibly empty) or a
// single fatal error when the catalog is unreachable; partial upstream
// failures are absorbed by per-stage fallbacks.
func (r *Recommender) Search(ctx context.Context, query string, limit int, user *core.UserContext) ([]*core.RankedResult, error) {
	if limit <= 0 {
		limit = DefaultResultLimit
	}
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	r.monitor.Start(query)

	intent, usedFallback := r.resolveIntent(ctx, query)
	r.monitor.AfterIntentAnalysis(intent, usedFallback)

	// The lexical path scans the whole corpus against the intent terms;
	// a failed read here is fatal since no path can produce results.
	apps, err := r.loadCorpus(ctx)
	if err != nil {
		return nil, err
	}

	// The two retrieval paths share only the intent, so they run
	// concurrently.
	var (
		wg       sync.WaitGroup
		lexical  []*core.CandidateResult
		semantic []*core.CandidateResult
		semErr   error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		lexical = lexicalRetrieve(intent, apps, r.retrievalLimit)
	}()
	go func() {
		defer wg.Done()
		semantic, semErr = r.semanticRetrieve(ctx, intent, r.retrievalLimit)
	}()
	wg.Wait()

	if semErr != nil {
		// Path failure, not query failure: lexical results still stand.
		r.logger.Warn("semantic retrieval failed, continuing with lexical results", "err", semErr)
		semantic = nil
	}
	r.monitor.AfterLexicalRetrieval(lexical)
	r.monitor.AfterSemanticRetrieval(semantic)

	fused := fuseCandidates(semantic, lexical, r.rrfK)
	r.monitor.AfterFusion(fused)

	if len(fused) == 0 {
		// A query matching nothing is a valid empty result, not an error.
		empty := []*core.RankedResult{}
		r.monitor.Finish(empty)
		return empty, nil
	}

	pool := fused
	if len(pool) > r.candidatePool {
		pool = pool[:r.candidatePool]
	}

	ranked := r.rerank(ctx, query, user, pool)
	r.monitor.AfterRerank(ranked)

	final := assemble(ranked, intent.AvoidCategories, limit)
	r.monitor.Finish(final)

	r.logger.Debug("search complete",
		"query", query,
		"lexical", len(lexical),
		"semantic", len(semantic),
		"fused", len(fused),
		"results", len(final))

	return final, nil
}

// loadCorpus reads the whole catalog in pages, never holding a cursor
// across a suspension point.
func (r *Recommender) loadCorpus(ctx context.Context) ([]*core.App, error) {
	var apps []*core.App
	offset := 0
	for {
		page, err := r.catalog.ListApps(ctx, offset, r.corpusPageSize)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
		}
		apps = append(apps, page...)
		if len(page) < r.corpusPageSize {
			return apps, nil
		}
		offset += len(page)
	}
}
