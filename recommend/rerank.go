package recommend

import (
	"context"
	"errors"
	"sync"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
)

const (
	// DefaultRerankBatchSize is how many candidates go to the language
	// service per scoring call.
	DefaultRerankBatchSize = 6

	// DefaultRerankConcurrency bounds in-flight scoring calls to respect
	// external service rate limits.
	DefaultRerankConcurrency = 3

	retrievalWeight      = 0.3
	llmWeight            = 0.7
	confidenceBonus      = 0.1
	confidenceBonusFloor = 0.8

	neutralRelevance  = 5.0
	neutralConfidence = 0.5
)

const fallbackExplanation = "Recommended based on how well it matched your search."

// rerankItem pairs a fused candidate with its retrieval score normalized
// against the best candidate in the pool.
type rerankItem struct {
	fused      *core.FusedResult
	normalized float64
}

// rerank scores the fused candidate pool with the language service in
// batches. Batches run on the shared worker pool with bounded concurrency;
// batch ordering does not affect correctness since results are merged by
// identity downstream. A failed batch falls back to pure fusion ranking
// for its candidates and never fails the query.
func (r *Recommender) rerank(ctx context.Context, query string, user *core.UserContext, pool []*core.FusedResult) []*core.RankedResult {
	if len(pool) == 0 {
		return nil
	}

	var maxFused float64
	for _, f := range pool {
		if f.Score > maxFused {
			maxFused = f.Score
		}
	}

	items := make([]rerankItem, len(pool))
	for i, f := range pool {
		norm := 0.0
		if maxFused > 0 {
			norm = f.Score / maxFused
		}
		items[i] = rerankItem{fused: f, normalized: norm}
	}

	batchSize := r.rerankBatchSize
	if batchSize < 1 {
		batchSize = DefaultRerankBatchSize
	}

	var batches [][]rerankItem
	for start := 0; start < len(items); start += batchSize {
		end := start + batchSize
		if end > len(items) {
			end = len(items)
		}
		batches = append(batches, items[start:end])
	}

	// Score batches concurrently; keep results in batch order so the
	// pipeline stays deterministic under fixed inputs.
	scored := make([][]*core.RankedResult, len(batches))
	var wg sync.WaitGroup
	for i, batch := range batches {
		i, batch := i, batch
		wg.Add(1)
		task := func() {
			defer wg.Done()
			scored[i] = r.scoreBatch(ctx, query, user, batch)
		}
		if err := r.rerankPool.Submit(task); err != nil {
			// Pool unavailable (e.g. released); run inline.
			task()
		}
	}
	wg.Wait()

	var results []*core.RankedResult
	for _, batch := range scored {
		results = append(results, batch...)
	}
	return results
}

// scoreBatch asks the language service to score one batch of candidates.
// Transient transport errors are retried once; malformed responses are
// content bugs and go straight to the fallback.
func (r *Recommender) scoreBatch(ctx context.Context, query string, user *core.UserContext, batch []rerankItem) []*core.RankedResult {
	fused := make([]*core.FusedResult, len(batch))
	for i, item := range batch {
		fused[i] = item.fused
	}

	scores, err := r.scorer.ScoreCandidates(ctx, query, user, fused)
	if err != nil && retriable(ctx, err) {
		r.logger.Warn("candidate scoring failed, retrying once", "err", err)
		scores, err = r.scorer.ScoreCandidates(ctx, query, user, fused)
	}
	if err != nil {
		r.logger.Warn("candidate scoring failed, falling back to fusion order",
			"batchSize", len(batch), "err", err)
		return fallbackBatch(batch)
	}

	byAppID := make(map[string]ai.CandidateScore, len(scores))
	for _, s := range scores {
		byAppID[s.AppID] = s
	}

	results := make([]*core.RankedResult, 0, len(batch))
	for _, item := range batch {
		score, ok := byAppID[item.fused.App.AppID]
		if !ok {
			// The service skipped this candidate; retain it with the
			// neutral fallback rather than dropping it.
			results = append(results, fallbackResult(item))
			continue
		}

		breakdown := core.ScoreBreakdown{
			Retrieval: retrievalWeight * item.normalized,
			LLM:       llmWeight * score.Relevance / 10.0,
		}
		if score.Confidence > confidenceBonusFloor {
			breakdown.ConfidenceBonus = confidenceBonus
		}

		results = append(results, &core.RankedResult{
			App:          item.fused.App,
			FinalScore:   breakdown.Retrieval + breakdown.LLM + breakdown.ConfidenceBonus,
			Breakdown:    breakdown,
			Explanation:  score.Justification,
			Pitch:        score.Pitch,
			Sources:      item.fused.Sources,
			MatchedTerms: item.fused.MatchedTerms,
		})
	}
	return results
}

// retriable reports whether a scoring error is worth one retry: transport
// faults are, malformed content and caller cancellation are not.
func retriable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	return !errors.Is(err, ai.ErrMalformedResponse)
}

func fallbackBatch(batch []rerankItem) []*core.RankedResult {
	results := make([]*core.RankedResult, len(batch))
	for i, item := range batch {
		results[i] = fallbackResult(item)
	}
	return results
}

// fallbackResult retains a candidate with neutral language-service values
// and a final score equal to its fused retrieval score, so a failed batch
// degrades to pure fusion ranking.
func fallbackResult(item rerankItem) *core.RankedResult {
	return &core.RankedResult{
		App:        item.fused.App,
		FinalScore: item.fused.Score,
		Breakdown: core.ScoreBreakdown{
			Retrieval: item.fused.Score,
		},
		Explanation:  fallbackExplanation,
		Sources:      item.fused.Sources,
		MatchedTerms: item.fused.MatchedTerms,
	}
}
