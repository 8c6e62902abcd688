package recommend

import (
	"context"
	"sort"
	"strings"

	"github.com/poiesic/appscout/core"
)

const (
	topicBoost       = 0.3
	conceptBoost     = 0.1
	maxIntentBoost   = 0.6
	minCombinedScore = 0.4

	// Lower bound passed to the vector scan. The intent boost can add up
	// to maxIntentBoost, so any app above minCombinedScore-maxIntentBoost
	// raw similarity could still survive the combined threshold.
	scanFloor = float32(minCombinedScore - maxIntentBoost)

	// The scan over-fetches so boosted apps are not cut off by the raw
	// similarity ordering before boosts are applied.
	scanOverfetch = 4
)

// semanticRetrieve embeds the intent's canonical query text and scores the
// corpus by vector similarity plus an intent-relevance boost, producing
// semantic-sourced candidates. A failed embedding call is retried once;
// a dimension mismatch against the stored corpus fails the path.
func (r *Recommender) semanticRetrieve(ctx context.Context, intent *core.QueryIntent, limit int) ([]*core.CandidateResult, error) {
	vector, err := r.embedder.EmbedText(ctx, intent.SemanticQuery)
	if err != nil && ctx.Err() == nil {
		r.logger.Warn("embedding call failed, retrying once", "err", err)
		vector, err = r.embedder.EmbedText(ctx, intent.SemanticQuery)
	}
	if err != nil {
		return nil, err
	}

	matches, err := r.catalog.FindSimilar(ctx, vector, scanFloor, limit*scanOverfetch)
	if err != nil {
		return nil, err
	}

	results := make([]*core.CandidateResult, 0, len(matches))
	for _, match := range matches {
		boost := intentBoost(match.App, intent)
		combined := match.Score + boost
		if combined <= minCombinedScore {
			continue
		}
		results = append(results, &core.CandidateResult{
			App:        match.App,
			Score:      combined,
			Similarity: match.Score,
			Source:     core.SourceSemantic,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// intentBoost rewards apps whose title and description mention the intent's
// topic or key concepts, capped at maxIntentBoost.
func intentBoost(app *core.App, intent *core.QueryIntent) float64 {
	text := strings.ToLower(app.Name + " " + app.Description)

	var boost float64
	if topic := strings.ToLower(strings.TrimSpace(intent.MainTopic)); topic != "" {
		if strings.Contains(text, topic) {
			boost += topicBoost
		}
	}
	for _, concept := range intent.KeyConcepts {
		concept = strings.ToLower(strings.TrimSpace(concept))
		if concept != "" && strings.Contains(text, concept) {
			boost += conceptBoost
		}
	}

	if boost > maxIntentBoost {
		boost = maxIntentBoost
	}
	return boost
}
