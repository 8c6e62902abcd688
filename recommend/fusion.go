package recommend

import (
	"sort"

	"github.com/poiesic/appscout/core"
)

const (
	// DefaultRRFConstant is the k in the reciprocal rank fusion formula
	// 1/(k+rank). Larger values flatten the difference between ranks.
	DefaultRRFConstant = 60

	multiMethodBoost  = 0.15
	fusionRatingBoost = 0.1
	// Rating above which the fusion quality boost applies.
	fusionRatingFloor = 4.0
)

// fuseCandidates merges the semantic and keyword candidate lists with
// reciprocal rank fusion. Each candidate contributes 1/(k+rank) from its
// 1-based position within its own source list; an app in both lists sums
// both contributions. The multi-method and rating boosts are applied once,
// after summation. The two paths score on incomparable scales (cosine vs.
// additive TF-IDF), which is why ranks are fused instead of raw scores.
func fuseCandidates(semantic, keyword []*core.CandidateResult, k int) []*core.FusedResult {
	if k <= 0 {
		k = DefaultRRFConstant
	}

	byKey := make(map[string]*core.FusedResult)
	var order []string

	merge := func(candidates []*core.CandidateResult) {
		for i, c := range candidates {
			rank := i + 1
			contribution := 1.0 / float64(k+rank)

			key := core.IdentityKey(c.App.AppID, c.App.Name)
			fused, ok := byKey[key]
			if !ok {
				fused = &core.FusedResult{App: c.App}
				byKey[key] = fused
				order = append(order, key)
			}

			fused.Score += contribution
			switch c.Source {
			case core.SourceSemantic:
				fused.SemanticScore = c.Score
			case core.SourceKeyword:
				fused.KeywordScore = c.Score
			}
			if !hasSource(fused.Sources, c.Source) {
				fused.Sources = append(fused.Sources, c.Source)
			}
			fused.MatchedTerms = unionTerms(fused.MatchedTerms, c.MatchedTerms)
		}
	}

	merge(semantic)
	merge(keyword)

	results := make([]*core.FusedResult, 0, len(order))
	for _, key := range order {
		fused := byKey[key]

		// Global adjustments, applied once after summation.
		if fused.MultiMethod() {
			fused.Score += multiMethodBoost
		}
		if fused.App.Rating > fusionRatingFloor {
			fused.Score += fusionRatingBoost
		}

		results = append(results, fused)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results
}

func hasSource(sources []core.RetrievalSource, s core.RetrievalSource) bool {
	for _, existing := range sources {
		if existing == s {
			return true
		}
	}
	return false
}

// unionTerms appends terms not already present, preserving order.
func unionTerms(existing, add []string) []string {
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t] = true
	}
	for _, t := range add {
		if !seen[t] {
			seen[t] = true
			existing = append(existing, t)
		}
	}
	return existing
}
