package recommend

import (
	"sort"
	"strings"

	"github.com/poiesic/appscout/core"
)

// assemble deduplicates ranked results by normalized identity, applies the
// intent's category exclusions as a hard filter, sorts, truncates, and
// assigns dense 1-based ranks.
//
// Exclusion happens after scoring: an app is never penalized for being
// near an avoided category, only removed outright when it matches one.
func assemble(results []*core.RankedResult, avoidCategories []string, limit int) []*core.RankedResult {
	deduped := dedupe(results)

	if len(avoidCategories) > 0 {
		kept := deduped[:0]
		for _, r := range deduped {
			if !categoryAvoided(r.App.Category, avoidCategories) {
				kept = append(kept, r)
			}
		}
		deduped = kept
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		if deduped[i].FinalScore != deduped[j].FinalScore {
			return deduped[i].FinalScore > deduped[j].FinalScore
		}
		return deduped[i].App.RatingCount > deduped[j].App.RatingCount
	})

	if limit > 0 && len(deduped) > limit {
		deduped = deduped[:limit]
	}

	// Dense ranks with no gaps, even when upstream apps were excluded.
	for i, r := range deduped {
		r.Rank = i + 1
	}
	return deduped
}

// dedupe groups results by identity key, keeping the higher-scoring record
// and folding the loser's retrieval methods and matched terms into it.
// Running dedupe on an already-deduplicated list is a no-op.
func dedupe(results []*core.RankedResult) []*core.RankedResult {
	byKey := make(map[string]*core.RankedResult, len(results))
	var order []string

	for _, r := range results {
		key := core.IdentityKey(r.App.AppID, r.App.Name)
		existing, ok := byKey[key]
		if !ok {
			byKey[key] = r
			order = append(order, key)
			continue
		}

		winner, loser := existing, r
		if r.FinalScore > existing.FinalScore {
			winner, loser = r, existing
			byKey[key] = r
		}
		for _, s := range loser.Sources {
			if !hasSource(winner.Sources, s) {
				winner.Sources = append(winner.Sources, s)
			}
		}
		winner.MatchedTerms = unionTerms(winner.MatchedTerms, loser.MatchedTerms)
	}

	deduped := make([]*core.RankedResult, 0, len(order))
	for _, key := range order {
		deduped = append(deduped, byKey[key])
	}
	return deduped
}

// categoryAvoided reports whether the app's category matches any avoided
// entry, by case-insensitive equality or substring in either direction.
func categoryAvoided(category string, avoid []string) bool {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == "" {
		return false
	}
	for _, a := range avoid {
		a = strings.ToLower(strings.TrimSpace(a))
		if a == "" {
			continue
		}
		if category == a || strings.Contains(category, a) || strings.Contains(a, category) {
			return true
		}
	}
	return false
}
