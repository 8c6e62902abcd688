package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/poiesic/appscout/core"
)

const (
	// Position weights for intent terms decay linearly from first to last.
	firstTermWeight = 1.0
	lastTermWeight  = 0.3

	categoryExactBoost      = 1.2
	generalSubstringFactor  = 0.7
	categorySubstringFactor = 0.8

	ratingBonusFactor = 0.1

	// Apps scoring at or below this are excluded from the lexical results.
	minLexicalScore = 0.05
)

// lexicalRetrieve scores the corpus against the intent's term lists using
// the precomputed keyword weights, producing keyword-sourced candidates.
func lexicalRetrieve(intent *core.QueryIntent, apps []*core.App, limit int) []*core.CandidateResult {
	terms := intentTerms(intent)
	if len(terms) == 0 {
		return nil
	}

	results := make([]*core.CandidateResult, 0, len(apps))
	for _, app := range apps {
		score, matched := scoreAppTerms(app, terms)
		if len(matched) == 0 {
			continue
		}

		// Quality bonus for matched apps only; an unmatched app must not
		// pass the threshold on rating alone.
		score += app.Rating / 5.0 * ratingBonusFactor

		if score <= minLexicalScore {
			continue
		}

		results = append(results, &core.CandidateResult{
			App:          app,
			Score:        score,
			MatchedTerms: matched,
			Source:       core.SourceKeyword,
		})
	}

	// Ties broken by rating count; otherwise stable by corpus order.
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].App.RatingCount > results[j].App.RatingCount
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// weightedTerm pairs an intent term with its position-decayed weight.
type weightedTerm struct {
	term   string
	weight float64
}

// intentTerms merges the concept and focus lists, preserving order and
// dropping duplicates, then assigns position weights decaying from 1.0
// for the first term to 0.3 for the last.
func intentTerms(intent *core.QueryIntent) []weightedTerm {
	seen := make(map[string]bool)
	var ordered []string
	for _, list := range [][]string{intent.KeyConcepts, intent.SearchFocusTerms} {
		for _, t := range list {
			t = strings.ToLower(strings.TrimSpace(t))
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			ordered = append(ordered, t)
		}
	}

	terms := make([]weightedTerm, len(ordered))
	for i, t := range ordered {
		w := firstTermWeight
		if len(ordered) > 1 {
			w = firstTermWeight - (firstTermWeight-lastTermWeight)*float64(i)/float64(len(ordered)-1)
		}
		terms[i] = weightedTerm{term: t, weight: w}
	}
	return terms
}

// scoreAppTerms accumulates all qualifying matches for every term against
// the app's general and category keyword maps. Matches are summed, not
// max'd. Non-finite stored weights are skipped so a corrupt weight can
// never poison the accumulated score.
func scoreAppTerms(app *core.App, terms []weightedTerm) (float64, []string) {
	var score float64
	var matched []string

	for _, wt := range terms {
		termScore := 0.0

		if w, ok := app.Keywords[wt.term]; ok && isFinite(w) {
			termScore += w * wt.weight
		}
		if w, ok := app.CategoryKeywords[wt.term]; ok && isFinite(w) {
			termScore += w * wt.weight * categoryExactBoost
		}

		termScore += substringMatches(app.Keywords, wt.term, wt.weight*generalSubstringFactor)
		termScore += substringMatches(app.CategoryKeywords, wt.term, wt.weight*categorySubstringFactor)

		if termScore > 0 {
			score += termScore
			matched = append(matched, wt.term)
		}
	}

	return score, matched
}

// substringMatches sums weights for stored keys that contain the term or
// are contained by it, excluding the exact key which is scored separately.
func substringMatches(weights map[string]float64, term string, factor float64) float64 {
	var sum float64
	for key, w := range weights {
		if key == term || !isFinite(w) {
			continue
		}
		if strings.Contains(key, term) || strings.Contains(term, key) {
			sum += w * factor
		}
	}
	return sum
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
