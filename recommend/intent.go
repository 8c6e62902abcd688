package recommend

import (
	"context"
	"strings"

	"github.com/poiesic/appscout/core"
)

// heuristicConfidence is the fixed confidence assigned to intents produced
// by the deterministic fallback.
const heuristicConfidence = 0.3

// maxHeuristicConcepts caps how many tokens the fallback keeps as concepts.
const maxHeuristicConcepts = 8

// Stop words to filter out when deriving intent heuristically
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "be": true, "is": true, "are": true,
	"was": true, "to": true, "of": true, "and": true, "in": true, "that": true,
	"have": true, "it": true, "for": true, "not": true, "on": true, "with": true,
	"as": true, "you": true, "do": true, "at": true, "this": true, "but": true,
	"by": true, "from": true, "me": true, "my": true, "i": true, "apps": true,
	"app": true, "help": true, "want": true, "need": true, "some": true,
	"something": true,
}

// tokenizeAndFilter splits text into words, lowercases, trims punctuation,
// and removes stop words
func tokenizeAndFilter(text string) []string {
	words := strings.Fields(text)
	filtered := make([]string, 0, len(words))

	for _, word := range words {
		// Lowercase and trim punctuation
		cleaned := strings.ToLower(strings.Trim(word, ".,!?;:'\"-()[]{}"))

		// Skip stop words and empty strings
		if cleaned != "" && !stopWords[cleaned] {
			filtered = append(filtered, cleaned)
		}
	}

	return filtered
}

// heuristicIntent derives a QueryIntent without calling the language
// service: strip stop words, take the remaining tokens as concepts and
// focus terms, and use the first token as the topic. It never fails and
// always returns a well-formed intent.
func heuristicIntent(query string) *core.QueryIntent {
	tokens := tokenizeAndFilter(query)

	seen := make(map[string]bool, len(tokens))
	concepts := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if seen[tok] {
			continue
		}
		seen[tok] = true
		concepts = append(concepts, tok)
		if len(concepts) >= maxHeuristicConcepts {
			break
		}
	}

	topic := ""
	if len(concepts) > 0 {
		topic = concepts[0]
	}

	return &core.QueryIntent{
		MainTopic:        topic,
		UserGoal:         query,
		IntentType:       core.IntentDiscover,
		KeyConcepts:      concepts,
		SearchFocusTerms: concepts,
		SemanticQuery:    query,
		Confidence:       heuristicConfidence,
	}
}

// resolveIntent analyzes the query with the language service, falling back
// to the deterministic heuristic on any failure. The second return value
// reports whether the fallback was used.
func (r *Recommender) resolveIntent(ctx context.Context, query string) (*core.QueryIntent, bool) {
	intent, err := r.analyzer.AnalyzeIntent(ctx, query)
	if err != nil {
		r.logger.Warn("intent analysis failed, using heuristic fallback", "err", err)
		return heuristicIntent(query), true
	}
	return intent, false
}
