package mock

import (
	"context"
	"strings"

	"github.com/poiesic/appscout/core"
)

// MockIntentAnalyzer is a test double for ai.IntentAnalyzer.
// It allows custom behavior injection via function fields.
type MockIntentAnalyzer struct {
	// AnalyzeIntentFunc is called by AnalyzeIntent if set.
	// If nil, uses default simple word extraction.
	AnalyzeIntentFunc func(ctx context.Context, query string) (*core.QueryIntent, error)

	callCount int
}

// NewMockIntentAnalyzer creates a mock intent analyzer with default behavior.
// Note: Returns concrete type to allow test assertions via GetMockAnalyzer().
func NewMockIntentAnalyzer() *MockIntentAnalyzer {
	return &MockIntentAnalyzer{}
}

// AnalyzeIntent builds a simple mock intent from the query words.
// Default behavior: splits the query into lowercase words, using the first
// word as the topic and all words as concepts and focus terms.
func (m *MockIntentAnalyzer) AnalyzeIntent(ctx context.Context, query string) (*core.QueryIntent, error) {
	m.callCount++

	if m.AnalyzeIntentFunc != nil {
		return m.AnalyzeIntentFunc(ctx, query)
	}

	words := strings.Fields(strings.ToLower(query))
	concepts := make([]string, 0, len(words))
	for i, word := range words {
		if i >= 5 { // Limit to 5 concepts
			break
		}
		word = strings.Trim(word, ".,!?;:\"'()[]{}")
		if word == "" {
			continue
		}
		concepts = append(concepts, word)
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
		Confidence:       0.8,
	}, nil
}

// CallCount returns the number of times AnalyzeIntent was called.
func (m *MockIntentAnalyzer) CallCount() int {
	return m.callCount
}

// Reset clears the call count and custom functions.
func (m *MockIntentAnalyzer) Reset() {
	m.callCount = 0
	m.AnalyzeIntentFunc = nil
}
