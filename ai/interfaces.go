package ai

import (
	"context"

	"github.com/poiesic/appscout/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// IntentAnalyzer turns a raw query string into a structured QueryIntent.
// Implementations must be thread-safe for concurrent use.
//
// An analyzer is a strict parse-or-error boundary: it either returns a
// well-formed intent extracted from the language service's response, or an
// error. Callers own the heuristic fallback.
type IntentAnalyzer interface {
	// AnalyzeIntent interprets the query and returns its structured intent.
	// Returns an error if the service call fails or its response does not
	// contain a parseable intent object.
	AnalyzeIntent(ctx context.Context, query string) (*core.QueryIntent, error)
}

// CandidateScore is the language service's judgment of one shortlisted app.
type CandidateScore struct {
	// AppID identifies the candidate; matches core.App.AppID.
	AppID string

	// Relevance is a 0-10 relevance score for the original query.
	Relevance float64

	// Confidence is the service's 0-1 confidence in its own judgment.
	Confidence float64

	// Pitch is a personalized one-line recommendation.
	Pitch string

	// Justification is a short explanation of the relevance score.
	Justification string
}

// CandidateScorer re-scores a batch of shortlisted apps against the original
// query, optionally personalized with user context.
// Implementations must be thread-safe for concurrent use.
//
// Like IntentAnalyzer, a scorer is a strict parse-or-error boundary; batch
// fallback on failure is the caller's responsibility.
type CandidateScorer interface {
	// ScoreCandidates asks the language service to judge each candidate.
	// Returned scores are keyed by AppID and may omit candidates the
	// service failed to judge. Returns an error if the call fails or the
	// response does not contain a parseable score array.
	ScoreCandidates(ctx context.Context, query string, userCtx *core.UserContext, candidates []*core.FusedResult) ([]CandidateScore, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder, IntentAnalyzer and CandidateScorer
// instances, ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// IntentAnalyzer returns the query intent analysis service.
	// The returned IntentAnalyzer is safe for concurrent use.
	IntentAnalyzer() IntentAnalyzer

	// CandidateScorer returns the candidate re-scoring service.
	// The returned CandidateScorer is safe for concurrent use.
	CandidateScorer() CandidateScorer

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
