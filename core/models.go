package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is derived from catalog identifiers using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// NormalizeTitle reduces a display name to a lowercase alphanumeric key.
// Used as the identity fallback when an app carries no catalog identifier.
// Known limitation: distinct apps with near-identical titles from different
// publishers collapse to the same key.
func NormalizeTitle(title string) string {
	var b strings.Builder
	b.Grow(len(title))
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IdentityKey returns the deduplication key for an app: the catalog AppID
// when present, otherwise the normalized title.
func IdentityKey(appID, title string) string {
	if appID != "" {
		return appID
	}
	return NormalizeTitle(title)
}

// IntentType classifies what the user is trying to achieve with a query.
type IntentType int

const (
	// IntentLearn indicates the user wants to learn or study something.
	IntentLearn IntentType = iota + 1
	// IntentSolve indicates the user wants to solve a concrete problem.
	IntentSolve
	// IntentDiscover indicates open-ended exploration.
	IntentDiscover
	// IntentManage indicates organizing or tracking something ongoing.
	IntentManage
	// IntentEntertain indicates the user wants entertainment.
	IntentEntertain
)

// String returns the wire name of the intent type.
func (t IntentType) String() string {
	switch t {
	case IntentLearn:
		return "learn"
	case IntentSolve:
		return "solve"
	case IntentDiscover:
		return "discover"
	case IntentManage:
		return "manage"
	case IntentEntertain:
		return "entertain"
	default:
		return "unknown"
	}
}

// IntentTypeFromString parses a wire name into an IntentType.
// Unrecognized names map to IntentDiscover.
func IntentTypeFromString(s string) IntentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "learn":
		return IntentLearn
	case "solve":
		return IntentSolve
	case "discover":
		return IntentDiscover
	case "manage":
		return IntentManage
	case "entertain":
		return IntentEntertain
	default:
		return IntentDiscover
	}
}

// AppFeatures holds per-app structured attributes derived offline by the
// feature-extraction jobs. A zero value means no features were extracted.
type AppFeatures struct {
	PrimaryUseCase   string
	TargetPersona    string
	Benefits         []string
	Limitations      []string
	Complexity       string
	CategoryAffinity map[string]float64
}

// Empty reports whether no features were extracted for the app.
func (f *AppFeatures) Empty() bool {
	return f.PrimaryUseCase == "" && f.TargetPersona == "" &&
		len(f.Benefits) == 0 && len(f.Limitations) == 0 &&
		f.Complexity == "" && len(f.CategoryAffinity) == 0
}

// App is a reconciled catalog entity. Records are written by the
// acquisition and extraction jobs and are read-only during a query.
type App struct {
	Id          ID
	AppID       string // stable catalog identifier
	Name        string
	Category    string
	Rating      float64
	RatingCount int64
	Description string
	IconURL     string
	Features    AppFeatures
	// Keywords maps normalized general terms to precomputed TF-IDF weights.
	Keywords map[string]float64
	// CategoryKeywords maps category-specific terms to precomputed weights.
	CategoryKeywords map[string]float64
	// Vector is the embedding for Name+Description. Fixed length across the
	// catalog for a given model version; empty until the embedding job runs.
	Vector     []float32
	InsertedAt time.Time
	UpdatedAt  time.Time
}

// UserContext carries optional personalization attributes for re-ranking.
type UserContext struct {
	LifestyleTags       []string
	PreferredUseCases   []string
	PreferredComplexity string
	Situation           string
}

// QueryIntent is the structured interpretation of a free-text query.
// Created fresh per request; never persisted as authoritative.
type QueryIntent struct {
	MainTopic        string
	UserGoal         string
	IntentType       IntentType
	KeyConcepts      []string // relevance-descending
	SearchFocusTerms []string
	AvoidCategories  []string
	SemanticQuery    string
	Confidence       float64 // 0.0-1.0
}

// RetrievalSource tags which retrieval path produced a candidate.
type RetrievalSource string

const (
	// SourceSemantic marks candidates from embedding similarity.
	SourceSemantic RetrievalSource = "semantic"
	// SourceKeyword marks candidates from lexical keyword matching.
	SourceKeyword RetrievalSource = "keyword"
)

// CandidateResult is a retrieval-path-specific hit, before fusion.
// Multiple CandidateResults may reference the same app from different paths.
type CandidateResult struct {
	App          *App
	Score        float64
	MatchedTerms []string // lexical evidence
	Similarity   float64  // semantic evidence (raw cosine)
	Source       RetrievalSource
}

// FusedResult is one entry per unique app after reciprocal rank fusion.
type FusedResult struct {
	App           *App
	Score         float64 // combined RRF score plus global adjustments
	SemanticScore float64 // raw per-path contributing score
	KeywordScore  float64
	Sources       []RetrievalSource
	MatchedTerms  []string
}

// MultiMethod reports whether the app was retrieved by more than one path.
func (f *FusedResult) MultiMethod() bool {
	return len(f.Sources) > 1
}

// ScoreBreakdown decomposes a final score into its contributions.
type ScoreBreakdown struct {
	Retrieval       float64 // 0.3 x normalized retrieval score
	LLM             float64 // 0.7 x (relevance/10)
	ConfidenceBonus float64 // 0.1 when confidence > 0.8
}

// RankedResult is the final output unit returned to the caller.
type RankedResult struct {
	App          *App
	FinalScore   float64
	Breakdown    ScoreBreakdown
	Explanation  string
	Pitch        string
	Sources      []RetrievalSource
	MatchedTerms []string
	Rank         int // 1-based, dense
}

// MethodsLabel joins the retrieval sources for display, e.g. "semantic+keyword".
func (r *RankedResult) MethodsLabel() string {
	parts := make([]string, len(r.Sources))
	for i, s := range r.Sources {
		parts[i] = string(s)
	}
	return strings.Join(parts, "+")
}

// SimilarityMatch is an app match from vector similarity search.
type SimilarityMatch struct {
	App   *App
	Score float64
}
