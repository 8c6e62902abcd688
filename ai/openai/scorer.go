// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"github.com/poiesic/appscout/ai"
	"github.com/poiesic/appscout/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// CandidateScorer implements ai.CandidateScorer using OpenAI-compatible chat APIs.
type CandidateScorer struct {
	client llms.Model
	logger *slog.Logger
}

// scorePayload is an internal type used for JSON unmarshaling.
// It matches the array element structure expected from the LLM.
type scorePayload struct {
	AppID         string  `json:"app_id"`
	Relevance     float64 `json:"relevance"`
	Confidence    float64 `json:"confidence"`
	Pitch         string  `json:"pitch"`
	Justification string  `json:"justification"`
}

// newCandidateScorer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newCandidateScorer(config *ai.Config) (*CandidateScorer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Use "none" as token for local OpenAI-compatible services that don't require authentication
	client, err := openai.New(
		openai.WithBaseURL(config.AnalystHost),
		openai.WithToken("none"),
		openai.WithModel(config.AnalystModel),
	)
	if err != nil {
		return nil, err
	}

	return &CandidateScorer{
		client: client,
		logger: slog.Default().With("component", "openai-scorer"),
	}, nil
}

// NewCandidateScorer creates a new candidate scorer using the provided configuration.
//
// Returns ai.CandidateScorer interface to enforce abstraction.
func NewCandidateScorer(config *ai.Config) (ai.CandidateScorer, error) {
	return newCandidateScorer(config)
}

// ScoreCandidates asks the LLM to judge each shortlisted app against the
// original query. The response must contain a JSON array matching the score
// schema; anything else is an error. Batch-level fallback on failure is the
// caller's responsibility.
func (s *CandidateScorer) ScoreCandidates(ctx context.Context, query string, userCtx *core.UserContext, candidates []*core.FusedResult) ([]ai.CandidateScore, error) {
	if len(candidates) == 0 {
		return []ai.CandidateScore{}, nil
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRerankPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(buildRerankRequest(query, userCtx, candidates)),
			},
		},
	}

	response, err := s.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		s.logger.Error("failed to generate content", "batch", len(candidates), "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	text, err := extractJSONArray(response.Choices[0].Content)
	if err != nil {
		s.logger.Warn("no JSON array in scorer response", "err", err)
		return nil, err
	}

	var payloads []scorePayload
	if err := json.Unmarshal([]byte(repairJSON(text)), &payloads); err != nil {
		s.logger.Warn("error parsing scorer response", "response", text, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	scores := make([]ai.CandidateScore, 0, len(payloads))
	for _, p := range payloads {
		appID := strings.TrimSpace(p.AppID)
		if appID == "" {
			continue
		}
		if math.IsNaN(p.Relevance) || math.IsNaN(p.Confidence) {
			continue
		}
		scores = append(scores, ai.CandidateScore{
			AppID:         appID,
			Relevance:     math.Min(10, math.Max(0, p.Relevance)),
			Confidence:    math.Min(1, math.Max(0, p.Confidence)),
			Pitch:         strings.TrimSpace(p.Pitch),
			Justification: strings.TrimSpace(p.Justification),
		})
	}

	s.logger.Debug("scored candidates", "requested", len(candidates), "scored", len(scores))
	return scores, nil
}

// buildRerankRequest renders the query, the optional user context and the
// candidate batch into the user message for the scorer.
func buildRerankRequest(query string, userCtx *core.UserContext, candidates []*core.FusedResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Query: %s\n", query)

	if userCtx != nil {
		b.WriteString("User context:\n")
		if len(userCtx.LifestyleTags) > 0 {
			fmt.Fprintf(&b, "- lifestyle: %s\n", strings.Join(userCtx.LifestyleTags, ", "))
		}
		if len(userCtx.PreferredUseCases) > 0 {
			fmt.Fprintf(&b, "- preferred use cases: %s\n", strings.Join(userCtx.PreferredUseCases, ", "))
		}
		if userCtx.PreferredComplexity != "" {
			fmt.Fprintf(&b, "- preferred complexity: %s\n", userCtx.PreferredComplexity)
		}
		if userCtx.Situation != "" {
			fmt.Fprintf(&b, "- situation: %s\n", userCtx.Situation)
		}
	}

	b.WriteString("Candidates:\n")
	for _, c := range candidates {
		app := c.App
		fmt.Fprintf(&b, "- app_id: %s | name: %s | category: %s | rating: %.1f\n",
			app.AppID, app.Name, app.Category, app.Rating)
		if desc := oneLine(app.Description, 240); desc != "" {
			fmt.Fprintf(&b, "  description: %s\n", desc)
		}
		if !app.Features.Empty() {
			if app.Features.PrimaryUseCase != "" {
				fmt.Fprintf(&b, "  primary use case: %s\n", app.Features.PrimaryUseCase)
			}
			if app.Features.Complexity != "" {
				fmt.Fprintf(&b, "  complexity: %s\n", app.Features.Complexity)
			}
			if len(app.Features.Benefits) > 0 {
				fmt.Fprintf(&b, "  benefits: %s\n", strings.Join(app.Features.Benefits, "; "))
			}
		}
	}

	return b.String()
}

// oneLine collapses whitespace and truncates text for prompt embedding.
func oneLine(s string, maxLen int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len(s) > maxLen {
		s = s[:maxLen]
	}
	return s
}
