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

// IntentAnalyzer implements ai.IntentAnalyzer using OpenAI-compatible chat APIs.
type IntentAnalyzer struct {
	client llms.Model
	logger *slog.Logger
}

// intentPayload is an internal type used for JSON unmarshaling.
// It matches the structure expected from the LLM.
type intentPayload struct {
	MainTopic        string   `json:"main_topic"`
	UserGoal         string   `json:"user_goal"`
	IntentType       string   `json:"intent_type"`
	KeyConcepts      []string `json:"key_concepts"`
	SearchFocusTerms []string `json:"search_focus_terms"`
	AvoidCategories  []string `json:"avoid_categories"`
	SemanticQuery    string   `json:"semantic_query"`
	Confidence       float64  `json:"confidence"`
}

// newIntentAnalyzer is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newIntentAnalyzer(config *ai.Config) (*IntentAnalyzer, error) {
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

	return &IntentAnalyzer{
		client: client,
		logger: slog.Default().With("component", "openai-analyzer"),
	}, nil
}

// NewIntentAnalyzer creates a new intent analyzer using the provided configuration.
//
// Returns ai.IntentAnalyzer interface to enforce abstraction.
func NewIntentAnalyzer(config *ai.Config) (ai.IntentAnalyzer, error) {
	return newIntentAnalyzer(config)
}

// AnalyzeIntent interprets the raw query using an LLM and returns its
// structured intent. The response must contain a JSON object matching the
// intent schema; anything else is an error. Heuristic fallback on failure
// is the caller's responsibility.
func (a *IntentAnalyzer) AnalyzeIntent(ctx context.Context, query string) (*core.QueryIntent, error) {
	query = strings.TrimSpace(query)
	if err := core.ValidateQuery(query); err != nil {
		return nil, err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(buildIntentPrompt()),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(query),
			},
		},
	}

	response, err := a.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
	if err != nil {
		a.logger.Error("failed to generate content", "err", err)
		return nil, err
	}

	if len(response.Choices) < 1 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	text, err := extractJSONObject(response.Choices[0].Content)
	if err != nil {
		a.logger.Warn("no JSON object in analyst response", "err", err)
		return nil, err
	}

	var payload intentPayload
	if err := json.Unmarshal([]byte(repairJSON(text)), &payload); err != nil {
		a.logger.Warn("error parsing analyst response", "response", text, "err", err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	intent := intentFromPayload(query, &payload)
	if err := core.ValidateQueryIntent(intent); err != nil {
		a.logger.Warn("analyst returned invalid intent", "err", err)
		return nil, fmt.Errorf("%w: %w", ErrMalformedResponse, err)
	}

	a.logger.Debug("analyzed intent",
		"topic", intent.MainTopic,
		"type", intent.IntentType.String(),
		"concepts", len(intent.KeyConcepts),
		"confidence", intent.Confidence)

	return intent, nil
}

// intentFromPayload converts the wire payload into a domain intent,
// normalizing terms and clamping the confidence into [0, 1].
func intentFromPayload(query string, p *intentPayload) *core.QueryIntent {
	confidence := p.Confidence
	if math.IsNaN(confidence) {
		confidence = 0
	}
	confidence = math.Min(1, math.Max(0, confidence))

	semanticQuery := strings.TrimSpace(p.SemanticQuery)
	if semanticQuery == "" {
		semanticQuery = query
	}

	return &core.QueryIntent{
		MainTopic:        strings.ToLower(strings.TrimSpace(p.MainTopic)),
		UserGoal:         strings.TrimSpace(p.UserGoal),
		IntentType:       core.IntentTypeFromString(p.IntentType),
		KeyConcepts:      normalizeTerms(p.KeyConcepts),
		SearchFocusTerms: normalizeTerms(p.SearchFocusTerms),
		AvoidCategories:  normalizeTerms(p.AvoidCategories),
		SemanticQuery:    semanticQuery,
		Confidence:       confidence,
	}
}

// normalizeTerms lowercases and trims terms, dropping empties while
// preserving order.
func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
