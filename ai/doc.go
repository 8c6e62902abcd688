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


// Package ai provides abstractions for AI services used in Appscout.
//
// This package defines interfaces for AI operations including text embeddings,
// query intent analysis and candidate re-scoring. It follows the dependency
// inversion principle, allowing the core domain and the recommendation
// pipeline to depend on abstractions rather than concrete implementations.
//
// # Design Principles
//
// The package is designed around four key interfaces:
//
//   - Embedder: Generates vector embeddings from text
//   - IntentAnalyzer: Interprets a free-text query as a structured intent
//   - CandidateScorer: Re-scores shortlisted apps against the query
//   - AIProvider: Aggregates AI services for convenient initialization
//
// IntentAnalyzer and CandidateScorer are strict parse-or-error boundaries:
// implementations validate the language service's response against an
// explicit schema and return an error on any mismatch. The recommendation
// pipeline owns the documented fallback behavior; implementations never
// guess at malformed responses.
//
// # Implementation Packages
//
// The ai package includes two implementation sub-packages:
//
//   - ai/openai: Production implementation using OpenAI-compatible APIs
//   - ai/mock: Test doubles for unit testing without external dependencies
//
// # Constructor Return Type Pattern
//
// Public constructors (openai.NewProvider, openai.NewEmbedder, etc.) return
// INTERFACE types to enforce abstraction and prevent accidental coupling to
// concrete implementations.
//
//	provider, err := openai.NewProvider(config)  // returns ai.AIProvider
//
// Test utility constructors (mock.NewMockEmbedder, mock.NewMockIntentAnalyzer,
// mock.NewMockCandidateScorer) return CONCRETE types to enable test
// assertions and behavior injection via function fields.
//
//	mockEmbed := mock.NewMockEmbedder()
//	mockEmbed.EmbedTextFunc = func(...) {...}
//	count := mockEmbed.CallCount()
//
// # Usage Example
//
//	config := ai.DefaultConfig()
//	provider, err := openai.NewProvider(config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer provider.Close()
//
//	intent, err := provider.IntentAnalyzer().AnalyzeIntent(ctx, "apps to help me sleep")
//	vector, err := provider.Embedder().EmbedText(ctx, intent.SemanticQuery)
package ai
