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

package mock

import (
	"github.com/poiesic/appscout/ai"
)

// MockProvider is a test double for ai.AIProvider.
// It bundles mock implementations of all AI services.
type MockProvider struct {
	embedder *MockEmbedder
	analyzer *MockIntentAnalyzer
	scorer   *MockCandidateScorer
	closed   bool
}

// NewMockProvider creates a provider with default mock services.
func NewMockProvider() *MockProvider {
	return &MockProvider{
		embedder: NewMockEmbedder(),
		analyzer: NewMockIntentAnalyzer(),
		scorer:   NewMockCandidateScorer(),
	}
}

// NewMockProviderWithServices creates a provider with the given mocks.
// Any nil argument is replaced with a default mock.
func NewMockProviderWithServices(embedder *MockEmbedder, analyzer *MockIntentAnalyzer, scorer *MockCandidateScorer) *MockProvider {
	if embedder == nil {
		embedder = NewMockEmbedder()
	}
	if analyzer == nil {
		analyzer = NewMockIntentAnalyzer()
	}
	if scorer == nil {
		scorer = NewMockCandidateScorer()
	}
	return &MockProvider{
		embedder: embedder,
		analyzer: analyzer,
		scorer:   scorer,
	}
}

// Embedder returns the mock embedding service.
func (p *MockProvider) Embedder() ai.Embedder {
	return p.embedder
}

// IntentAnalyzer returns the mock intent analysis service.
func (p *MockProvider) IntentAnalyzer() ai.IntentAnalyzer {
	return p.analyzer
}

// CandidateScorer returns the mock candidate scoring service.
func (p *MockProvider) CandidateScorer() ai.CandidateScorer {
	return p.scorer
}

// Close marks the provider as closed.
func (p *MockProvider) Close() error {
	p.closed = true
	return nil
}

// IsClosed reports whether Close was called.
func (p *MockProvider) IsClosed() bool {
	return p.closed
}

// GetMockEmbedder returns the concrete mock for test assertions.
func (p *MockProvider) GetMockEmbedder() *MockEmbedder {
	return p.embedder
}

// GetMockAnalyzer returns the concrete mock for test assertions.
func (p *MockProvider) GetMockAnalyzer() *MockIntentAnalyzer {
	return p.analyzer
}

// GetMockScorer returns the concrete mock for test assertions.
func (p *MockProvider) GetMockScorer() *MockCandidateScorer {
	return p.scorer
}

// Reset resets all underlying mocks.
func (p *MockProvider) Reset() {
	p.embedder.Reset()
	p.analyzer.Reset()
	p.scorer.Reset()
	p.closed = false
}
