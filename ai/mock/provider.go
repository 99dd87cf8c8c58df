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

import "github.com/poiesic/docquery/ai"

// Provider is a test double for ai.Provider.
// It aggregates mock embedder and generator instances.
type Provider struct {
	embedder  *Embedder
	generator *Generator
	summary   *Generator
}

// NewProvider creates a mock provider with default mock services. The
// summary generator is the same instance as the primary generator, matching
// the production fallback when no summary model is configured.
//
// Returns the concrete type so tests can reach the underlying mocks.
func NewProvider() *Provider {
	generator := NewGenerator()
	return &Provider{
		embedder:  NewEmbedder(),
		generator: generator,
		summary:   generator,
	}
}

// NewProviderWithServices creates a mock provider with custom mock services.
func NewProviderWithServices(embedder *Embedder, generator, summary *Generator) *Provider {
	return &Provider{
		embedder:  embedder,
		generator: generator,
		summary:   summary,
	}
}

// Embedder returns the mock embedder.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the mock generator.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// SummaryGenerator returns the mock summary generator.
func (p *Provider) SummaryGenerator() ai.Generator {
	return p.summary
}

// Close is a no-op for the mock provider.
func (p *Provider) Close() error {
	return nil
}

// MockEmbedder returns the underlying mock embedder for test assertions.
func (p *Provider) MockEmbedder() *Embedder {
	return p.embedder
}

// MockGenerator returns the underlying mock generator for test assertions.
func (p *Provider) MockGenerator() *Generator {
	return p.generator
}

// MockSummaryGenerator returns the underlying summary mock for assertions.
func (p *Provider) MockSummaryGenerator() *Generator {
	return p.summary
}
