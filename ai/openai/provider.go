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
	"log/slog"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/core"
)

// Provider implements ai.Provider using OpenAI-compatible services.
// It manages the embedder, the primary generator, and the summary generator.
type Provider struct {
	embedder  *Embedder
	generator *Generator
	summary   *Generator
	logger    *slog.Logger
}

var _ ai.Provider = (*Provider)(nil)

// NewProvider creates a provider from a task configuration. All model names
// are resolved against the registry; an unknown name fails construction.
//
// The summary generator falls back to the primary model only when no summary
// model name is configured. A summary name that is set but unregistered is a
// configuration error, not a fallback.
func NewProvider(cfg core.TaskConfig) (ai.Provider, error) {
	if err := core.ValidateTaskConfig(cfg); err != nil {
		return nil, err
	}

	embedInfo, err := ai.LookupModel(cfg.Embeddings.EmbeddingModel)
	if err != nil {
		return nil, err
	}
	embedder, err := newEmbedder(embedInfo)
	if err != nil {
		return nil, err
	}

	llmInfo, err := ai.LookupModel(cfg.LLM.LLMName)
	if err != nil {
		return nil, err
	}
	generator, err := newGenerator(llmInfo, cfg.LLM.Temperature)
	if err != nil {
		return nil, err
	}

	summary := generator
	if cfg.LLM.SummaryLLMName != "" {
		summaryInfo, err := ai.LookupModel(cfg.LLM.SummaryLLMName)
		if err != nil {
			return nil, err
		}
		summary, err = newGenerator(summaryInfo, cfg.LLM.SummaryTemperature)
		if err != nil {
			return nil, err
		}
	}

	return &Provider{
		embedder:  embedder,
		generator: generator,
		summary:   summary,
		logger:    slog.Default().With("component", "openai-provider"),
	}, nil
}

// Embedder returns the text embedding service.
func (p *Provider) Embedder() ai.Embedder {
	return p.embedder
}

// Generator returns the primary language model.
func (p *Provider) Generator() ai.Generator {
	return p.generator
}

// SummaryGenerator returns the model used for chunk summarization.
func (p *Provider) SummaryGenerator() ai.Generator {
	return p.summary
}

// Close releases resources held by the provider.
// Currently a no-op as the underlying clients don't require explicit cleanup.
func (p *Provider) Close() error {
	p.logger.Debug("closing OpenAI provider")
	return nil
}
