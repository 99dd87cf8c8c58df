package openai

import (
	"context"
	"log/slog"
	"os"

	"github.com/poiesic/docquery/ai"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	llm         *openai.LLM
	temperature float64
	logger      *slog.Logger
}

var _ ai.Generator = (*Generator)(nil)

// newGenerator is an internal constructor that returns the concrete type.
func newGenerator(info ai.ModelInfo, temperature float64) (*Generator, error) {
	token := os.Getenv(info.EnvVar)
	if token == "" {
		token = "none"
	}

	llm, err := openai.New(
		openai.WithBaseURL(info.BaseURL),
		openai.WithToken(token),
		openai.WithModel(info.Model),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		llm:         llm,
		temperature: temperature,
		logger:      slog.Default().With("component", "openai-generator", "model", info.Model),
	}, nil
}

// NewGenerator creates a generator for a registered chat model.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(modelName string, temperature float64) (ai.Generator, error) {
	info, err := ai.LookupModel(modelName)
	if err != nil {
		return nil, err
	}
	return newGenerator(info, temperature)
}

// GenerateText performs one synchronous completion round trip.
func (g *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	completion, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(g.temperature))
	if err != nil {
		g.logger.Error("completion failed", "err", err)
		return "", err
	}
	return completion, nil
}

// StreamText generates a completion, delivering fragments to fn.
func (g *Generator) StreamText(ctx context.Context, prompt string, fn func(ctx context.Context, chunk []byte) error) error {
	_, err := llms.GenerateFromSinglePrompt(ctx, g.llm, prompt,
		llms.WithTemperature(g.temperature),
		llms.WithStreamingFunc(fn))
	if err != nil {
		g.logger.Error("streaming completion failed", "err", err)
	}
	return err
}
