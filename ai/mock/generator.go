package mock

import (
	"context"
	"sync/atomic"
)

// Generator is a test double for ai.Generator.
// It allows custom behavior injection via function fields.
type Generator struct {
	// GenerateTextFunc is called by GenerateText if set.
	// If nil, returns a canned completion echoing the prompt length.
	GenerateTextFunc func(ctx context.Context, prompt string) (string, error)

	// StreamTextFunc is called by StreamText if set.
	// If nil, streams Fragments (or a default pair) one call to fn each.
	StreamTextFunc func(ctx context.Context, prompt string, fn func(ctx context.Context, chunk []byte) error) error

	// Fragments are streamed by the default StreamText behavior.
	Fragments []string

	generateCalls atomic.Int64
	streamCalls   atomic.Int64
}

// NewGenerator creates a mock generator with default behavior.
func NewGenerator() *Generator {
	return &Generator{}
}

// GenerateText returns a canned completion.
func (m *Generator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.generateCalls.Add(1)

	if m.GenerateTextFunc != nil {
		return m.GenerateTextFunc(ctx, prompt)
	}
	return "mock answer", nil
}

// StreamText streams Fragments to fn, honoring cancellation between
// fragments the way a real client honors it between network reads.
func (m *Generator) StreamText(ctx context.Context, prompt string, fn func(ctx context.Context, chunk []byte) error) error {
	m.streamCalls.Add(1)

	if m.StreamTextFunc != nil {
		return m.StreamTextFunc(ctx, prompt, fn)
	}

	fragments := m.Fragments
	if len(fragments) == 0 {
		fragments = []string{"mock ", "answer"}
	}
	for _, fragment := range fragments {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := fn(ctx, []byte(fragment)); err != nil {
			return err
		}
	}
	return nil
}

// GenerateCallCount returns the number of GenerateText calls.
func (m *Generator) GenerateCallCount() int {
	return int(m.generateCalls.Load())
}

// StreamCallCount returns the number of StreamText calls.
func (m *Generator) StreamCallCount() int {
	return int(m.streamCalls.Load())
}
