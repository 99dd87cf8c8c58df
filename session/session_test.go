package session

import (
	"context"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/core"
	"github.com/poiesic/docquery/storage"
	"github.com/poiesic/docquery/storage/badger"
	"github.com/poiesic/docquery/vectorstore"
)

type sessionFixture struct {
	sess      *RetrievalSession
	store     *vectorstore.Store
	generator *mock.Generator
	parents   storage.ParentChunkRepository
}

func setupSession(t *testing.T) *sessionFixture {
	t.Helper()
	vectorRepo, _, parentRepo, _, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	t.Cleanup(func() { backend.Close() })

	store, err := vectorstore.New(mock.NewEmbedder(), vectorRepo, "test-model")
	require.NoError(t, err)

	generator := mock.NewGenerator()
	build := func(ctx context.Context, ownerKey string) (*Components, error) {
		return &Components{
			Store:     store,
			Generator: generator,
			Parents:   parentRepo,
			TopK:      3,
		}, nil
	}

	cache, err := NewCache(build, newFakeVersions())
	require.NoError(t, err)
	sess, err := cache.GetOrCreate(context.Background(), "owner")
	require.NoError(t, err)

	return &sessionFixture{
		sess:      sess,
		store:     store,
		generator: generator,
		parents:   parentRepo,
	}
}

func TestQueryEmptyQuestion(t *testing.T) {
	f := setupSession(t)

	_, err := f.sess.Query(context.Background(), "   ")
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
}

func TestQueryZeroMatchesAnswersDontKnow(t *testing.T) {
	f := setupSession(t)

	answer, err := f.sess.Query(context.Background(), "what is in the documents?")
	require.NoError(t, err)
	assert.Equal(t, DontKnowAnswer, answer)
	// The model is never consulted for an empty retrieval
	assert.Equal(t, 0, f.generator.GenerateCallCount())
}

func TestQueryAssemblesPromptFromMatches(t *testing.T) {
	f := setupSession(t)
	ctx := context.Background()

	_, err := f.store.Add(ctx, []core.Chunk{
		{Text: "the capital of France is Paris", ParentID: 1, Seq: 0},
	})
	require.NoError(t, err)

	var captured string
	f.generator.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		captured = prompt
		return "Paris", nil
	}

	answer, err := f.sess.Query(ctx, "what is the capital of France?")
	require.NoError(t, err)
	assert.Equal(t, "Paris", answer)
	assert.Contains(t, captured, "the capital of France is Paris")
	assert.Contains(t, captured, "what is the capital of France?")
}

func TestQueryResolvesSummariesToOriginals(t *testing.T) {
	f := setupSession(t)
	ctx := context.Background()

	original := "the full original passage with every detail"
	require.NoError(t, f.parents.PutParentChunks(ctx, &core.ParentChunk{
		Key:  "parent-key-1",
		Text: original,
	}))
	_, err := f.store.Add(ctx, []core.Chunk{
		{Text: "a compressed summary", ParentID: 1, Seq: 0, SummaryOf: "parent-key-1"},
	})
	require.NoError(t, err)

	var captured string
	f.generator.GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		captured = prompt
		return "answer", nil
	}

	_, err = f.sess.Query(ctx, "what does the passage say?")
	require.NoError(t, err)
	assert.Contains(t, captured, original)
	// The summary substitute itself never reaches the prompt
	assert.NotContains(t, captured, "a compressed summary")
}

func TestStreamDeliversFragments(t *testing.T) {
	f := setupSession(t)
	ctx := context.Background()

	_, err := f.store.Add(ctx, []core.Chunk{{Text: "streaming source", ParentID: 1}})
	require.NoError(t, err)
	f.generator.Fragments = []string{"one ", "two ", "three"}

	fragments, err := f.sess.Stream(ctx, "streaming source")
	require.NoError(t, err)

	var got []string
	for fragment := range fragments {
		got = append(got, fragment.Data)
	}
	assert.Equal(t, []string{"one ", "two ", "three"}, got)
}

func TestStreamZeroMatches(t *testing.T) {
	f := setupSession(t)

	fragments, err := f.sess.Stream(context.Background(), "nothing indexed")
	require.NoError(t, err)

	var got []string
	for fragment := range fragments {
		got = append(got, fragment.Data)
	}
	assert.Equal(t, []string{DontKnowAnswer}, got)
	assert.Equal(t, 0, f.generator.StreamCallCount())
}

func TestStreamStopsOnCancellation(t *testing.T) {
	f := setupSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	_, err := f.store.Add(ctx, []core.Chunk{{Text: "cancel source", ParentID: 1}})
	require.NoError(t, err)

	var pulls atomic.Int64
	f.generator.StreamTextFunc = func(ctx context.Context, prompt string, fn func(ctx context.Context, chunk []byte) error) error {
		fragments := []string{"f1", "f2", "f3", "f4", "f5"}
		for _, fragment := range fragments {
			if err := ctx.Err(); err != nil {
				return err
			}
			pulls.Add(1)
			if err := fn(ctx, []byte(fragment)); err != nil {
				return err
			}
		}
		return nil
	}

	fragments, err := f.sess.Stream(ctx, "cancel source")
	require.NoError(t, err)

	// Consume two fragments, then disconnect
	first := <-fragments
	second := <-fragments
	assert.Equal(t, "f1", first.Data)
	assert.Equal(t, "f2", second.Data)
	cancel()

	// Give the producer time to observe the cancellation
	time.Sleep(100 * time.Millisecond)
	var extras int
	for range fragments {
		extras++
	}
	assert.Equal(t, 0, extras)

	// The model stream was pulled at most once past the consumed
	// fragments and never again after disconnect
	assert.LessOrEqual(t, pulls.Load(), int64(3))
}

func TestStreamEmptyQuestion(t *testing.T) {
	f := setupSession(t)

	_, err := f.sess.Stream(context.Background(), "")
	assert.ErrorIs(t, err, core.ErrEmptyQuestion)
}

func TestFragmentSSEFraming(t *testing.T) {
	assert.Equal(t, "data: {\"data\":\"hello\"}\n\n", Fragment{Data: "hello"}.SSE())
	assert.Equal(t, "data: {\"data\":\"with \\\"quotes\\\"\"}\n\n", Fragment{Data: `with "quotes"`}.SSE())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "failed", StateFailed.String())
}

func TestPromptTemplate(t *testing.T) {
	prompt, err := formatAnswerPrompt("ctx text", "the question")
	require.NoError(t, err)
	assert.True(t, strings.Contains(prompt, "ctx text"))
	assert.True(t, strings.Contains(prompt, "the question"))
	assert.True(t, strings.Contains(prompt, "don't know"))
}
