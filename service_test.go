package docquery

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/ai"
	"github.com/poiesic/docquery/ai/mock"
	"github.com/poiesic/docquery/core"
)

type serviceFixture struct {
	svc      *Service
	provider *mock.Provider
	factory  *countingFactory
}

type countingFactory struct {
	builds   atomic.Int64
	provider *mock.Provider
}

func (f *countingFactory) build(cfg core.TaskConfig) (ai.Provider, error) {
	f.builds.Add(1)
	return f.provider, nil
}

func setupService(t *testing.T, opts ...ServiceOption) *serviceFixture {
	t.Helper()
	factory := &countingFactory{provider: mock.NewProvider()}

	opts = append([]ServiceOption{
		WithInMemoryStorage(),
		WithProviderFactory(factory.build),
	}, opts...)
	svc, err := NewService("", opts...)
	require.NoError(t, err)
	t.Cleanup(func() { svc.Close() })

	return &serviceFixture{svc: svc, provider: factory.provider, factory: factory}
}

func writeDocument(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func waitForIngestion(t *testing.T, svc *Service, parentID core.ParentID, chunks int) {
	t.Helper()
	require.Eventually(t, func() bool {
		links, err := svc.linkRepo.GetLinksByParent(context.Background(), parentID)
		return err == nil && len(links) == chunks
	}, 5*time.Second, 20*time.Millisecond)
}

func TestIngestAndQuery(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	path := writeDocument(t, "the answer to everything is forty-two")
	require.NoError(t, f.svc.Ingest(ctx, path, 1))
	waitForIngestion(t, f.svc, 1, 1)

	f.provider.MockGenerator().GenerateTextFunc = func(ctx context.Context, prompt string) (string, error) {
		require.Contains(t, prompt, "forty-two")
		return "forty-two", nil
	}

	answer, err := f.svc.Query(ctx, "user-1", "what is the answer?")
	require.NoError(t, err)
	assert.Equal(t, "forty-two", answer)
}

func TestIngestDuplicateContent(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	content := "identical document content"
	first := writeDocument(t, content)
	second := writeDocument(t, content)

	require.NoError(t, f.svc.Ingest(ctx, first, 1))
	err := f.svc.Ingest(ctx, second, 2)
	assert.ErrorIs(t, err, core.ErrDuplicateFile)
}

func TestIngestDuplicateAllowedAfterDelete(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	path := writeDocument(t, "deletable content")
	require.NoError(t, f.svc.Ingest(ctx, path, 1))
	waitForIngestion(t, f.svc, 1, 1)

	require.NoError(t, f.svc.DeleteParent(ctx, 1))
	require.NoError(t, f.svc.Ingest(ctx, path, 3))
}

func TestDeleteParentRemovesChunks(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	path := writeDocument(t, strings.Repeat("d", 2500))
	require.NoError(t, f.svc.Ingest(ctx, path, 7))
	waitForIngestion(t, f.svc, 7, 4)

	require.NoError(t, f.svc.DeleteParent(ctx, 7))

	links, err := f.svc.linkRepo.GetLinksByParent(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, links)

	// Deleting again is a no-op
	require.NoError(t, f.svc.DeleteParent(ctx, 7))

	answer, err := f.svc.Query(ctx, "user-1", "what was in the deleted file?")
	require.NoError(t, err)
	assert.Contains(t, answer, "don't know")
}

func TestQueryWithEmptyIndex(t *testing.T) {
	f := setupService(t)

	answer, err := f.svc.Query(context.Background(), "user-1", "anything?")
	require.NoError(t, err)
	assert.Contains(t, answer, "don't know")
	assert.Equal(t, 0, f.provider.MockGenerator().GenerateCallCount())
}

func TestStreamThroughService(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	path := writeDocument(t, "streamed document body")
	require.NoError(t, f.svc.Ingest(ctx, path, 1))
	waitForIngestion(t, f.svc, 1, 1)

	f.provider.MockGenerator().Fragments = []string{"part1 ", "part2"}
	fragments, err := f.svc.Stream(ctx, "user-1", "what does it say?")
	require.NoError(t, err)

	var got []string
	for fragment := range fragments {
		got = append(got, fragment.Data)
	}
	assert.Equal(t, []string{"part1 ", "part2"}, got)
}

func TestApplyConfigNoChange(t *testing.T) {
	f := setupService(t)

	before := f.factory.builds.Load()
	require.NoError(t, f.svc.ApplyConfig(context.Background(), "user-1", f.svc.Config()))
	assert.Equal(t, before, f.factory.builds.Load())
}

func TestApplyConfigRetrieverOnlyKeepsPipeline(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	next := f.svc.Config()
	next.Rag.TopK = 5

	before := f.factory.builds.Load()
	require.NoError(t, f.svc.ApplyConfig(ctx, "user-1", next))

	// The embedding client and provider were not rebuilt
	assert.Equal(t, before, f.factory.builds.Load())
	assert.Equal(t, 5, f.svc.Config().Rag.TopK)

	// The owner's version advanced so sessions reload lazily
	v, err := f.svc.versionRepo.Version(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(1), v)
}

func TestApplyConfigModelChangeRebuilds(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	next := f.svc.Config()
	next.LLM.Temperature = 0.7

	before := f.factory.builds.Load()
	require.NoError(t, f.svc.ApplyConfig(ctx, "user-1", next))
	assert.Equal(t, before+1, f.factory.builds.Load())
}

func TestApplyConfigInvalidKeepsPrevious(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	previous := f.svc.Config()
	bad := previous
	bad.Rag.SplitLen = -1

	require.Error(t, f.svc.ApplyConfig(ctx, "user-1", bad))
	assert.Equal(t, previous, f.svc.Config())

	// No version bump on a rejected configuration
	v, err := f.svc.versionRepo.Version(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, uint64(0), v)
}

func TestApplyConfigEmptyOwner(t *testing.T) {
	f := setupService(t)

	err := f.svc.ApplyConfig(context.Background(), " ", f.svc.Config())
	assert.ErrorIs(t, err, core.ErrEmptyOwnerKey)
}

func TestConfigChangeReloadsSessions(t *testing.T) {
	f := setupService(t)
	ctx := context.Background()

	path := writeDocument(t, "session reload source")
	require.NoError(t, f.svc.Ingest(ctx, path, 1))
	waitForIngestion(t, f.svc, 1, 1)

	_, err := f.svc.Query(ctx, "user-1", "warm the session")
	require.NoError(t, err)

	next := f.svc.Config()
	next.Rag.TopK = 7
	require.NoError(t, f.svc.ApplyConfig(ctx, "user-1", next))

	// The cached session picks up the new retriever setting on next use
	_, err = f.svc.Query(ctx, "user-1", "query after reconfigure")
	require.NoError(t, err)
	assert.Equal(t, 1, f.svc.SessionCache().Len())
}
