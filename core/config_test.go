package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaskConfigValid(t *testing.T) {
	require.NoError(t, ValidateTaskConfig(DefaultTaskConfig()))
}

func TestDiffNoChange(t *testing.T) {
	cfg := DefaultTaskConfig()
	diff := cfg.Diff(cfg)
	assert.False(t, diff.Any())
}

func TestDiffRetrieverOnlyChange(t *testing.T) {
	cfg := DefaultTaskConfig()
	next := cfg
	next.Rag.TopK = 5

	diff := cfg.Diff(next)
	assert.True(t, diff.RetrieverChanged)
	// A retriever-only change must not touch the embedding client
	assert.False(t, diff.EmbeddingsChanged)
	assert.False(t, diff.LLMChanged)
	assert.False(t, diff.SplitChanged)
}

func TestDiffSplitChange(t *testing.T) {
	cfg := DefaultTaskConfig()
	next := cfg
	next.Rag.SplitLen = 500
	next.Rag.SplitOverlap = 50

	diff := cfg.Diff(next)
	assert.True(t, diff.SplitChanged)
	assert.False(t, diff.EmbeddingsChanged)
}

func TestDiffEmbeddingsChange(t *testing.T) {
	cfg := DefaultTaskConfig()
	next := cfg
	next.Embeddings.EmbeddingModel = "text-embedding-v3"

	diff := cfg.Diff(next)
	assert.True(t, diff.EmbeddingsChanged)
	assert.False(t, diff.LLMChanged)
}

func TestDiffLLMAndSummaryIndependent(t *testing.T) {
	cfg := DefaultTaskConfig()
	next := cfg
	next.LLM.SummaryLLMName = "qwen-turbo"

	diff := cfg.Diff(next)
	assert.True(t, diff.SummaryLLMChanged)
	assert.False(t, diff.LLMChanged)
}

func TestValidateRagConfig(t *testing.T) {
	valid := RagConfig{SplitLen: 1000, SplitOverlap: 200, SplitWay: SplitWindow, TopK: 3}
	require.NoError(t, ValidateRagConfig(valid))

	bad := valid
	bad.SplitLen = 0
	assert.ErrorIs(t, ValidateRagConfig(bad), ErrInvalidSplitPolicy)

	bad = valid
	bad.SplitOverlap = 1000
	assert.ErrorIs(t, ValidateRagConfig(bad), ErrInvalidSplitPolicy)

	bad = valid
	bad.SplitOverlap = -1
	assert.ErrorIs(t, ValidateRagConfig(bad), ErrInvalidSplitPolicy)

	bad = valid
	bad.SplitWay = "semantic"
	assert.ErrorIs(t, ValidateRagConfig(bad), ErrUnsupportedSplitWay)

	bad = valid
	bad.TopK = 0
	assert.ErrorIs(t, ValidateRagConfig(bad), ErrInvalidConfig)
}

func TestValidateTaskConfig(t *testing.T) {
	cfg := DefaultTaskConfig()

	bad := cfg
	bad.LLM.LLMName = ""
	assert.ErrorIs(t, ValidateTaskConfig(bad), ErrInvalidConfig)

	bad = cfg
	bad.Embeddings.EmbeddingModel = ""
	assert.ErrorIs(t, ValidateTaskConfig(bad), ErrInvalidConfig)

	bad = cfg
	bad.Retrievers = MultiRetrieverConfig{UseMultiRetriever: true, Strategy: "rerank"}
	assert.ErrorIs(t, ValidateTaskConfig(bad), ErrInvalidConfig)

	good := cfg
	good.Retrievers = MultiRetrieverConfig{UseMultiRetriever: true, Strategy: StrategySummarize}
	require.NoError(t, ValidateTaskConfig(good))
}

func TestValidateIngestionJob(t *testing.T) {
	job := &IngestionJob{
		FilePath: "/tmp/doc.txt",
		ParentID: 1,
		Split:    DefaultTaskConfig().Rag,
	}
	require.NoError(t, ValidateIngestionJob(job))

	assert.ErrorIs(t, ValidateIngestionJob(nil), ErrInvalidConfig)

	bad := *job
	bad.FilePath = ""
	assert.ErrorIs(t, ValidateIngestionJob(&bad), ErrEmptyFilePath)
}

func TestHashContent(t *testing.T) {
	a := HashContent([]byte("same bytes"))
	b := HashContent([]byte("same bytes"))
	c := HashContent([]byte("other bytes"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 64)
}
