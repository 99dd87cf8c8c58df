package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
)

func TestLoadTaskConfigDefaults(t *testing.T) {
	cfg, err := loadTaskConfig("")
	require.NoError(t, err)
	assert.Equal(t, core.DefaultTaskConfig(), cfg)
}

func TestLoadTaskConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.toml")
	content := `
[llm]
llm_name = "qwen-turbo"
temperature = 0.3

[rag]
split_len = 500
split_overlap = 100
split_way = "window"
top_k = 5

[embeddings]
embedding_model = "text-embedding-v2"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := loadTaskConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "qwen-turbo", cfg.LLM.LLMName)
	assert.Equal(t, 0.3, cfg.LLM.Temperature)
	assert.Equal(t, 500, cfg.Rag.SplitLen)
	assert.Equal(t, 100, cfg.Rag.SplitOverlap)
	assert.Equal(t, 5, cfg.Rag.TopK)
}

func TestLoadTaskConfigPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.toml")
	require.NoError(t, os.WriteFile(path, []byte("[rag]\ntop_k = 9\n"), 0o644))

	cfg, err := loadTaskConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Rag.TopK)
	// Unset sections keep their defaults
	assert.Equal(t, core.DefaultTaskConfig().LLM, cfg.LLM)
}

func TestLoadTaskConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "task.toml")
	require.NoError(t, os.WriteFile(path, []byte("[rag]\nsplit_len = -5\n"), 0o644))

	_, err := loadTaskConfig(path)
	assert.Error(t, err)
}

func TestLoadTaskConfigMissingFile(t *testing.T) {
	_, err := loadTaskConfig(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
