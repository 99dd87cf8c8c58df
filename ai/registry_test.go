package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/docquery/core"
)

func TestLookupModelKnown(t *testing.T) {
	info, err := LookupModel("qwen-plus")
	require.NoError(t, err)
	assert.Equal(t, "qwen-plus", info.Model)
	assert.NotEmpty(t, info.BaseURL)
	assert.NotEmpty(t, info.EnvVar)
}

func TestLookupModelUnknown(t *testing.T) {
	_, err := LookupModel("gpt-imaginary")
	assert.ErrorIs(t, err, core.ErrUnknownModel)
}

func TestRegisterModel(t *testing.T) {
	RegisterModel("local-test-model", ModelInfo{
		EnvVar:  "LOCAL_API_KEY",
		BaseURL: "http://localhost:11434/v1",
		Model:   "local-test-model",
	})

	info, err := LookupModel("local-test-model")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:11434/v1", info.BaseURL)
}
