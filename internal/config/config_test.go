package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "{}"))
	require.NoError(t, err)

	assert.Equal(t, ":5500", cfg.Server.Addr)
	assert.Equal(t, "./data/uploads", cfg.Storage.UploadDir)
	assert.Equal(t, "./data/embeddings.json", cfg.Storage.StoreFile)
	assert.Equal(t, 500, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 100, cfg.Pipeline.ChunkOverlap)
	assert.Equal(t, 50, cfg.Pipeline.MinChunkLen)
	assert.Equal(t, 2, cfg.Pipeline.LineMargin)
	assert.Equal(t, "ollama", cfg.Embedder.Provider)
	assert.Equal(t, "find_similar_documents", cfg.Assistant.RetrievalTool)
	assert.Equal(t, 5, cfg.Assistant.DefaultK)
	assert.Equal(t, time.Second, cfg.Assistant.PollInterval)
	assert.Equal(t, 2*time.Minute, cfg.Assistant.PollTimeout)
}

func TestLoadConfigOverrides(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
server:
  addr: ":8080"
pipeline:
  chunk_size: 800
  min_chunk_len: 30
embedder:
  provider: openai
  model: text-embedding-3-small
assistant:
  poll_interval: 500ms
  default_k: 3
`))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 800, cfg.Pipeline.ChunkSize)
	assert.Equal(t, 30, cfg.Pipeline.MinChunkLen)
	assert.Equal(t, "openai", cfg.Embedder.Provider)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedder.Model)
	assert.Equal(t, 500*time.Millisecond, cfg.Assistant.PollInterval)
	assert.Equal(t, 3, cfg.Assistant.DefaultK)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigKeyFromEnvironment(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig(writeConfig(t, "{}"))
	require.NoError(t, err)
	assert.Equal(t, "sk-test", cfg.Assistant.APIKey)
}
