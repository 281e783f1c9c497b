package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 1000, cfg.Chunker.ChunkSize)
	assert.Equal(t, 200, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
	assert.Equal(t, "text-embedding-3-small", cfg.Embedding.Model)
	assert.Empty(t, cfg.Embedding.Endpoint, "no endpoint means local fallback")
	assert.NotEmpty(t, cfg.Normalizer.HeaderFooters)
	assert.NotEmpty(t, cfg.Chat.Characters)
}

func TestDefaultHeaderFootersCoverBothApostropheForms(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Contains(t, cfg.Normalizer.HeaderFooters, "Harry Potter and the Sorcerer's Stone")
	assert.Contains(t, cfg.Normalizer.HeaderFooters, "Harry Potter and the Sorcerer’s Stone")
}

func TestLoadAppliesDefaultsToPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"document:\n  path: /books/hp.pdf\nchunker:\n  chunk_size: 512\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/books/hp.pdf", cfg.Document.Path)
	assert.Equal(t, 512, cfg.Chunker.ChunkSize)
	assert.Equal(t, 200, cfg.Chunker.ChunkOverlap)
	assert.Equal(t, 5, cfg.Retrieval.TopK)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunker: [not, a, map"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sub", "config.yaml")

	cfg := defaultConfig()
	cfg.Embedding.Endpoint = "http://localhost:11434/v1"
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
