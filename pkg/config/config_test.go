package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultsFromEnvOnly(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Feeds.MaxArticles)
	assert.Equal(t, time.Second, cfg.Feeds.ArticleDelay)
	assert.False(t, cfg.Feeds.FullText)
	assert.Equal(t, 30, cfg.Sample.Size)
	assert.Equal(t, 5*time.Second, cfg.Resolve.Timeout)
	assert.Equal(t, 4, cfg.Resolve.Workers)
	assert.Equal(t, "data/FLELex_TreeTagger.tsv", cfg.Lexicon.Path)
	assert.Equal(t, "data/advanced_flashcard_words.tsv", cfg.Output.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Feeds.URLs, "empty means the built-in feed list")
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("FEED_MAX_ARTICLES", "3")
	t.Setenv("FEED_URLS", "https://a.example/rss,https://b.example/rss")
	t.Setenv("SAMPLE_SIZE", "5")
	t.Setenv("RESOLVE_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Feeds.MaxArticles)
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/rss"}, cfg.Feeds.URLs)
	assert.Equal(t, 5, cfg.Sample.Size)
	assert.Equal(t, 2*time.Second, cfg.Resolve.Timeout)
}

func TestYAMLFileWithEnvPriority(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sample:\n  size: 12\noutput:\n  path: out.tsv\n"), 0o644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("SAMPLE_SIZE", "7")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.Sample.Size, "environment wins over the file")
	assert.Equal(t, "out.tsv", cfg.Output.Path)
}

func TestExplicitMissingConfigFileIsAnError(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	_, err := Load()
	assert.Error(t, err)
}
