// Package config holds the application configuration, loaded from an
// optional YAML file with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration.
type Config struct {
	Feeds   FeedsConfig   `yaml:"feeds"`
	Lexicon LexiconConfig `yaml:"lexicon"`
	Sample  SampleConfig  `yaml:"sample"`
	Resolve ResolveConfig `yaml:"resolve"`
	Output  OutputConfig  `yaml:"output"`
	Log     LogConfig     `yaml:"log"`
}

// FeedsConfig controls corpus ingestion.
type FeedsConfig struct {
	// URLs is the ordered RSS endpoint list. Empty means the built-in
	// French news feeds.
	URLs         []string      `yaml:"urls"          env:"FEED_URLS" env-separator:","`
	MaxArticles  int           `yaml:"max_articles"  env:"FEED_MAX_ARTICLES"  env-default:"10"`
	FullText     bool          `yaml:"full_text"     env:"FEED_FULL_TEXT"     env-default:"false"`
	ArticleDelay time.Duration `yaml:"article_delay" env:"FEED_ARTICLE_DELAY" env-default:"1s"`
}

// LexiconConfig locates the reference lexicon and the common-word list.
type LexiconConfig struct {
	Path            string `yaml:"path"              env:"LEXICON_PATH"      env-default:"data/FLELex_TreeTagger.tsv"`
	CommonWordsPath string `yaml:"common_words_path" env:"COMMON_WORDS_PATH" env-default:"data/frequent_french_words.txt"`
}

// SampleConfig bounds the rarity sample.
type SampleConfig struct {
	Size int `yaml:"size" env:"SAMPLE_SIZE" env-default:"30"`
}

// ResolveConfig controls the enrichment sources. The base URLs default to
// the public services; tests and mirrors override them.
type ResolveConfig struct {
	Timeout       time.Duration `yaml:"timeout"         env:"RESOLVE_TIMEOUT" env-default:"5s"`
	Workers       int           `yaml:"workers"         env:"RESOLVE_WORKERS" env-default:"4"`
	DictAPIURL    string        `yaml:"dictapi_url"     env:"RESOLVE_DICTAPI_URL"`
	WiktionaryURL string        `yaml:"wiktionary_url"  env:"RESOLVE_WIKTIONARY_URL"`
	WikiAPIURL    string        `yaml:"wiki_api_url"    env:"RESOLVE_WIKI_API_URL"`
	TatoebaURL    string        `yaml:"tatoeba_url"     env:"RESOLVE_TATOEBA_URL"`
	TranslateURL  string        `yaml:"translate_url"   env:"RESOLVE_TRANSLATE_URL"`
}

// OutputConfig locates the flashcard TSV.
type OutputConfig struct {
	Path string `yaml:"path" env:"OUTPUT_PATH" env-default:"data/advanced_flashcard_words.tsv"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults. The file path comes from CONFIG_PATH
// (fallback "./config.yaml"); a missing file at the fallback path is fine
// and configuration comes from ENV + defaults only.
func Load() (*Config, error) {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	explicitPath := path != ""
	if !explicitPath {
		path = "./config.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if explicitPath {
		return nil, fmt.Errorf("config: file %s: %w", path, err)
	} else {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("config: read env: %w", err)
		}
	}

	return &cfg, nil
}
