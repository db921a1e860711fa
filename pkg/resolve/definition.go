// Package resolve enriches sampled words with definitions, example
// sentences and translations from a chain of independent remote sources.
package resolve

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Every remote lookup shares the same bound so total latency per word
// stays predictable. No source gets a second attempt.
const DefaultTimeout = 5 * time.Second

// Source resolves one lowercase word to a definition. Implementations
// return ("", nil) for a clean miss and an error for any transport,
// timeout or malformed-response failure; both just move the chain along.
type Source interface {
	Name() string
	Lookup(ctx context.Context, word string) (string, error)
}

// DefinitionResolver walks an ordered source chain and short-circuits on
// the first non-empty definition. It never fails: when every source comes
// up empty the word's definition is the empty string.
type DefinitionResolver struct {
	Sources []Source
	Log     *slog.Logger
}

// NewDefinitionResolver builds a resolver over the given chain.
func NewDefinitionResolver(logger *slog.Logger, sources ...Source) *DefinitionResolver {
	return &DefinitionResolver{Sources: sources, Log: logger}
}

// Resolve returns the first definition found in chain order, or "".
func (r *DefinitionResolver) Resolve(ctx context.Context, word string) string {
	for _, src := range r.Sources {
		def, err := src.Lookup(ctx, word)
		if err != nil {
			if r.Log != nil {
				r.Log.Debug("definition source failed",
					slog.String("source", src.Name()),
					slog.String("word", word),
					slog.String("error", err.Error()))
			}
			continue
		}
		if def != "" {
			return def
		}
	}
	return ""
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}
