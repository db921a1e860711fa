// Package pipeline sequences feed ingestion, candidate extraction, rarity
// sampling and per-word enrichment into flashcard records.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/tbaudier/rarelex/pkg/cards"
	"github.com/tbaudier/rarelex/pkg/extract"
)

// DocumentSource supplies raw corpus documents (the feeds package in
// production, a stub in tests).
type DocumentSource interface {
	Fetch(ctx context.Context, maxItems int) []string
}

// DefinitionLookup resolves one word to a definition, "" when unavailable.
type DefinitionLookup interface {
	Resolve(ctx context.Context, word string) string
}

// ExampleLookup finds a usage sentence, preferring the supplied corpus
// sentences. It never returns an empty string.
type ExampleLookup interface {
	Resolve(ctx context.Context, word string, sentences []string) string
}

// TranslationLookup translates a definition best-effort, "" on failure.
type TranslationLookup interface {
	Translate(ctx context.Context, text string) string
}

// Outcome distinguishes the empty-result terminal states from a run that
// produced cards. None of them is an error.
type Outcome int

const (
	// OutcomeOK means flashcards were produced.
	OutcomeOK Outcome = iota
	// OutcomeNoDocuments means no feed yielded any text.
	OutcomeNoDocuments
	// OutcomeNoCandidates means the corpus held no advanced-word tokens.
	OutcomeNoCandidates
	// OutcomeNoRarities means every candidate occurred more than once.
	OutcomeNoRarities
)

// Result is the terminal state of one run plus its flashcards.
type Result struct {
	Outcome Outcome
	Cards   []cards.Record
}

// Runner wires the pipeline stages together.
type Runner struct {
	Source       DocumentSource
	Extractor    *extract.Extractor
	Sampler      *extract.Sampler
	Definitions  DefinitionLookup
	Examples     ExampleLookup
	Translations TranslationLookup

	// MaxDocuments bounds how many corpus documents one run ingests.
	MaxDocuments int

	// DocumentDelay is the pause between successive documents, keeping
	// the ingestion boundary polite to third-party servers.
	DocumentDelay time.Duration

	// Workers sizes the resolution pool. PoolFactory lets tests inject
	// a custom pool.
	Workers     int
	PoolFactory func(workers, queue int) *WorkerPool

	Log *slog.Logger

	// OnProgress, when set, is called after each processed document.
	OnProgress func(current, total int)
}

var sentenceSplitRe = regexp.MustCompile(`[.!?]+\s+`)

// Run executes the full pipeline. The returned error is reserved for
// fatal conditions; empty-result runs report through Result.Outcome.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	docs := r.Source.Fetch(ctx, r.MaxDocuments)
	if len(docs) == 0 {
		r.info("no documents fetched")
		return Result{Outcome: OutcomeNoDocuments}, nil
	}

	var (
		sentences  []string
		candidates []extract.Candidate
	)
	for i, doc := range docs {
		sentences = append(sentences, splitSentences(doc)...)
		candidates = append(candidates, r.Extractor.Extract(doc)...)
		if r.OnProgress != nil {
			r.OnProgress(i+1, len(docs))
		}
		if r.DocumentDelay > 0 && i < len(docs)-1 {
			select {
			case <-ctx.Done():
			case <-time.After(r.DocumentDelay):
			}
		}
	}

	r.info("extraction complete",
		slog.Int("documents", len(docs)),
		slog.Int("candidates", len(candidates)))

	if len(candidates) == 0 {
		return Result{Outcome: OutcomeNoCandidates}, nil
	}

	sample := r.Sampler.Sample(candidates)
	if len(sample) == 0 {
		return Result{Outcome: OutcomeNoRarities}, nil
	}

	records, err := r.resolveAll(ctx, sample, sentences)
	if err != nil {
		return Result{}, err
	}
	return Result{Outcome: OutcomeOK, Cards: records}, nil
}

// resolveAll enriches every sampled word. Resolution runs on a small
// worker pool; each job writes only its own slot, so the output keeps the
// sampler's lemma-sorted order regardless of completion order. A canceled
// ctx stops the workers before the queue drains, leaving unfilled slots,
// so cancellation is an error rather than a partial result.
func (r *Runner) resolveAll(ctx context.Context, sample []extract.Candidate, sentences []string) ([]cards.Record, error) {
	workers := r.Workers
	if workers <= 0 {
		workers = 1
	}

	var pool *WorkerPool
	if r.PoolFactory != nil {
		pool = r.PoolFactory(workers, len(sample))
	} else {
		pool = NewWorkerPool(workers, len(sample))
	}
	pool.Start(ctx)

	records := make([]cards.Record, len(sample))
	for i, cand := range sample {
		i, cand := i, cand
		err := pool.Submit(func(ctx context.Context) error {
			definition := r.Definitions.Resolve(ctx, cand.Lemma)
			example := r.Examples.Resolve(ctx, cand.Lemma, sentences)
			english := ""
			if definition != "" {
				english = r.Translations.Translate(ctx, definition)
			}
			records[i] = cards.Record{
				Word:       cand.Lemma,
				POS:        cand.POS,
				Definition: definition,
				Example:    example,
				English:    english,
			}
			return nil
		})
		if err != nil {
			// Pool closed under us; fill the slot synchronously.
			records[i] = cards.Record{
				Word:    cand.Lemma,
				POS:     cand.POS,
				Example: r.Examples.Resolve(ctx, cand.Lemma, sentences),
			}
		}
	}
	pool.Close()
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("pipeline: resolve words: %w", err)
	}
	return records, nil
}

// splitSentences segments a document on sentence-final punctuation,
// keeping the sentences around for example lookup.
func splitSentences(text string) []string {
	var out []string
	for _, s := range sentenceSplitRe.Split(text, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (r *Runner) info(msg string, args ...any) {
	if r.Log != nil {
		r.Log.Info(msg, args...)
	}
}
