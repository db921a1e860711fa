package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/tbaudier/rarelex/pkg/cards"
	"github.com/tbaudier/rarelex/pkg/config"
	"github.com/tbaudier/rarelex/pkg/extract"
	"github.com/tbaudier/rarelex/pkg/feeds"
	"github.com/tbaudier/rarelex/pkg/lexicon"
	"github.com/tbaudier/rarelex/pkg/pipeline"
	"github.com/tbaudier/rarelex/pkg/resolve"
	"github.com/tbaudier/rarelex/pkg/tagger"
)

func main() {
	lexiconFlag := flag.String("lexicon", "", "Path to the FLELex TSV lexicon (overrides config)")
	commonFlag := flag.String("common-words", "", "Path to the common-word exclusion list (overrides config)")
	outFlag := flag.String("out", "", "Path for the flashcard TSV output (overrides config)")
	maxFlag := flag.Int("max-articles", 0, "Maximum number of articles to harvest (overrides config)")
	fullTextFlag := flag.Bool("full-text", false, "Fetch full article text instead of RSS summaries")
	flag.Parse()

	// A local .env is a convenience, not a requirement.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *lexiconFlag != "" {
		cfg.Lexicon.Path = *lexiconFlag
	}
	if *commonFlag != "" {
		cfg.Lexicon.CommonWordsPath = *commonFlag
	}
	if *outFlag != "" {
		cfg.Output.Path = *outFlag
	}
	if *maxFlag > 0 {
		cfg.Feeds.MaxArticles = *maxFlag
	}
	if *fullTextFlag {
		cfg.Feeds.FullText = true
	}

	logger := newLogger(cfg.Log.Level)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The reference lexicon is the one thing the pipeline cannot run
	// without.
	lex, err := lexicon.Load(cfg.Lexicon.Path)
	if err != nil {
		log.Fatalf("Failed to load lexicon: %v", err)
	}
	fmt.Printf("Loaded %d advanced lemmas from %s\n", len(lex.Advanced), cfg.Lexicon.Path)

	excluded := lexicon.NewExclusionSet(cfg.Lexicon.CommonWordsPath, logger)

	var tag tagger.Tagger
	if t, err := tagger.NewFrench(lex.POS); err != nil {
		logger.Warn("tagger unavailable, documents will yield no candidates",
			slog.String("error", err.Error()))
	} else {
		tag = t
	}

	fetcher := feeds.NewFetcher(cfg.Feeds.URLs, logger)
	fetcher.FullText = cfg.Feeds.FullText
	fetcher.Delay = cfg.Feeds.ArticleDelay

	runner := &pipeline.Runner{
		Source: fetcher,
		Extractor: &extract.Extractor{
			Advanced: lex.Advanced,
			Excluded: excluded,
			Tagger:   tag,
			Log:      logger,
		},
		Sampler: extract.NewSampler(cfg.Sample.Size, nil),
		Definitions: resolve.NewDefinitionResolver(logger,
			resolve.NewDictAPISource(cfg.Resolve.DictAPIURL, cfg.Resolve.Timeout),
			resolve.NewWiktionarySource(cfg.Resolve.WiktionaryURL, cfg.Resolve.Timeout),
			resolve.NewTatoebaSource(cfg.Resolve.TatoebaURL, cfg.Resolve.Timeout),
			resolve.LocalGlossary{},
		),
		Examples:      resolve.NewExampleResolver(cfg.Resolve.WikiAPIURL, cfg.Resolve.Timeout, logger),
		Translations:  resolve.NewTranslator(cfg.Resolve.TranslateURL, cfg.Resolve.Timeout, logger),
		MaxDocuments:  cfg.Feeds.MaxArticles,
		DocumentDelay: cfg.Feeds.ArticleDelay,
		Workers:       cfg.Resolve.Workers,
		Log:           logger,
		OnProgress: func(current, total int) {
			fmt.Printf("Processing article %d/%d\n", current, total)
		},
	}

	result, err := runner.Run(ctx)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	switch result.Outcome {
	case pipeline.OutcomeNoDocuments:
		fmt.Println("No articles fetched.")
		return
	case pipeline.OutcomeNoCandidates:
		fmt.Println("No advanced-word candidates found. Nothing to do.")
		return
	case pipeline.OutcomeNoRarities:
		fmt.Println("Every candidate occurred more than once. Nothing to do.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("%d RARE, LONG ADVANCED WORDS WITH POS, DEFINITIONS & SENTENCES\n", len(result.Cards))
	fmt.Println(strings.Repeat("=", 60))
	for _, card := range result.Cards {
		definition := card.Definition
		if definition == "" {
			definition = "(définition indisponible)"
		}
		fmt.Printf("%-20s (%s)\n    Definition: %s\n    Example: %s\n\n",
			card.Word, card.POS, definition, card.Example)
	}

	if err := cards.WriteFile(cfg.Output.Path, result.Cards); err != nil {
		log.Fatalf("Failed to write flashcards: %v", err)
	}
	fmt.Printf("Wrote %d flashcards to %s\n", len(result.Cards), cfg.Output.Path)
}

func newLogger(level string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
