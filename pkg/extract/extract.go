// Package extract filters tagged corpus tokens down to advanced-vocabulary
// candidates and samples the rare ones.
package extract

import (
	"log/slog"
	"strings"

	"github.com/tbaudier/rarelex/pkg/lexicon"
	"github.com/tbaudier/rarelex/pkg/tagger"
)

// Candidate is a token that survived every extraction filter.
// Candidates are counted by (Lemma, POS) identity.
type Candidate struct {
	Lemma string // lowercased
	POS   tagger.POS
}

var contentPOS = map[tagger.POS]bool{
	tagger.Noun: true,
	tagger.Verb: true,
	tagger.Adj:  true,
	tagger.Adv:  true,
}

// Extractor applies the candidate filters to one document at a time.
// Advanced and Excluded are built once at startup and never mutated.
type Extractor struct {
	Advanced lexicon.Set
	Excluded lexicon.Set
	Tagger   tagger.Tagger
	Log      *slog.Logger
}

// Extract returns the document's candidates in token order. A token
// qualifies only when all filters hold: letters only, longer than six
// runes, lemma in the advanced set, a content part of speech, and lemma
// not excluded. An absent or failing tagger degrades to an empty result
// for this document rather than aborting the batch.
func (e *Extractor) Extract(text string) []Candidate {
	if e.Tagger == nil {
		e.warn("tagger unavailable, skipping document", nil)
		return nil
	}
	tokens, err := e.Tagger.Tag(text)
	if err != nil {
		e.warn("tagging failed, skipping document", err)
		return nil
	}

	var out []Candidate
	for _, tok := range tokens {
		lemma := strings.ToLower(tok.Lemma)
		if !tok.IsAlpha ||
			tok.RawLen <= 6 ||
			!e.Advanced.Contains(lemma) ||
			!contentPOS[tok.POS] ||
			e.Excluded.Contains(lemma) {
			continue
		}
		out = append(out, Candidate{Lemma: lemma, POS: tok.POS})
	}
	return out
}

func (e *Extractor) warn(msg string, err error) {
	if e.Log == nil {
		return
	}
	if err != nil {
		e.Log.Warn(msg, slog.String("error", err.Error()))
		return
	}
	e.Log.Warn(msg)
}
