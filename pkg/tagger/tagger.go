// Package tagger turns raw French text into part-of-speech tagged tokens.
package tagger

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/fr"
)

// POS is a coarse part-of-speech label.
type POS string

const (
	Noun  POS = "NOUN"
	Verb  POS = "VERB"
	Adj   POS = "ADJ"
	Adv   POS = "ADV"
	Other POS = "OTHER"
)

// Token represents a single analyzed unit of text.
type Token struct {
	Surface string // The text as it appears (e.g. "marchait")
	Lemma   string // The dictionary form, lowercased (e.g. "marcher")
	POS     POS
	IsAlpha bool // True when the surface form is letters only
	RawLen  int  // Rune length of the surface form
}

// Tagger is the tagging capability injected into the extractor.
// Implementations return tokens in source-text order.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// French tags French text using a golem lemmatizer. Part-of-speech labels
// come from a word→POS map (typically derived from the FLELex lexicon),
// since the lemmatizer itself carries no POS information.
type French struct {
	lemm      *golem.Lemmatizer
	posByWord map[string]POS
}

// NewFrench builds the default French tagger. posByWord maps lowercase
// surface forms and lemmas to their POS; words absent from the map tag
// as Other.
func NewFrench(posByWord map[string]POS) (*French, error) {
	lemm, err := golem.New(fr.New())
	if err != nil {
		return nil, fmt.Errorf("tagger: load french dictionary: %w", err)
	}
	return &French{lemm: lemm, posByWord: posByWord}, nil
}

// Tag splits text into word tokens, lemmatizes each and assigns POS.
func (f *French) Tag(text string) ([]Token, error) {
	var tokens []Token
	for _, surface := range splitWords(text) {
		lemma := strings.ToLower(f.lemm.LemmaLower(surface))
		if lemma == "" {
			lemma = strings.ToLower(surface)
		}
		pos, ok := f.posByWord[strings.ToLower(surface)]
		if !ok {
			pos, ok = f.posByWord[lemma]
		}
		if !ok {
			pos = Other
		}
		tokens = append(tokens, Token{
			Surface: surface,
			Lemma:   lemma,
			POS:     pos,
			IsAlpha: isAlpha(surface),
			RawLen:  utf8.RuneCountInString(surface),
		})
	}
	return tokens, nil
}

// splitWords breaks text into runs of letters and digits. Apostrophes
// split, so French elision ("l'économie") yields the article and the word
// separately. Digit-bearing runs survive here and are dropped later by the
// extractor's IsAlpha check.
func splitWords(text string) []string {
	var words []string
	var current strings.Builder
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			current.WriteRune(r)
			continue
		}
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		words = append(words, current.String())
	}
	return words
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
