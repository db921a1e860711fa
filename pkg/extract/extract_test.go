package extract

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tbaudier/rarelex/pkg/lexicon"
	"github.com/tbaudier/rarelex/pkg/tagger"
)

// stubTagger returns a fixed token list regardless of input.
type stubTagger struct {
	tokens []tagger.Token
	err    error
}

func (s *stubTagger) Tag(string) ([]tagger.Token, error) { return s.tokens, s.err }

func goodToken(lemma string) tagger.Token {
	return tagger.Token{
		Surface: lemma,
		Lemma:   lemma,
		POS:     tagger.Noun,
		IsAlpha: true,
		RawLen:  len([]rune(lemma)),
	}
}

func newExtractor(tokens []tagger.Token) *Extractor {
	return &Extractor{
		Advanced: lexicon.Set{"xénophobie": {}, "dégringoler": {}, "toutefois": {}},
		Excluded: lexicon.Set{"toutefois": {}},
		Tagger:   &stubTagger{tokens: tokens},
	}
}

func TestTokenPassingAllFiltersBecomesCandidate(t *testing.T) {
	e := newExtractor([]tagger.Token{goodToken("xénophobie")})

	got := e.Extract("ignored")

	assert.Equal(t, []Candidate{{Lemma: "xénophobie", POS: tagger.Noun}}, got)
}

func TestEachFilterExcludesAlone(t *testing.T) {
	nonAlpha := goodToken("xénophobie")
	nonAlpha.IsAlpha = false

	short := goodToken("xénophobie")
	short.RawLen = 6

	notAdvanced := goodToken("ordinaire")

	wrongPOS := goodToken("xénophobie")
	wrongPOS.POS = tagger.Other

	excluded := goodToken("toutefois")

	cases := map[string]tagger.Token{
		"not alpha":            nonAlpha,
		"six runes or fewer":   short,
		"not an advanced word": notAdvanced,
		"non-content POS":      wrongPOS,
		"on the exclusion set": excluded,
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			e := newExtractor([]tagger.Token{tok})
			assert.Empty(t, e.Extract("ignored"))
		})
	}
}

func TestUppercaseLemmaIsFolded(t *testing.T) {
	tok := goodToken("Xénophobie")
	tok.Lemma = "Xénophobie"
	e := newExtractor([]tagger.Token{tok})

	got := e.Extract("ignored")

	assert.Equal(t, []Candidate{{Lemma: "xénophobie", POS: tagger.Noun}}, got)
}

func TestOutputKeepsTokenOrder(t *testing.T) {
	e := newExtractor([]tagger.Token{goodToken("dégringoler"), goodToken("xénophobie")})

	got := e.Extract("ignored")

	assert.Equal(t, []Candidate{
		{Lemma: "dégringoler", POS: tagger.Noun},
		{Lemma: "xénophobie", POS: tagger.Noun},
	}, got)
}

func TestNilTaggerDegradesToEmpty(t *testing.T) {
	e := newExtractor(nil)
	e.Tagger = nil

	assert.Empty(t, e.Extract("un texte"))
}

func TestTaggerErrorDegradesToEmpty(t *testing.T) {
	e := newExtractor(nil)
	e.Tagger = &stubTagger{err: errors.New("model gone")}

	assert.Empty(t, e.Extract("un texte"))
}
