// Package lexicon loads the FLELex frequency lexicon and derives the
// reference set of advanced lemmas the extractor filters against.
package lexicon

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tbaudier/rarelex/pkg/tagger"
)

// A word qualifies as advanced when it is attested at C2 level, rare
// overall, and long enough to be worth learning.
const (
	maxTotalFreq = 100
	minWordLen   = 6
)

// Set is a read-only membership set of lowercase words.
type Set map[string]struct{}

// Contains reports whether w (already lowercased) is in the set.
func (s Set) Contains(w string) bool {
	_, ok := s[w]
	return ok
}

// Lexicon holds everything derived from one pass over the FLELex file.
type Lexicon struct {
	// Advanced is the set of admissible advanced lemmas, lowercased.
	Advanced Set
	// POS maps lowercase words to their coarse part of speech, taken
	// from the TreeTagger tag column when present.
	POS map[string]tagger.POS
}

// Load reads a tab-separated FLELex file. The header must contain the
// word, freq_total and freq_C2 columns (names may carry incidental
// whitespace); a tag column is used when present. Any failure here is
// fatal to the pipeline: without the reference set there is nothing to
// filter against.
func Load(path string) (*Lexicon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: open %s: %w", path, err)
	}
	defer f.Close()
	lex, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("lexicon: parse %s: %w", path, err)
	}
	return lex, nil
}

// Parse reads FLELex rows from r. Rows with unparsable frequency fields
// are skipped; a missing required column is an error.
func Parse(r io.Reader) (*Lexicon, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("empty lexicon")
	}

	cols := make(map[string]int)
	for i, name := range strings.Split(scanner.Text(), "\t") {
		cols[strings.TrimSpace(name)] = i
	}
	wordIdx, ok := cols["word"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "word")
	}
	totalIdx, ok := cols["freq_total"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "freq_total")
	}
	c2Idx, ok := cols["freq_C2"]
	if !ok {
		return nil, fmt.Errorf("missing required column %q", "freq_C2")
	}
	tagIdx, hasTag := cols["tag"]

	lex := &Lexicon{
		Advanced: make(Set),
		POS:      make(map[string]tagger.POS),
	}

	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) <= wordIdx || len(fields) <= totalIdx || len(fields) <= c2Idx {
			continue
		}

		word := strings.TrimSpace(fields[wordIdx])
		if word == "" {
			continue
		}
		lower := strings.ToLower(word)

		if hasTag && len(fields) > tagIdx {
			if pos := mapTreeTaggerTag(fields[tagIdx]); pos != tagger.Other {
				if _, seen := lex.POS[lower]; !seen {
					lex.POS[lower] = pos
				}
			}
		}

		total, err := strconv.ParseFloat(strings.TrimSpace(fields[totalIdx]), 64)
		if err != nil {
			continue
		}
		c2, err := strconv.ParseFloat(strings.TrimSpace(fields[c2Idx]), 64)
		if err != nil {
			continue
		}

		if c2 > 0 && total < maxTotalFreq && utf8.RuneCountInString(word) > minWordLen {
			lex.Advanced[lower] = struct{}{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan rows: %w", err)
	}

	return lex, nil
}

// mapTreeTaggerTag collapses TreeTagger tags (NOM, VER:infi, ADJ, ADV...)
// onto the coarse POS labels the extractor filters on.
func mapTreeTaggerTag(tag string) tagger.POS {
	base, _, _ := strings.Cut(strings.TrimSpace(tag), ":")
	switch strings.ToUpper(base) {
	case "NOM", "NOUN":
		return tagger.Noun
	case "VER", "VERB":
		return tagger.Verb
	case "ADJ":
		return tagger.Adj
	case "ADV":
		return tagger.Adv
	default:
		return tagger.Other
	}
}
