package lexicon

import (
	"bufio"
	"log/slog"
	"os"
	"strings"
)

// staticExcluded catches easy words that pass the frequency filters anyway:
// nationality adjectives, proper nouns of current events, very common
// verbs and adjectives, days, months, connectors.
var staticExcluded = []string{
	"français", "française", "francais", "américain", "américaine", "americain",
	"france", "états-unis", "etats-unis", "europe", "paris", "washington",
	"macron", "trump", "biden", "netanyahu", "israël", "israel", "palestine",
	"gaza", "ukraine", "russie", "russia", "poutine", "zelensky", "onu",
	"pays", "ville", "territoire", "gouvernement", "président", "présidente",
	"avoir", "être", "faire", "mettre", "dire", "aller", "voir", "donner",
	"bon", "mauvais", "beau", "grand", "petit", "important", "nouveau",
	"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
	"janvier", "février", "mars", "avril", "mai", "juin", "juillet", "août",
	"septembre", "octobre", "novembre", "décembre",
	"donc", "mais", "ou", "et", "car", "cependant", "pourtant", "toutefois",
	"ainsi", "alors", "puis", "ensuite", "également",
}

// NewExclusionSet unions the built-in denylist with an external
// newline-delimited word list. The external file is optional: an empty
// path or an unreadable file contributes nothing and is not fatal.
func NewExclusionSet(path string, logger *slog.Logger) Set {
	set := make(Set, len(staticExcluded))
	for _, w := range staticExcluded {
		set[strings.ToLower(w)] = struct{}{}
	}
	if path == "" {
		return set
	}

	f, err := os.Open(path)
	if err != nil {
		if logger != nil {
			logger.Warn("exclusion list unreadable, using built-in list only",
				slog.String("path", path), slog.String("error", err.Error()))
		}
		return set
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		set[w] = struct{}{}
	}
	if err := scanner.Err(); err != nil && logger != nil {
		logger.Warn("exclusion list read interrupted",
			slog.String("path", path), slog.String("error", err.Error()))
	}
	return set
}
