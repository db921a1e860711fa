package resolve

import (
	"regexp"
	"strings"
)

var (
	templateRe   = regexp.MustCompile(`\{\{[^}]*}}`)
	pipedLinkRe  = regexp.MustCompile(`\[\[[^\]|]+\|([^]]+)]]`)
	plainLinkRe  = regexp.MustCompile(`\[\[([^]]+)]]`)
	emphasisRe   = regexp.MustCompile(`''+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	sentenceEnd  = regexp.MustCompile(`[.;]`)
)

// cleanWikiMarkup strips wikitext formatting from one definition line:
// template blocks are dropped, links unwrapped ([[a|b]] keeps b, [[a]]
// keeps a), emphasis markers removed, whitespace collapsed.
func cleanWikiMarkup(s string) string {
	s = templateRe.ReplaceAllString(s, "")
	s = pipedLinkRe.ReplaceAllString(s, "$1")
	s = plainLinkRe.ReplaceAllString(s, "$1")
	s = emphasisRe.ReplaceAllString(s, "")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}

// firstClause truncates s at the first sentence boundary (period or
// semicolon).
func firstClause(s string) string {
	return strings.TrimSpace(sentenceEnd.Split(s, 2)[0])
}
