// internal/matching/keywords.go
package matching

import "strings"

// stopWords filters common English function words that add noise to
// keyword matching.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "from": true, "are": true, "was": true, "were": true,
	"have": true, "has": true, "had": true, "you": true, "your": true,
	"our": true, "their": true, "they": true, "them": true, "will": true,
	"would": true, "can": true, "could": true, "should": true, "about": true,
	"into": true, "over": true, "also": true, "more": true, "than": true,
	"been": true, "being": true, "but": true, "not": true, "all": true,
	"any": true, "each": true, "when": true, "where": true, "which": true,
	"who": true, "how": true, "what": true, "its": true, "his": true,
	"her": true, "out": true, "per": true, "via": true,
}

func isSeparator(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', ',', '.', ';', ':', '!', '?', '(', ')':
		return true
	}
	return false
}

// Keywords tokenizes free text into a set of lowercase keywords.
// Tokens shorter than three characters and stop words are dropped.
// Empty text yields an empty set.
func Keywords(text string) map[string]bool {
	kw := make(map[string]bool)
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		if len(tok) >= 3 && !stopWords[tok] {
			kw[tok] = true
		}
	}
	return kw
}

// KeywordList is Keywords preserving first-occurrence order. Scorers use
// it so that reason strings come out deterministic.
func KeywordList(text string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, tok := range strings.FieldsFunc(strings.ToLower(text), isSeparator) {
		if len(tok) < 3 || stopWords[tok] || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}
