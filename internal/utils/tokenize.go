package utils

import (
	"sort"
	"strings"
	"unicode"
)

// Tokenize lowercases s and splits it into alphanumeric tokens, dropping
// tokens of length <= minLen. Both the Router's fuzzy-match word sets
// (tokens of length <= 2 dropped) and the Enricher's cache key (tokens
// longer than 2 characters) are built from this same rule, parameterised
// by the caller's minimum length.
func Tokenize(s string, minLen int) []string {
	lower := strings.ToLower(s)
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() > minLen {
			tokens = append(tokens, b.String())
		}
		b.Reset()
	}

	for _, r := range lower {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// WordSet returns the deduplicated token set of s, with tokens of length
// <= 2 dropped, as used by the Router's Jaccard/containment scoring.
func WordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range Tokenize(s, 2) {
		set[tok] = struct{}{}
	}
	return set
}

// StopWords is the default stop-word list excluded from the Enricher's
// significant-token extraction.
var StopWords = map[string]struct{}{
	"the": {}, "will": {}, "what": {}, "who": {}, "when": {}, "where": {},
	"does": {}, "did": {}, "has": {}, "have": {}, "for": {}, "and": {},
	"with": {}, "that": {}, "this": {}, "from": {}, "than": {}, "into": {},
	"about": {}, "over": {}, "under": {}, "more": {}, "less": {},
	"win": {}, "before": {}, "after": {}, "during": {},
}

// SignificantTokens returns the question's tokens longer than 2
// characters, excluding stopWords, deduplicated and sorted: the
// sorted-top-4-significant-tokens half of the Enricher's cache key. The
// result is capped at the first 4 such tokens in question order, which
// are then sorted, so words appended after them do not change the key.
func SignificantTokens(question string, stopWords map[string]struct{}) []string {
	seen := make(map[string]struct{})
	var candidates []string
	for _, tok := range Tokenize(question, 2) {
		if _, stop := stopWords[tok]; stop {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		candidates = append(candidates, tok)
	}

	if len(candidates) > 4 {
		candidates = candidates[:4]
	}
	sort.Strings(candidates)
	return candidates
}

// Jaccard returns |A ∩ B| / |A ∪ B| for two word sets.
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Containment returns |A ∩ B| / min(|A|, |B|).
func Containment(a, b map[string]struct{}) float64 {
	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}
	if minLen == 0 {
		return 0
	}
	intersection := 0
	for tok := range a {
		if _, ok := b[tok]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(minLen)
}
