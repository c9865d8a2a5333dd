package evaluator

import (
	"strings"
	"unicode"
)

// stopWords are dropped when deriving keywords from a correct answer.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "but": {}, "in": {}, "on": {},
	"at": {}, "to": {}, "for": {}, "of": {}, "with": {}, "by": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "be": {}, "been": {}, "have": {}, "has": {}, "had": {},
	"do": {}, "does": {}, "did": {}, "will": {}, "would": {}, "could": {}, "should": {},
	"may": {}, "might": {}, "can": {}, "this": {}, "that": {}, "these": {}, "those": {},
	"it": {}, "its": {}, "they": {}, "them": {}, "we": {}, "us": {}, "you": {},
	"he": {}, "she": {}, "him": {}, "her": {},
}

const maxKeywords = 5

// Normalize lower-cases s, trims surrounding whitespace and then removes
// every rune that is neither a word character nor whitespace. Interior
// whitespace is preserved.
func Normalize(s string) string {
	s = strings.TrimSpace(strings.ToLower(s))
	return strings.Map(func(r rune) rune {
		if isWordRune(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, s)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// Keywords returns up to five significant words of a correct answer: its
// normalized words minus stop words, keeping only words longer than two
// characters.
func Keywords(correct string) []string {
	var out []string
	for _, w := range strings.Fields(Normalize(correct)) {
		if _, stop := stopWords[w]; stop || len([]rune(w)) <= 2 {
			continue
		}
		out = append(out, w)
	}
	if len(out) > maxKeywords {
		out = out[:maxKeywords]
	}
	return out
}

// containsAllKeywords reports whether every keyword occurs in the
// lower-cased raw answer.
func containsAllKeywords(answer string, keywords []string) bool {
	lower := strings.ToLower(answer)
	for _, k := range keywords {
		if !strings.Contains(lower, strings.ToLower(k)) {
			return false
		}
	}
	return true
}
