package utils

import (
	"strings"
	"unicode"
)

// Words too common in business names to count as evidence of a match.
var insignificantWords = map[string]bool{
	"the": true, "and": true, "of": true, "inc": true, "llc": true,
	"ltd": true, "co": true, "corp": true, "company": true,
}

// MatchCustomerName reports whether candidate plausibly names the same customer as query.
// Strategies are tried in order: exact normalized match, substring either way, word-set
// overlap, then comparison with all spaces removed.
func MatchCustomerName(query, candidate string) bool {
	q := NormalizeName(query)
	c := NormalizeName(candidate)
	if q == "" || c == "" {
		return false
	}

	if q == c {
		return true
	}
	if strings.Contains(c, q) || strings.Contains(q, c) {
		return true
	}

	qWords := significantWords(q)
	cWords := significantWords(c)
	if allWordsIn(qWords, c) || allWordsIn(cWords, q) {
		return true
	}

	qCompact := strings.ReplaceAll(q, " ", "")
	cCompact := strings.ReplaceAll(c, " ", "")
	return qCompact == cCompact ||
		strings.Contains(cCompact, qCompact) ||
		strings.Contains(qCompact, cCompact)
}

// NormalizeName lowercases s, turns punctuation into spaces and collapses whitespace.
func NormalizeName(s string) string {
	mapped := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return unicode.ToLower(r)
		}
		if r == '\'' {
			return -1
		}
		return ' '
	}, s)
	return strings.Join(strings.Fields(mapped), " ")
}

func significantWords(normalized string) []string {
	var words []string
	for _, w := range strings.Fields(normalized) {
		if len(w) < 2 || insignificantWords[w] {
			continue
		}
		words = append(words, w)
	}
	return words
}

func allWordsIn(words []string, s string) bool {
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}
