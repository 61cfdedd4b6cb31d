// Package query turns raw search text into the normalized form the fetchers match against.
package query

import (
	"strings"
	"unicode/utf8"
)

// Prefixes that switch a search into trending mode, compared case-insensitively.
var trendingPrefixes = []string{"trending:", "trending "}

// fillerWords never count as meaningful tokens.
var fillerWords = map[string]bool{
	"jobs":        true,
	"trending":    true,
	"remote":      true,
	"work":        true,
	"career":      true,
	"opportunity": true,
}

// minMeaningfulLen is the shortest token kept in the meaningful set.
const minMeaningfulLen = 3

// Query is a parsed search string.
type Query struct {
	Raw      string
	Clean    string
	Trending bool
	// Tokens are the lowercased, whitespace-split words of Clean, in order.
	Tokens []string
	// Meaningful drops filler words and tokens of two characters or fewer.
	// Only trending mode consults it.
	Meaningful []string
}

// Parse normalizes a raw query string.
func Parse(raw string) Query {
	q := Query{Raw: raw, Clean: raw}

	for _, prefix := range trendingPrefixes {
		if len(raw) >= len(prefix) && strings.EqualFold(raw[:len(prefix)], prefix) {
			q.Trending = true
			q.Clean = strings.TrimSpace(raw[len(prefix):])
			break
		}
	}

	q.Tokens = strings.Fields(strings.ToLower(q.Clean))
	for _, tok := range q.Tokens {
		if fillerWords[tok] || utf8.RuneCountInString(tok) < minMeaningfulLen {
			continue
		}
		q.Meaningful = append(q.Meaningful, tok)
	}
	return q
}

// NonFiller returns Tokens without filler words. Short tokens are kept.
func (q Query) NonFiller() []string {
	var out []string
	for _, tok := range q.Tokens {
		if !fillerWords[tok] {
			out = append(out, tok)
		}
	}
	return out
}

// TrendingTerms returns the tokens a trending search matches on: the
// meaningful set, or the non-filler tokens when nothing meaningful remains.
func (q Query) TrendingTerms() []string {
	if len(q.Meaningful) > 0 {
		return q.Meaningful
	}
	return q.NonFiller()
}

// ContainsAny reports whether at least one term occurs in any of the texts.
// Texts are expected to be lowercased already.
func ContainsAny(terms []string, texts ...string) bool {
	for _, term := range terms {
		for _, text := range texts {
			if strings.Contains(text, term) {
				return true
			}
		}
	}
	return false
}

// ContainsAll reports whether every term occurs in at least one of the texts.
// An empty term list is vacuously satisfied.
func ContainsAll(terms []string, texts ...string) bool {
	for _, term := range terms {
		found := false
		for _, text := range texts {
			if strings.Contains(text, term) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
