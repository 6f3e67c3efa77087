// Package tokenizer turns raw document and query text into the normalized
// term stream the rest of the engine indexes and searches on.
package tokenizer

import (
	"regexp"
	"strings"
)

// wordPattern matches maximal runs of lowercase letters, digits, apostrophes
// and hyphens. Applying it identically to documents and query terms keeps
// both sides of the index/search boundary in the same vocabulary.
var wordPattern = regexp.MustCompile(`[a-z0-9'-]+`)

// stopwords is the closed set removed from every token stream. It is the
// single stopword list used everywhere in this repo: the document
// tokenizer, the query lexer's keyword filter, and query re-tokenization
// in the search service all share it.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {}, "if": {},
	"then": {}, "else": {}, "of": {}, "in": {}, "on": {}, "at": {}, "by": {},
	"for": {}, "with": {}, "to": {}, "from": {}, "is": {}, "are": {}, "was": {},
	"were": {}, "be": {}, "been": {}, "being": {}, "as": {}, "that": {},
	"this": {}, "these": {}, "those": {}, "he": {}, "she": {}, "it": {},
	"they": {}, "we": {}, "you": {}, "i": {}, "me": {}, "my": {}, "your": {},
	"our": {}, "their": {},
}

// IsStopword reports whether the lowercased token is in the closed
// stopword set.
func IsStopword(token string) bool {
	_, bad := stopwords[strings.ToLower(token)]
	return bad
}

// Tokenize lowercases text, extracts maximal [a-z0-9'-]+ runs, drops tokens
// of length <= 1, and drops stopwords. Deterministic and pure; empty or
// whitespace-only input yields an empty slice, never nil-vs-empty
// ambiguity for callers that range over the result.
func Tokenize(text string) []string {
	lower := strings.ToLower(text)
	matches := wordPattern.FindAllString(lower, -1)

	tokens := make([]string, 0, len(matches))
	for _, tok := range matches {
		if len(tok) <= 1 {
			continue
		}
		if _, bad := stopwords[tok]; bad {
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}
