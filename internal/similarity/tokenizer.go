// Package similarity turns free-text item descriptions into comparable
// token sets and scores the overlap between two texts.
package similarity

import "strings"

// MinTokenLength is the default minimum token length; shorter tokens are
// noise and are dropped.
const MinTokenLength = 3

// stopWords are dropped during tokenization: articles, prepositions,
// pronouns, and the domain words every report contains anyway.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {},
	"for": {}, "to": {}, "of": {}, "it": {}, "is": {}, "are": {},
	"was": {}, "were": {}, "my": {}, "i": {},
	"lost": {}, "found": {}, "item": {},
}

// Tokenize lower-cases text, strips everything that is not an ASCII
// letter, digit or whitespace, splits on whitespace, and drops short
// tokens and stop words. Duplicates collapse into a set.
func Tokenize(text string) map[string]struct{} {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteByte(' ')
		}
	}

	tokens := make(map[string]struct{})
	for _, word := range strings.Fields(b.String()) {
		if len(word) < MinTokenLength {
			continue
		}
		if _, stop := stopWords[word]; stop {
			continue
		}
		tokens[word] = struct{}{}
	}
	return tokens
}

// Keywords returns the significant words of a text for the soft keyword
// pre-filter: whitespace-split words longer than three characters,
// lower-cased, without stop-word or punctuation handling.
func Keywords(text string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
