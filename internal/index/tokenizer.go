// Package index compiles chunk collections into a sparse TF-IDF vector
// space and answers similarity queries against the compiled bundle.
package index

import (
	"regexp"
	"strings"
)

// tokenPattern matches words of two or more letters/digits. Single
// characters carry no retrieval signal and are skipped.
var tokenPattern = regexp.MustCompile(`[\pL\pN_][\pL\pN_]+`)

// Tokenizer produces the vocabulary candidates for a piece of text:
// lowercased unigrams and bigrams with English stopwords removed.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a tokenizer with the built-in English stopword set.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{stopwords: englishStopwords()}
}

// tokens returns the lowercased, stopword-filtered word sequence.
func (t *Tokenizer) tokens(text string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(text), -1)
	out := raw[:0]
	for _, tok := range raw {
		if _, stop := t.stopwords[tok]; stop {
			continue
		}
		out = append(out, tok)
	}
	return out
}

// Terms returns all vocabulary candidates for the text: every unigram
// plus every adjacent-pair bigram, in occurrence order. Bigrams are
// formed after stopword removal, so "consent of the child" yields the
// bigram "consent child".
func (t *Tokenizer) Terms(text string) []string {
	tokens := t.tokens(text)
	if len(tokens) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(tokens)-1)
	terms = append(terms, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		terms = append(terms, tokens[i]+" "+tokens[i+1])
	}
	return terms
}
