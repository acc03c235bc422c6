package chronology

import (
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// Words splits text into its word tokens — maximal runs of word
// characters — case-folded to lower case. Returns nil for input with no
// word characters.
func Words(text string) []string {
	return wordRe.FindAllString(strings.ToLower(text), -1)
}

// SentenceCount counts sentences by splitting on runs of '.', '!' and '?'
// and discarding fragments whose trimmed length is at most one character.
// The result is floored at 1 so downstream ratios never divide by zero.
func SentenceCount(text string) int {
	n := 0
	for _, frag := range sentenceRe.Split(text, -1) {
		if len(strings.TrimSpace(frag)) > 1 {
			n++
		}
	}
	if n < 1 {
		return 1
	}
	return n
}

// WordFrequency builds the document's word-frequency vector: a multiset
// count over the lower-cased tokens.
func WordFrequency(words []string) map[string]int {
	freq := make(map[string]int, len(words))
	for _, w := range words {
		freq[w]++
	}
	return freq
}
