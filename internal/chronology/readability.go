package chronology

import (
	"regexp"
	"strings"
)

// shortInputScore is returned for inputs too short to score meaningfully.
const shortInputScore = 50.0

var vowelGroupRe = regexp.MustCompile(`[aeiouy]+`)

// Readability computes a Flesch-Reading-Ease-style index in [0, 100]:
//
//	206.835 − 1.015·(words/sentences) − 84.6·(syllables/words)
//
// Syllables are approximated as the number of maximal vowel-group runs in
// each lower-cased token — a crude proxy, not phonetically exact. Inputs
// with trimmed length below 10 characters score the constant 50.0.
func Readability(text string) float64 {
	if len(strings.TrimSpace(text)) < 10 {
		return shortInputScore
	}

	words := Words(text)
	numWords := len(words)
	if numWords < 1 {
		numWords = 1
	}
	numSentences := SentenceCount(text)

	syllables := 0
	for _, w := range words {
		syllables += len(vowelGroupRe.FindAllString(w, -1))
	}

	score := 206.835 -
		1.015*(float64(numWords)/float64(numSentences)) -
		84.6*(float64(syllables)/float64(numWords))

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
