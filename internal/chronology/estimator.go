package chronology

import (
	"log/slog"
	"strings"
	"unicode/utf8"
)

// minTextLen is the trimmed length below which Estimate short-circuits to
// the default era without tokenizing.
const minTextLen = 5

// Scaling factor applied to cosine similarity so the additive readability
// bonuses are comparable in magnitude.
const similarityScale = 1000.0

// Readability bias: plain or archaic-sounding prose skews the era scores.
const (
	readabilityLow  = 40.0
	readabilityHigh = 70.0

	archaicBonus  = 500.0 // added to 1300 when readability < readabilityLow
	earlyBonus    = 300.0 // added to 1500 when readability < readabilityLow
	modernBonus   = 500.0 // added to 1900 when readability > readabilityHigh
)

// Estimate is the core chronology heuristic. It returns the best-matching
// anchor year and the number of document word occurrences found in the
// union of all era vocabularies (a word repeated in the text counts once
// per occurrence).
//
// Estimate never fails: empty or too-short input, an empty token list, or
// an empty score map all yield (DefaultYear, 0). Calling it twice on the
// same text yields the same result — the randomized fallback is a separate
// caller-level policy (see Fallback).
func Estimate(text string) (year, matchedLayers int) {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minTextLen {
		slog.Debug("chronology: text too short, using default era", "len", len(text))
		return DefaultYear, 0
	}

	words := Words(text)
	if len(words) == 0 {
		return DefaultYear, 0
	}

	freq := WordFrequency(words)

	scores := make(map[int]float64, len(AnchorYears))
	for _, anchor := range AnchorYears {
		vocab := eraVocabulary[anchor]
		vocabVector := make(map[string]int, len(vocab))
		for w := range vocab {
			vocabVector[w] = 1
		}
		scores[anchor] = CosineSimilarity(freq, vocabVector) * similarityScale
	}

	readability := Readability(text)
	switch {
	case readability < readabilityLow:
		scores[1300] += archaicBonus
		scores[1500] += earlyBonus
	case readability > readabilityHigh:
		scores[1900] += modernBonus
	}

	if len(scores) == 0 {
		return DefaultYear, 0
	}

	// Walk the anchors in ascending order so equal scores resolve to the
	// lowest anchor year.
	bestYear := AnchorYears[0]
	bestScore := scores[bestYear]
	for _, anchor := range AnchorYears[1:] {
		if scores[anchor] > bestScore {
			bestYear = anchor
			bestScore = scores[anchor]
		}
	}

	matched := 0
	for _, w := range words {
		if _, ok := allEraWords[w]; ok {
			matched++
		}
	}

	slog.Debug("chronology: estimate complete",
		"year", bestYear,
		"matched_layers", matched,
		"readability", readability,
	)
	return bestYear, matched
}
