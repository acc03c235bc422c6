// Package chronology estimates the historical era a passage of text was
// likely written in.
//
// The estimator is a deliberately coarse heuristic scored over four fixed
// anchor eras (1300, 1500, 1700, 1900): it tokenizes the text, builds a
// word-frequency vector, scores cosine similarity against each era's
// reference vocabulary, nudges the scores with a Flesch-style readability
// index, and picks the best-scoring anchor. Ties go to the lowest anchor
// year. Estimate is total and side-effect-free; the only randomness in the
// system lives in the Fallback policy, which callers apply when the
// estimator matched nothing.
package chronology
