package chronology

// AnchorYears are the four fixed reference eras the estimator can output,
// in ascending order. Iteration over this slice defines the tie-break:
// when two eras score equally, the lowest anchor year wins.
var AnchorYears = []int{1300, 1500, 1700, 1900}

// DefaultYear is returned (with zero matches) whenever the input is too
// short or yields no tokens — the midpoint era.
const DefaultYear = 1500

// RangeSpan is added to the estimated year to form the upper bound of the
// reported date range.
const RangeSpan = 50

// eraVocabulary maps each anchor year to the set of words considered
// characteristic of that era. Read-only for the process lifetime.
var eraVocabulary = map[int]map[string]struct{}{
	1300: wordSet("thou", "thee", "thy", "hath", "dost", "ye", "verily",
		"betwixt", "regin", "rex", "anno", "domini"),
	1500: wordSet("shall", "unto", "upon", "lord", "king", "majesty",
		"whereas", "hereby", "aforesaid"),
	1700: wordSet("constitution", "liberty", "property", "reason", "nature",
		"society", "contract", "federal"),
	1900: wordSet("technology", "system", "data", "analysis", "program",
		"network", "computer", "digital"),
}

// allEraWords is the union of every era vocabulary, used for match counting.
var allEraWords = func() map[string]struct{} {
	union := make(map[string]struct{})
	for _, vocab := range eraVocabulary {
		for w := range vocab {
			union[w] = struct{}{}
		}
	}
	return union
}()

func wordSet(words ...string) map[string]struct{} {
	s := make(map[string]struct{}, len(words))
	for _, w := range words {
		s[w] = struct{}{}
	}
	return s
}

// VocabularySize returns the number of reference words for the given anchor
// year, or 0 for an unknown year.
func VocabularySize(year int) int {
	return len(eraVocabulary[year])
}
