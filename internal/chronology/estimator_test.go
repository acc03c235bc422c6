package chronology

import (
	"strings"
	"testing"
)

func TestEstimate_ShortInput(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"whitespace only", "   \t\n  "},
		{"below minimum trimmed length", "hi!"},
		{"padded below minimum", "   ab  "},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			year, matched := Estimate(tc.text)
			if year != DefaultYear || matched != 0 {
				t.Errorf("Estimate(%q) = (%d, %d), want (%d, 0)",
					tc.text, year, matched, DefaultYear)
			}
		})
	}
}

func TestEstimate_NoWordCharacters(t *testing.T) {
	// Long enough to pass the length guard but tokenizes to nothing.
	year, matched := Estimate("!!! ... ??? --- !!!")
	if year != DefaultYear || matched != 0 {
		t.Errorf("got (%d, %d), want (%d, 0)", year, matched, DefaultYear)
	}
}

func TestEstimate_ArchaicText(t *testing.T) {
	year, matched := Estimate("thou hath dost verily")
	if year != 1300 {
		t.Errorf("year = %d, want 1300", year)
	}
	if matched != 4 {
		t.Errorf("matchedLayers = %d, want 4", matched)
	}
}

func TestEstimate_ModernText(t *testing.T) {
	year, matched := Estimate("technology system data analysis network computer")
	if year != 1900 {
		t.Errorf("year = %d, want 1900", year)
	}
	if matched != 6 {
		t.Errorf("matchedLayers = %d, want 6", matched)
	}
}

func TestEstimate_RepeatedWordsCountedPerOccurrence(t *testing.T) {
	_, matched := Estimate("thou thou thou unto unto")
	if matched != 5 {
		t.Errorf("matchedLayers = %d, want 5 (repeats count per occurrence)", matched)
	}
}

func TestEstimate_LowReadabilitySkewsArchaic(t *testing.T) {
	// Many long polysyllabic words, no sentence breaks, and no vocabulary
	// hits: readability lands below 40, so the bias alone must push the
	// result toward 1300 rather than 1900.
	text := strings.Repeat("incomprehensibility jurisprudential antidisestablishmentarianism ", 5)
	year, matched := Estimate(text)
	if matched != 0 {
		t.Fatalf("matchedLayers = %d, want 0 (text must avoid era vocabulary)", matched)
	}
	if year != 1300 {
		t.Errorf("year = %d, want 1300 from readability bias", year)
	}
}

func TestEstimate_TieBreaksToLowestAnchor(t *testing.T) {
	// All four similarities are zero and the readability of this mid-band
	// text applies no bonus, so every era scores 0.0. The lowest anchor
	// must win the tie.
	text := "the quick brown fox jumped over a lazy dog while birds sang softly above meadows"
	r := Readability(text)
	if r < readabilityLow || r > readabilityHigh {
		t.Fatalf("readability = %.2f, want mid-band [%v, %v] for a clean tie",
			r, readabilityLow, readabilityHigh)
	}
	year, _ := Estimate(text)
	if year != 1300 {
		t.Errorf("year = %d, want 1300 (lowest anchor wins ties)", year)
	}
}

func TestEstimate_Idempotent(t *testing.T) {
	texts := []string{
		"thou hath dost verily",
		"technology system data analysis network computer",
		"whereas the king shall hereby decree unto the lord",
	}
	for _, text := range texts {
		y1, m1 := Estimate(text)
		y2, m2 := Estimate(text)
		if y1 != y2 || m1 != m2 {
			t.Errorf("Estimate(%q) not idempotent: (%d,%d) vs (%d,%d)",
				text, y1, m1, y2, m2)
		}
	}
}

func TestEstimate_MatchedLayersBounded(t *testing.T) {
	texts := []string{
		"thou shall analyze the data upon the network",
		"completely unrelated words about gardening and cooking recipes",
		"rex anno domini verily betwixt thee",
	}
	for _, text := range texts {
		_, matched := Estimate(text)
		total := len(Words(text))
		if matched < 0 || matched > total {
			t.Errorf("Estimate(%q): matchedLayers = %d, want within [0, %d]",
				text, matched, total)
		}
	}
}

func TestEstimate_YearAlwaysAnAnchor(t *testing.T) {
	texts := []string{
		"",
		"thou hath dost verily",
		"the constitution protects liberty and property by reason",
		"some perfectly mundane text about nothing in particular today",
	}
	for _, text := range texts {
		year, _ := Estimate(text)
		if !isAnchor(year) {
			t.Errorf("Estimate(%q) year = %d, not an anchor", text, year)
		}
	}
}

func isAnchor(year int) bool {
	for _, a := range AnchorYears {
		if a == year {
			return true
		}
	}
	return false
}
