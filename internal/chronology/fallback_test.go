package chronology

import (
	"math/rand"
	"testing"
)

func TestFallback_PassesThroughNonZeroMatches(t *testing.T) {
	f := NewFallback()
	year, matched := f.Apply(1700, 3)
	if year != 1700 || matched != 3 {
		t.Errorf("Apply(1700, 3) = (%d, %d), want unchanged", year, matched)
	}
}

func TestFallback_ReplacesZeroMatches(t *testing.T) {
	f := NewFallbackWithSource(rand.New(rand.NewSource(1)))

	for i := 0; i < 100; i++ {
		year, matched := f.Apply(DefaultYear, 0)
		if !isAnchor(year) {
			t.Fatalf("fallback year = %d, not an anchor", year)
		}
		if matched < 1 || matched > 5 {
			t.Fatalf("fallback matched = %d, want within [1, 5]", matched)
		}
	}
}

func TestFallback_DeterministicUnderSeededSource(t *testing.T) {
	a := NewFallbackWithSource(rand.New(rand.NewSource(42)))
	b := NewFallbackWithSource(rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		y1, m1 := a.Apply(0, 0)
		y2, m2 := b.Apply(0, 0)
		if y1 != y2 || m1 != m2 {
			t.Fatalf("seeded fallbacks diverged at step %d: (%d,%d) vs (%d,%d)",
				i, y1, m1, y2, m2)
		}
	}
}
