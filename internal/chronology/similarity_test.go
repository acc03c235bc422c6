package chronology

import "testing"

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	vectors := []map[string]int{
		{"thou": 1},
		{"thou": 2, "hath": 3, "verily": 1},
		{"a": 5, "b": 5, "c": 5, "d": 5},
	}
	for _, v := range vectors {
		if got := CosineSimilarity(v, v); !almostEqual(got, 1.0, 1e-9) {
			t.Errorf("CosineSimilarity(v, v) = %v, want 1.0 (v=%v)", got, v)
		}
	}
}

func TestCosineSimilarity_DisjointIsZero(t *testing.T) {
	v1 := map[string]int{"thou": 2, "hath": 1}
	v2 := map[string]int{"computer": 1, "digital": 3}
	if got := CosineSimilarity(v1, v2); got != 0 {
		t.Errorf("CosineSimilarity = %v, want 0 for disjoint keys", got)
	}
}

func TestCosineSimilarity_EmptyVectors(t *testing.T) {
	v := map[string]int{"word": 1}
	if got := CosineSimilarity(nil, v); got != 0 {
		t.Errorf("CosineSimilarity(nil, v) = %v, want 0", got)
	}
	if got := CosineSimilarity(v, map[string]int{}); got != 0 {
		t.Errorf("CosineSimilarity(v, empty) = %v, want 0", got)
	}
}

func TestCosineSimilarity_PartialOverlap(t *testing.T) {
	// dot = 1·1 = 1; ||v1|| = √2, ||v2|| = √2 → 0.5
	v1 := map[string]int{"shared": 1, "left": 1}
	v2 := map[string]int{"shared": 1, "right": 1}
	if got := CosineSimilarity(v1, v2); !almostEqual(got, 0.5, 1e-9) {
		t.Errorf("CosineSimilarity = %v, want 0.5", got)
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	v1 := map[string]int{"thou": 3, "shall": 1, "data": 2}
	v2 := map[string]int{"shall": 2, "data": 1, "king": 4}
	ab := CosineSimilarity(v1, v2)
	ba := CosineSimilarity(v2, v1)
	if !almostEqual(ab, ba, 1e-12) {
		t.Errorf("similarity not symmetric: %v vs %v", ab, ba)
	}
}
