package chronology

import "math"

// CosineSimilarity computes the cosine similarity between two sparse
// vectors represented as word→weight maps. The dot product runs over the
// key intersection; each norm runs over the vector's full key set.
// Returns 0.0 when the intersection is empty or either norm is zero.
func CosineSimilarity(v1, v2 map[string]int) float64 {
	var dot float64
	for k, a := range v1 {
		if b, ok := v2[k]; ok {
			dot += float64(a) * float64(b)
		}
	}
	if dot == 0 {
		return 0
	}

	var sum1, sum2 float64
	for _, a := range v1 {
		sum1 += float64(a) * float64(a)
	}
	for _, b := range v2 {
		sum2 += float64(b) * float64(b)
	}

	denom := math.Sqrt(sum1) * math.Sqrt(sum2)
	if denom == 0 {
		return 0
	}
	return dot / denom
}
