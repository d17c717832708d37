package preference

import (
	"fmt"
	"math"
)

// SimilarityFunc scores two embedding vectors, expected range is [-1, 1]
type SimilarityFunc func(a, b []float32) (float64, error)

// Cosine returns the cosine similarity of two vectors, clamped to [-1, 1].
// Vectors of different or zero length are malformed embeddings and return an error,
// a zero-norm vector has no direction and scores 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return 0, fmt.Errorf("empty vector")
	}
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector length mismatch: %d != %d", len(a), len(b))
	}

	var dot, normA, normB float64
	for i := range a {
		ai, bi := float64(a[i]), float64(b[i])
		dot += ai * bi
		normA += ai * ai
		normB += bi * bi
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}

	sim := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return math.Max(-1, math.Min(1, sim)), nil
}
