package reembed

import "math"

// NormalizeVector scales an app embedding to unit length so vectors written
// by different embedding models compare on direction alone. The input is
// left untouched; a zero vector has no direction and comes back as a fresh
// zero vector of the same length.
func NormalizeVector(v []float32) []float32 {
	if len(v) == 0 {
		return v
	}

	var sumSquares float32
	for _, val := range v {
		sumSquares += val * val
	}
	norm := float32(math.Sqrt(float64(sumSquares)))

	out := make([]float32, len(v))
	if norm == 0 {
		return out
	}
	for i, val := range v {
		out[i] = val / norm
	}
	return out
}
