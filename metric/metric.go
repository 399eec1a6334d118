// Package metric provides distance and similarity functions over float32
// vectors. These are the scalar building blocks used by the index and
// engine packages.
package metric

import (
	"errors"

	"github.com/hupe1980/neargo/internal/math32"
)

// ErrVectorSizeMismatch is returned when two vectors differ in length.
var ErrVectorSizeMismatch = errors.New("vector sizes do not match")

// Dot calculates the dot product of two float32 slices.
// Assumes vectors are the same length (caller's responsibility).
func Dot(v1, v2 []float32) float32 {
	return math32.Dot(v1, v2)
}

// Magnitude calculates the magnitude (length) of a float32 slice.
func Magnitude(v []float32) float32 {
	return math32.Sqrt(math32.Dot(v, v))
}

// CosineSimilarity calculates the cosine similarity between two float32 slices.
// The result is in [-1, 1]. If either vector has zero magnitude, the
// similarity is 0.
func CosineSimilarity(v1, v2 []float32) (float32, error) {
	if len(v1) != len(v2) {
		return 0, ErrVectorSizeMismatch
	}

	dotProduct := math32.Dot(v1, v2)
	magnitudeA := Magnitude(v1)
	magnitudeB := Magnitude(v2)

	// Avoid division by zero
	if magnitudeA == 0 || magnitudeB == 0 {
		return 0, nil
	}

	return dotProduct / (magnitudeA * magnitudeB), nil
}

// SquaredL2 calculates the squared L2 distance between two float32 slices.
func SquaredL2(v1, v2 []float32) (float32, error) {
	if len(v1) != len(v2) {
		return 0, ErrVectorSizeMismatch
	}

	return math32.SquaredL2(v1, v2), nil
}

// EuclideanDistance calculates the L2 distance between two float32 slices.
func EuclideanDistance(v1, v2 []float32) (float32, error) {
	d, err := SquaredL2(v1, v2)
	if err != nil {
		return 0, err
	}

	return math32.Sqrt(d), nil
}
