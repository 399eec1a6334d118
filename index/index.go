// Package index provides shared types and errors for nearest-neighbor
// indexes.
package index

import (
	"errors"
	"fmt"

	"github.com/hupe1980/neargo/metric"
)

var (
	// ErrInvalidK is returned when a neighbor count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyVector is returned when a zero-length vector is passed in.
	ErrEmptyVector = errors.New("vector must not be empty")

	// ErrEmptyIndex is returned when querying an index that holds no points.
	ErrEmptyIndex = errors.New("index contains no points")
)

// ErrDimensionMismatch is a named error type for dimension mismatch
type ErrDimensionMismatch struct {
	Expected int // Expected dimensions
	Actual   int // Actual dimensions
}

// Error returns the error message for dimension mismatch
func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

// ErrInvalidDimension indicates an invalid configured dimension.
type ErrInvalidDimension struct {
	Dimension int
}

// Error returns the error message for an invalid dimension.
func (e *ErrInvalidDimension) Error() string {
	return fmt.Sprintf("invalid dimension: %d", e.Dimension)
}

// ErrInvalidConfiguration indicates a non-positive configuration value.
type ErrInvalidConfiguration struct {
	Field string
	Value int
}

// Error returns the error message for an invalid configuration value.
func (e *ErrInvalidConfiguration) Error() string {
	return fmt.Sprintf("invalid configuration: %s must be positive, got %d", e.Field, e.Value)
}

// DistanceFunc represents a function for calculating the distance between two vectors
type DistanceFunc func(v1, v2 []float32) (float32, error)

// DistanceType represents the type of distance function used for calculating distances between vectors.
type DistanceType int

// Constants representing different types of distance functions.
const (
	DistanceTypeSquaredL2 DistanceType = iota
	DistanceTypeCosine
)

// NewDistanceFunc returns a distance function based on the specified distance type.
// All returned functions order results ascending: smaller means closer. Cosine
// is mapped to the cosine distance 1 - similarity for that reason.
func NewDistanceFunc(distanceType DistanceType) DistanceFunc {
	switch distanceType {
	case DistanceTypeSquaredL2:
		return metric.SquaredL2
	case DistanceTypeCosine:
		return func(v1, v2 []float32) (float32, error) {
			sim, err := metric.CosineSimilarity(v1, v2)
			if err != nil {
				return 0, err
			}
			return 1 - sim, nil
		}
	default:
		return nil
	}
}

// String returns a string representation of the DistanceType.
func (dt DistanceType) String() string {
	switch dt {
	case DistanceTypeSquaredL2:
		return "SquaredL2"
	case DistanceTypeCosine:
		return "Cosine"
	default:
		return "Unknown"
	}
}

// ValidateBasicOptions checks the dimension and distance type shared by all
// index constructors.
func ValidateBasicOptions(dimension int, distanceType DistanceType) error {
	if dimension <= 0 {
		return &ErrInvalidDimension{Dimension: dimension}
	}
	if NewDistanceFunc(distanceType) == nil {
		return fmt.Errorf("unsupported distance type: %d", distanceType)
	}
	return nil
}

// SearchResult represents a search result.
type SearchResult struct {
	// ID is the identifier of the search result.
	ID uint32

	// Distance is the distance between the query vector and the result vector.
	Distance float32
}
