package neargo

import (
	"errors"
	"fmt"

	"github.com/hupe1980/neargo/engine"
	"github.com/hupe1980/neargo/index"
)

var (
	// ErrInvalidK is returned when a neighbor count is not positive.
	ErrInvalidK = errors.New("k must be positive")

	// ErrEmptyDataset is returned when ranking over an empty dataset.
	ErrEmptyDataset = errors.New("dataset contains no points")
)

// ErrDimensionMismatch indicates a point/query dimensionality mismatch.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type ErrDimensionMismatch struct {
	Expected int
	Actual   int
	cause    error
}

func (e *ErrDimensionMismatch) Error() string {
	return fmt.Sprintf("dimension mismatch: expected %d, got %d", e.Expected, e.Actual)
}

func (e *ErrDimensionMismatch) Unwrap() error { return e.cause }

// translateError normalizes subpackage errors into the root package's
// error vocabulary.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var dm *index.ErrDimensionMismatch
	if errors.As(err, &dm) {
		return &ErrDimensionMismatch{Expected: dm.Expected, Actual: dm.Actual, cause: err}
	}
	if errors.Is(err, index.ErrInvalidK) {
		return fmt.Errorf("%w: %w", ErrInvalidK, err)
	}
	if errors.Is(err, engine.ErrEmptyDataset) {
		return fmt.Errorf("%w: %w", ErrEmptyDataset, err)
	}

	return err
}
