package index

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDistanceFunc(t *testing.T) {
	t.Run("SquaredL2", func(t *testing.T) {
		f := NewDistanceFunc(DistanceTypeSquaredL2)
		require.NotNil(t, f)
		d, err := f([]float32{9, 2}, []float32{7, 2})
		require.NoError(t, err)
		assert.InDelta(t, 4.0, d, 1e-6)
	})

	t.Run("Cosine", func(t *testing.T) {
		f := NewDistanceFunc(DistanceTypeCosine)
		require.NotNil(t, f)

		// Parallel vectors have zero cosine distance.
		d, err := f([]float32{1, 0}, []float32{2, 0})
		require.NoError(t, err)
		assert.InDelta(t, 0.0, d, 1e-6)

		// Orthogonal vectors are farther than parallel ones.
		d2, err := f([]float32{1, 0}, []float32{0, 1})
		require.NoError(t, err)
		assert.Greater(t, d2, d)
	})

	t.Run("Unknown", func(t *testing.T) {
		assert.Nil(t, NewDistanceFunc(DistanceType(42)))
	})
}

func TestValidateBasicOptions(t *testing.T) {
	assert.NoError(t, ValidateBasicOptions(3, DistanceTypeSquaredL2))

	err := ValidateBasicOptions(0, DistanceTypeSquaredL2)
	var invalidDim *ErrInvalidDimension
	assert.ErrorAs(t, err, &invalidDim)

	assert.Error(t, ValidateBasicOptions(3, DistanceType(42)))
}

func TestMergeSearchResults(t *testing.T) {
	a := []SearchResult{{ID: 0, Distance: 1}, {ID: 2, Distance: 3}}
	b := []SearchResult{{ID: 1, Distance: 2}, {ID: 3, Distance: 4}}

	merged := MergeSearchResults(a, b, 3)
	require.Len(t, merged, 3)
	assert.Equal(t, uint32(0), merged[0].ID)
	assert.Equal(t, uint32(1), merged[1].ID)
	assert.Equal(t, uint32(2), merged[2].ID)

	// Equal distances fall back to ID order.
	tied := MergeSearchResults(
		[]SearchResult{{ID: 5, Distance: 1}},
		[]SearchResult{{ID: 2, Distance: 1}},
		2,
	)
	assert.Equal(t, uint32(2), tied[0].ID)
	assert.Equal(t, uint32(5), tied[1].ID)
}
