package stats

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestStandardScaler(t *testing.T) {
	X := mat.NewDense(4, 2, []float64{
		1, 10,
		2, 20,
		3, 30,
		4, 40,
	})
	scaled, err := NewStandardScaler().FitTransform(X)
	require.NoError(t, err)

	r, c := scaled.Dims()
	require.Equal(t, 4, r)
	require.Equal(t, 2, c)
	for j := 0; j < c; j++ {
		col := make([]float64, r)
		mat.Col(col, j, scaled)
		sum, sumSq := 0.0, 0.0
		for _, v := range col {
			sum += v
			sumSq += v * v
		}
		require.InDelta(t, 0, sum/float64(r), 1e-12, "column %d mean", j)
		require.InDelta(t, 1, sumSq/float64(r), 1e-12, "column %d variance", j)
	}
}

func TestStandardScalerConstantColumn(t *testing.T) {
	X := mat.NewDense(3, 1, []float64{5, 5, 5})
	scaled, err := NewStandardScaler().FitTransform(X)
	require.NoError(t, err)
	// Zero variance keeps a unit scale: constant columns center to zero.
	for i := 0; i < 3; i++ {
		require.Equal(t, 0.0, scaled.At(i, 0))
	}
}

func TestStandardScalerMisuse(t *testing.T) {
	s := NewStandardScaler()
	_, err := s.Transform(mat.NewDense(1, 1, []float64{1}))
	require.Error(t, err, "transform before fit")

	require.NoError(t, s.Fit(mat.NewDense(2, 2, []float64{1, 2, 3, 4})))
	_, err = s.Transform(mat.NewDense(2, 3, nil))
	require.Error(t, err, "column count mismatch")
}
