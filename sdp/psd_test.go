// Package sdp_test: unit tests for PSD projection and eigenvalue probes.
package sdp_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pepkit/sdp"
)

// TestNearestPSDFixedPoint: an already-PSD matrix projects onto itself with
// zero correction.
func TestNearestPSDFixedPoint(t *testing.T) {
	g := mat.NewSymDense(2, []float64{2, 1, 1, 2}) // eigenvalues 1 and 3
	proj, corr, err := sdp.NearestPSD(g)
	require.NoError(t, err)
	require.InDelta(t, 0.0, corr, 1e-12)
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, g.At(i, j), proj.At(i, j), 1e-10)
		}
	}
}

// TestNearestPSDClipsNegativeEigenvalue: the indefinite matrix
// [[1,2],[2,1]] (eigenvalues 3 and -1) projects onto the rank-1 PSD part
// with correction 1.
func TestNearestPSDClipsNegativeEigenvalue(t *testing.T) {
	g := mat.NewSymDense(2, []float64{1, 2, 2, 1})
	proj, corr, err := sdp.NearestPSD(g)
	require.NoError(t, err)
	require.InDelta(t, 1.0, corr, 1e-10) // Frobenius norm of the clipped part

	// Projection is (3/2)·[[1,1],[1,1]].
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			require.InDelta(t, 1.5, proj.At(i, j), 1e-10)
		}
	}

	minEig, err := sdp.MinEigenvalue(proj)
	require.NoError(t, err)
	require.GreaterOrEqual(t, minEig, -1e-10) // PSD after projection
}

// TestCountEigenAbove counts the spectrum of a known diagonal matrix.
func TestCountEigenAbove(t *testing.T) {
	g := mat.NewSymDense(3, []float64{
		3, 0, 0,
		0, 0.5, 0,
		0, 0, 1e-9,
	})
	count, vals, err := sdp.CountEigenAbove(g, 1e-6)
	require.NoError(t, err)
	require.Equal(t, 2, count)
	require.Len(t, vals, 3)
	require.InDelta(t, 3.0, vals[0], 1e-12) // sorted descending
	require.ErrorIs(t, errOnNil(), sdp.ErrNilMatrix)
}

// errOnNil exercises the nil guard.
func errOnNil() error {
	_, _, err := sdp.CountEigenAbove(nil, 0)

	return err
}
