package sdp

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// NearestPSD projects a symmetric matrix onto the PSD cone by clipping
// negative eigenvalues to zero, and reports the Frobenius norm of the
// correction so callers can judge how far from feasible the solver's answer
// was (tiny corrections are numerical noise; large ones mean the solve
// should not be trusted — that comparison is the caller's policy).
// Returns ErrEigenFailed if the decomposition does not converge.
// Complexity: O(n³).
func NearestPSD(g *mat.SymDense) (*mat.SymDense, float64, error) {
	if g == nil {
		return nil, 0, ErrNilMatrix
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(g, true); !ok {
		return nil, 0, ErrEigenFailed
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	n := g.SymmetricDim()
	var correction float64
	clipped := make([]float64, n)
	for i, v := range vals {
		if v < 0 {
			correction += v * v
			clipped[i] = 0
		} else {
			clipped[i] = v
		}
	}
	// Reassemble Q·diag(clipped)·Qᵀ.
	scaled := mat.NewDense(n, n, nil)
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			scaled.Set(i, j, vecs.At(i, j)*clipped[j])
		}
	}
	var full mat.Dense
	full.Mul(scaled, vecs.T())

	out := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			// Average the two halves to wash out rounding asymmetry.
			out.SetSym(i, j, (full.At(i, j)+full.At(j, i))/2)
		}
	}

	return out, math.Sqrt(correction), nil
}

// CountEigenAbove returns how many eigenvalues of g exceed cutoff, plus the
// full spectrum sorted descending. This is the rank probe of the
// dimension-reduction loop.
// Complexity: O(n³).
func CountEigenAbove(g *mat.SymDense, cutoff float64) (int, []float64, error) {
	if g == nil {
		return 0, nil, ErrNilMatrix
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(g, false); !ok {
		return 0, nil, ErrEigenFailed
	}
	vals := eig.Values(nil)
	sort.Sort(sort.Reverse(sort.Float64Slice(vals)))

	count := 0
	for _, v := range vals {
		if v > cutoff {
			count++
		}
	}

	return count, vals, nil
}

// MinEigenvalue returns the smallest eigenvalue of g — the PSD-ness probe
// used by tests and diagnostics.
func MinEigenvalue(g *mat.SymDense) (float64, error) {
	_, vals, err := CountEigenAbove(g, math.Inf(1))
	if err != nil {
		return 0, err
	}

	return vals[len(vals)-1], nil
}
