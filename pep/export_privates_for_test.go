package pep

import "github.com/katalvlaran/pepkit/sdp"

// MinGramEigenForTest exposes the internal symmetric-matrix conversion so
// black-box tests can check PSD-ness of realized Gram matrices.
func MinGramEigenForTest(gram [][]float64) (float64, error) {
	return sdp.MinEigenvalue(toSym(gram))
}

// Stable panic messages re-exported for black-box tests.
const (
	PanicNilExpressionForTest   = panicNilExpr
	PanicNilPointForTest        = panicNilPoint
	PanicMixedProblemForTest    = panicMixedProblem
	PanicEmptyConstraintForTest = panicEmptyCon
)
