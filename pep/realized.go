package pep

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/sdp"
)

// WorstCase returns the solved worst-case value τ.
func (p *Problem) WorstCase() (float64, error) {
	if p.state == nil {
		return 0, ErrNotSolved
	}
	return p.state.tau, nil
}

// GramCorrection returns the Frobenius norm of the adjustment applied when
// projecting the solver's Gram matrix back onto the PSD cone. A value far
// above the configured tolerance signals a barely-feasible solve.
func (p *Problem) GramCorrection() (float64, error) {
	if p.state == nil {
		return 0, ErrNotSolved
	}
	return p.state.psdShift, nil
}

// RealizedValue evaluates a symbolic expression at the solved worst case:
// scalar unknowns take their solved values, Gram terms read the projected
// Gram matrix, constants pass through.
func (p *Problem) RealizedValue(e *core.Expression) (float64, error) {
	if p.state == nil {
		return 0, ErrNotSolved
	}
	p.checkExpr(e)
	v := e.ConstantTerm()
	for id, c := range e.Linear() {
		v += c * p.state.scalars[id]
	}
	for key, c := range e.Gram() {
		v += c * p.state.gram[key.I][key.J]
	}
	return v, nil
}

// RealizedInner evaluates <a, b> at the solved worst case.
func (p *Problem) RealizedInner(a, b *core.Point) (float64, error) {
	if a == nil || b == nil {
		panic(panicNilPoint)
	}
	return p.RealizedValue(a.Inner(b))
}

// RealizedGram returns a deep copy of the projected Gram matrix.
func (p *Problem) RealizedGram() ([][]float64, error) {
	if p.state == nil {
		return nil, ErrNotSolved
	}
	out := make([][]float64, len(p.state.gram))
	for i, row := range p.state.gram {
		out[i] = append([]float64(nil), row...)
	}
	return out, nil
}

// RealizedPoint reconstructs concrete coordinates for a symbolic point from
// the factored Gram matrix. The returned vector lives in a space of
// dimension GramDimension; together with RealizedValue it yields an explicit
// worst-case instance. Coordinates are determined up to a global rotation.
func (p *Problem) RealizedPoint(pt *core.Point) ([]float64, error) {
	if p.state == nil {
		return nil, ErrNotSolved
	}
	if pt == nil {
		panic(panicNilPoint)
	}
	if pt.Context() != p.ctx {
		panic(panicMixedProblem)
	}
	factor, err := p.gramFactor()
	if err != nil {
		return nil, err
	}
	d := len(factor)
	out := make([]float64, d)
	for gen, c := range pt.Coefficients() {
		for r := 0; r < d; r++ {
			out[r] += c * factor[r][gen]
		}
	}
	return out, nil
}

// DualValues returns the solver's dual multipliers for the scalar
// inequality constraints, in program order. Nonzero multipliers identify
// the constraints active in the worst-case certificate.
func (p *Problem) DualValues() ([]float64, error) {
	if p.state == nil {
		return nil, ErrNotSolved
	}
	return append([]float64(nil), p.state.duals...), nil
}

// ExportProgram returns a deep copy of the assembled standard-form program.
// Feeding it back through any sdp.Solver reproduces the same worst case.
func (p *Problem) ExportProgram() (*sdp.Program, error) {
	if p.state == nil {
		return nil, ErrNotSolved
	}
	return p.state.program.prog.Clone(), nil
}

// gramFactor lazily computes R with G = Rᵀ·R: column j of R holds the
// coordinates of basis generator j.
func (p *Problem) gramFactor() ([][]float64, error) {
	if p.state.factor != nil {
		return p.state.factor, nil
	}
	d := len(p.state.gram)
	sym := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			sym.SetSym(i, j, p.state.gram[i][j])
		}
	}
	var eig mat.EigenSym
	if !eig.Factorize(sym, true) {
		return nil, ErrSolver
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	factor := make([][]float64, d)
	for r := 0; r < d; r++ {
		factor[r] = make([]float64, d)
	}
	for r := 0; r < d; r++ {
		if vals[r] <= 0 {
			continue // projected Gram may still carry tiny negatives
		}
		s := math.Sqrt(vals[r])
		for j := 0; j < d; j++ {
			factor[r][j] = s * vecs.At(j, r)
		}
	}
	p.state.factor = factor
	return factor, nil
}
