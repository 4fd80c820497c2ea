package function

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pepkit/core"
)

// SmoothStronglyConvex is the class of L-smooth, μ-strongly convex functions,
// 0 ≤ μ < L ≤ +Inf. L = +Inf covers the nonsmooth case (μ-strongly convex),
// and μ = 0 the merely convex case; both degenerations are exact, not
// approximations.
type SmoothStronglyConvex struct {
	// Mu is the strong-convexity modulus (≥ 0).
	Mu float64

	// L is the smoothness constant (> Mu; +Inf allowed).
	L float64
}

// NewSmoothStronglyConvex validates and returns the class.
func NewSmoothStronglyConvex(mu, l float64) (SmoothStronglyConvex, error) {
	cls := SmoothStronglyConvex{Mu: mu, L: l}

	return cls, cls.Validate()
}

// Name identifies the class in diagnostics.
func (c SmoothStronglyConvex) Name() string {
	return fmt.Sprintf("smooth strongly convex (mu=%g, L=%g)", c.Mu, c.L)
}

// Validate enforces 0 ≤ μ < L. μ == L is rejected: the interpolation
// inequality divides by (1 - μ/L), and the μ == L class is the single
// quadratic, which this policy does not describe.
func (c SmoothStronglyConvex) Validate() error {
	if math.IsNaN(c.Mu) || math.IsNaN(c.L) {
		return fmt.Errorf("%w: NaN parameter", ErrClassParam)
	}
	if c.Mu < 0 {
		return fmt.Errorf("%w: mu=%g < 0", ErrClassParam, c.Mu)
	}
	if c.Mu >= c.L {
		return fmt.Errorf("%w: mu=%g >= L=%g", ErrClassParam, c.Mu, c.L)
	}

	return nil
}

// Interpolation emits the smooth strongly convex interpolation conditions:
// for every ordered pair of recorded triples (xᵢ,gᵢ,fᵢ), (xⱼ,gⱼ,fⱼ), i ≠ j,
//
//	fᵢ - fⱼ ≥ gⱼ·(xᵢ-xⱼ) + 1/(2L)·||gᵢ-gⱼ||²
//	          + μ/(2(1-μ/L))·||xᵢ-xⱼ - (gᵢ-gⱼ)/L||²,
//
// with the 1/L terms vanishing for L = +Inf. These conditions are necessary
// and sufficient for a function of the class to pass through all triples.
// Count: k(k-1) constraints for k triples; zero for k ≤ 1.
func (c SmoothStronglyConvex) Interpolation(triples []Triple) []core.Constraint {
	k := len(triples)
	if k < 2 {
		return nil
	}
	smooth := !math.IsInf(c.L, 1)

	out := make([]core.Constraint, 0, k*(k-1))
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			ti, tj := triples[i], triples[j]
			dx := ti.X.Sub(tj.X)

			rhs := tj.G.Inner(dx) // first-order lower bound gⱼ·(xᵢ-xⱼ)
			if smooth {
				dg := ti.G.Sub(tj.G)
				rhs = rhs.Add(dg.NormSq().Scale(1 / (2 * c.L)))
				if c.Mu > 0 {
					r := dx.Sub(dg.Scale(1 / c.L))
					rhs = rhs.Add(r.NormSq().Scale(c.Mu / (2 * (1 - c.Mu/c.L))))
				}
			} else if c.Mu > 0 {
				rhs = rhs.Add(dx.NormSq().Scale(c.Mu / 2))
			}

			out = append(out, ti.F.Sub(tj.F).GreaterEqual(rhs))
		}
	}

	return out
}
