package function

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pepkit/core"
)

// LipschitzStronglyMonotone is the class of L-Lipschitz, μ-strongly monotone
// operators, 0 ≤ μ ≤ L ≤ +Inf. Oracle "gradients" are operator values;
// oracle value expressions exist for API uniformity but carry no meaning and
// generate no constraints.
type LipschitzStronglyMonotone struct {
	// Mu is the strong-monotonicity modulus (≥ 0).
	Mu float64

	// L is the Lipschitz constant (≥ Mu; +Inf allowed).
	L float64
}

// NewLipschitzStronglyMonotone validates and returns the class.
func NewLipschitzStronglyMonotone(mu, l float64) (LipschitzStronglyMonotone, error) {
	cls := LipschitzStronglyMonotone{Mu: mu, L: l}

	return cls, cls.Validate()
}

// Name identifies the class in diagnostics.
func (c LipschitzStronglyMonotone) Name() string {
	return fmt.Sprintf("Lipschitz strongly monotone operator (mu=%g, L=%g)", c.Mu, c.L)
}

// Validate enforces 0 ≤ μ ≤ L and L > 0.
func (c LipschitzStronglyMonotone) Validate() error {
	if math.IsNaN(c.Mu) || math.IsNaN(c.L) {
		return fmt.Errorf("%w: NaN parameter", ErrClassParam)
	}
	if c.Mu < 0 {
		return fmt.Errorf("%w: mu=%g < 0", ErrClassParam, c.Mu)
	}
	if c.L <= 0 || c.Mu > c.L {
		return fmt.Errorf("%w: need 0 <= mu <= L, L > 0; got mu=%g, L=%g", ErrClassParam, c.Mu, c.L)
	}

	return nil
}

// Interpolation emits, for every unordered pair of recorded triples, the
// strong-monotonicity inequality
//
//	(gᵢ-gⱼ)·(xᵢ-xⱼ) ≥ μ·||xᵢ-xⱼ||²
//
// and — for finite L — the Lipschitz inequality in inner-product form
//
//	||gᵢ-gⱼ||² ≤ L²·||xᵢ-xⱼ||².
//
// Count: k(k-1)/2 (or k(k-1) with finite L) for k triples; zero for k ≤ 1.
func (c LipschitzStronglyMonotone) Interpolation(triples []Triple) []core.Constraint {
	k := len(triples)
	if k < 2 {
		return nil
	}
	lipschitz := !math.IsInf(c.L, 1)

	out := make([]core.Constraint, 0, k*(k-1))
	for i := 0; i < k; i++ {
		for j := i + 1; j < k; j++ {
			ti, tj := triples[i], triples[j]
			dx := ti.X.Sub(tj.X)
			dg := ti.G.Sub(tj.G)

			mono := dg.Inner(dx)
			if c.Mu > 0 {
				mono = mono.Sub(dx.NormSq().Scale(c.Mu))
			}
			out = append(out, mono.GreaterEqualConst(0))

			if lipschitz {
				out = append(out, dg.NormSq().LessEqual(dx.NormSq().Scale(c.L*c.L)))
			}
		}
	}

	return out
}
