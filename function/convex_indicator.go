package function

import (
	"fmt"
	"math"

	"github.com/katalvlaran/pepkit/core"
)

// ConvexIndicator is the class of indicator functions of closed convex sets
// of diameter at most D (D = +Inf for unbounded sets). Oracle gradients are
// subgradients of the indicator, i.e. normal-cone elements at feasible
// points; oracle values are pinned to zero.
type ConvexIndicator struct {
	// D bounds the set diameter (> 0; +Inf for no bound).
	D float64
}

// NewConvexIndicator validates and returns the class. Use D = math.Inf(1)
// for an unbounded set.
func NewConvexIndicator(d float64) (ConvexIndicator, error) {
	cls := ConvexIndicator{D: d}

	return cls, cls.Validate()
}

// Name identifies the class in diagnostics.
func (c ConvexIndicator) Name() string {
	return fmt.Sprintf("convex indicator (D=%g)", c.D)
}

// Validate enforces D > 0 (a zero-diameter set has no interior to project
// onto and degenerates every trajectory to one point).
func (c ConvexIndicator) Validate() error {
	if math.IsNaN(c.D) || c.D <= 0 {
		return fmt.Errorf("%w: D=%g must be > 0 (or +Inf)", ErrClassParam, c.D)
	}

	return nil
}

// Interpolation emits the convex-indicator interpolation conditions:
// every recorded value is zero (the points are feasible), every ordered pair
// satisfies the normal-cone inequality gⱼ·(xᵢ-xⱼ) ≤ 0, and — for finite D —
// every unordered pair satisfies ||xᵢ-xⱼ||² ≤ D².
// Count: k + k(k-1) (+ k(k-1)/2 when D is finite); zero constraints only
// when no triple was recorded (a single triple still pins its value).
func (c ConvexIndicator) Interpolation(triples []Triple) []core.Constraint {
	k := len(triples)
	if k == 0 {
		return nil
	}
	bounded := !math.IsInf(c.D, 1)

	out := make([]core.Constraint, 0, k*k)
	for _, t := range triples {
		out = append(out, t.F.EqualConst(0))
	}
	for i := 0; i < k; i++ {
		for j := 0; j < k; j++ {
			if i == j {
				continue
			}
			ti, tj := triples[i], triples[j]
			out = append(out, tj.G.Inner(ti.X.Sub(tj.X)).LessEqualConst(0))
			if bounded && i < j {
				out = append(out, ti.X.Sub(tj.X).NormSq().LessEqualConst(c.D*c.D))
			}
		}
	}

	return out
}
