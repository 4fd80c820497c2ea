package function

import (
	"math"

	"github.com/katalvlaran/pepkit/core"
)

// Convex is the class of closed proper convex functions: the μ = 0, L = +Inf
// degeneration of SmoothStronglyConvex under its own name. Its interpolation
// condition is the plain subgradient inequality.
type Convex struct{}

// NewConvex returns the parameter-free convex class.
func NewConvex() Convex { return Convex{} }

// Name identifies the class in diagnostics.
func (Convex) Name() string { return "convex" }

// Validate never fails: the class is parameter-free.
func (Convex) Validate() error { return nil }

// Interpolation delegates to the exact degenerate smooth strongly convex
// policy: fᵢ - fⱼ ≥ gⱼ·(xᵢ-xⱼ) for every ordered pair i ≠ j.
func (Convex) Interpolation(triples []Triple) []core.Constraint {
	return SmoothStronglyConvex{Mu: 0, L: math.Inf(1)}.Interpolation(triples)
}
