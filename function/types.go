package function

import "github.com/katalvlaran/pepkit/core"

// Triple is one recorded oracle answer: at point X the function returned
// (sub)gradient G and value F. Triples are recorded in call order and are
// the sole input to interpolation-constraint emission.
type Triple struct {
	X *core.Point
	G *core.Point
	F *core.Expression
}

// Class is the pluggable policy of a function/operator class. The closed set
// shipped here (smooth strongly convex, convex, convex indicator, Lipschitz
// strongly monotone) is user-extensible: any type implementing Class can be
// declared on a Problem.
type Class interface {
	// Name identifies the class in diagnostics.
	Name() string

	// Validate rejects parameter combinations no member of the class can
	// realize. Must return ErrClassParam (possibly wrapped) on violation.
	Validate() error

	// Interpolation emits, for the given ordered list of recorded triples,
	// the pairwise constraints that are necessary and sufficient for some
	// member of the class to pass through all of them. Zero or one triple
	// must yield no constraints (vacuously consistent). The emitted count is
	// O(k²) in the triple count k.
	Interpolation(triples []Triple) []core.Constraint
}
