// Package core: sentinel error set and stable panic messages.
// Sentinels are matched via errors.Is; do not wrap them when returning
// directly. Panics are reserved for programmer errors (API misuse that can
// never be triggered by data), per the package conventions.

package core

import "errors"

var (
	// ErrNilPoint indicates a nil *Point operand was passed to an algebra call.
	ErrNilPoint = errors.New("core: nil point")

	// ErrNilExpression indicates a nil *Expression operand was passed to an algebra call.
	ErrNilExpression = errors.New("core: nil expression")

	// ErrNotSymmetricPSD indicates a PSD constraint matrix whose shape is not
	// square, or whose entries were not provided symmetrically.
	ErrNotSymmetricPSD = errors.New("core: PSD constraint matrix is not square symmetric")
)

// Stable panic messages for programmer errors.
// Tests assert on these strings; do not edit casually.
const (
	panicMixedContext  = "core: operands belong to different Contexts"
	panicFrozenContext = "core: symbol creation after Context freeze"
	panicNilContext    = "core: nil Context"
	panicNilOperand    = "core: nil Point operand"
)
