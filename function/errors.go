// Package function: sentinel error set.
// Sentinels are matched via errors.Is; wrap with fmt.Errorf("ctx: %w", ErrX)
// only at outer boundaries.

package function

import "errors"

var (
	// ErrClassParam indicates class parameters that no member of the class can
	// realize (e.g. smoothness below strong convexity, negative Lipschitz
	// constant, NaN). Rejected at declaration time, never deferred to solve.
	ErrClassParam = errors.New("function: invalid class parameters")

	// ErrNilClass indicates a nil Class passed to New.
	ErrNilClass = errors.New("function: nil class")

	// ErrNilOperand indicates a nil Point/Expression/Function argument.
	ErrNilOperand = errors.New("function: nil operand")

	// ErrPointAlreadyRecorded indicates AddPoint was called for a Point that
	// already has a recorded triple on this Function. Re-recording would
	// silently discard the earlier oracle answer; use Oracle for idempotent
	// lookup instead.
	ErrPointAlreadyRecorded = errors.New("function: point already recorded")

	// ErrZeroScale indicates a Scale by exactly zero, which would erase the
	// operand from the decomposition and make the combination meaningless.
	ErrZeroScale = errors.New("function: scale factor is zero")
)
