// Package sdp: sentinel error set.

package sdp

import "errors"

var (
	// ErrNilProgram indicates a nil *Program passed to a Solver or validator.
	ErrNilProgram = errors.New("sdp: nil program")

	// ErrBadProgram indicates a structurally malformed program: coefficient
	// indices out of range, objective length mismatch, or a non-square PSD
	// block. Detected by Validate before any solver work.
	ErrBadProgram = errors.New("sdp: malformed program")

	// ErrEigenFailed indicates the symmetric eigendecomposition used for PSD
	// projection or eigenvalue counting did not converge.
	ErrEigenFailed = errors.New("sdp: eigendecomposition failed")

	// ErrNilMatrix indicates a nil matrix argument.
	ErrNilMatrix = errors.New("sdp: nil matrix")
)
