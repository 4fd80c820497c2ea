// Package sdp defines the standard-form semidefinite program handed to the
// external solver collaborator, the Solver contract itself, and the
// numerical post-processing (PSD projection, eigenvalue counting) applied to
// returned solutions.
//
// A Program is linear: minimize C·x subject to scalar inequality and
// equality rows over the free vector x, plus affine matrix blocks required
// positive semidefinite. The engine never solves anything here — ConeSolver
// lowers a Program to the cone-LP form of github.com/hrautila/cvx (the
// l-cone for scalar rows, one s-cone block per PSD matrix) and translates
// the answer back. Any solver satisfying the Solver interface can be
// substituted.
//
// Exact SDP feasibility is unattainable in floating point, so returned Gram
// matrices may carry tiny negative eigenvalues. NearestPSD projects them
// onto the PSD cone and reports the size of the correction instead of
// failing; hard solver failures surface as statuses, never retries.
package sdp
