// Package pepkit turns the question "how bad can this algorithm get?"
// into a semidefinite program — and answers it with a certificate.
//
// 🚀 What is pepkit?
//
//	A toolkit for performance estimation: describe a first-order method
//	symbolically, pick a function or operator class, and receive the
//	TIGHT worst-case bound together with a concrete worst-case instance:
//		• Symbolic algebra: points, scalar expressions, Gram-aware inner products
//		• Function classes: smooth (strongly) convex, convex indicators,
//		  Lipschitz strongly monotone operators — each with exact
//		  interpolation conditions
//		• Primitive steps: proximal and Bregman gradient steps as
//		  single-constraint oracles
//		• SDP engine: standard-form assembly, cone-solver dispatch,
//		  PSD projection and spectra
//		• Post-processing: dual multipliers, realized witnesses,
//		  dimension-reduction heuristics
//
// ✨ Why choose pepkit?
//
//   - Exact, not heuristic — bounds are tight over the declared class
//   - Declarative — write the algorithm once, in five lines
//   - Pure Go pipeline — from symbols to certificate without leaving the process
//   - Inspectable — export the assembled program, read the duals, rebuild
//     the worst-case function point by point
//
// Under the hood, everything is organized in five subpackages:
//
//	core/     — Context, Point, Expression, Constraint primitives
//	function/ — function/operator classes and oracle bookkeeping
//	steps/    — proximal & Bregman primitive steps
//	sdp/      — standard-form programs, solvers, eigen utilities
//	pep/      — the Problem: assembly, solving, witnesses
//
// Begin with pep.NewProblem, declare a function class, record your
// algorithm, set a performance metric, and call Solve.
package pepkit
