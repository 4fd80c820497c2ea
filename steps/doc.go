// Package steps provides reusable composite oracle patterns — the proximal
// step and the Bregman (mirror-descent) gradient step — expressed purely in
// the symbolic Point/Expression algebra.
//
// Both primitives introduce a genuinely new basis point (the step's output is
// not expressible as a closed-form combination of existing points), record
// the implicitly defined gradient on the target Function through its oracle
// machinery, and register exactly one equality constraint tying that
// gradient to the algebraic step formula. The equality is encoded at the
// Gram level as a vanishing squared norm, which the positive-semidefinite
// Gram variable turns into exact vector equality in any realized solution.
//
// Constraints are registered on the caller-supplied Recorder — in practice
// the owning pep.Problem, which is where all constraints accumulate.
package steps
