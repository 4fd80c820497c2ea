package pep

import "errors"

// Sentinel errors reported by Problem operations. Match with errors.Is.
var (
	// ErrNoMetric indicates Solve was called before SetPerformanceMetric.
	ErrNoMetric = errors.New("pep: no performance metric set")

	// ErrAlreadySolved indicates a second Solve call on the same Problem.
	ErrAlreadySolved = errors.New("pep: problem already solved")

	// ErrNotSolved indicates a realized-value query before a successful Solve.
	ErrNotSolved = errors.New("pep: problem not solved")

	// ErrInfeasible indicates the solver certified the constraint set empty.
	ErrInfeasible = errors.New("pep: problem infeasible")

	// ErrUnbounded indicates the worst-case value grows without bound,
	// typically because no initial condition caps the starting distance.
	ErrUnbounded = errors.New("pep: problem unbounded")

	// ErrSolver wraps a numerical failure inside the external solver.
	ErrSolver = errors.New("pep: solver failure")

	// ErrNilFunction indicates a nil function class or function argument.
	ErrNilFunction = errors.New("pep: nil function")
)

// Panic messages for programmer errors, kept stable for tests.
const (
	panicNilExpr      = "pep: nil expression"
	panicNilPoint     = "pep: nil point"
	panicMixedProblem = "pep: symbol belongs to a different Problem"
	panicEmptyCon     = "pep: empty constraint"
)
