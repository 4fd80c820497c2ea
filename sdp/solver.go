package sdp

// Status classifies a solver outcome. Anything other than StatusOptimal is
// terminal for the owning Problem: the engine performs no retries and no
// automatic relaxation.
type Status uint8

const (
	// StatusOptimal: the solver returned an optimal (or near-optimal within
	// its tolerance) primal/dual pair.
	StatusOptimal Status = iota

	// StatusInfeasible: the constraint set admits no solution.
	StatusInfeasible

	// StatusUnbounded: the objective is unbounded below (dual infeasible).
	StatusUnbounded

	// StatusError: the solver failed numerically or internally.
	StatusError
)

// String implements fmt.Stringer for diagnostics.
func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	default:
		return "solver_error"
	}
}

// Options configures a single solver dispatch. The zero value is usable:
// defaults are applied by the concrete solver.
type Options struct {
	// MaxIters bounds solver iterations (0 ⇒ solver default).
	MaxIters int

	// Verbose forwards the solver's own progress output.
	Verbose bool

	// FeasTol is the solver feasibility tolerance (0 ⇒ solver default).
	FeasTol float64
}

// Solution is a solved program: the status, the objective value C·x, the
// primal vector, and the dual values of the scalar rows (used for
// proof-of-tightness reporting).
type Solution struct {
	Status    Status
	Objective float64
	X         []float64
	IneqDuals []float64
	EqDuals   []float64
}

// Solver is the external collaborator contract. Solve must be synchronous;
// cancellation/timeouts are the caller's concern (wrap externally). A non-nil
// error means the dispatch itself failed; solver-reported infeasibility is a
// Status, not an error.
type Solver interface {
	Solve(p *Program, opts Options) (*Solution, error)
}
