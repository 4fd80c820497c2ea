package pep_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/function"
	"github.com/katalvlaran/pepkit/pep"
	"github.com/katalvlaran/pepkit/sdp"
	"github.com/katalvlaran/pepkit/steps"
)

// captureSolver records the program it receives and returns a canned
// all-zero solution, so Problem flow can be tested without a real solve.
type captureSolver struct {
	prog   *sdp.Program
	opts   sdp.Options
	status sdp.Status
	err    error
	calls  int
}

func (s *captureSolver) Solve(p *sdp.Program, o sdp.Options) (*sdp.Solution, error) {
	s.prog, s.opts = p, o
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &sdp.Solution{
		Status:    s.status,
		X:         make([]float64, p.NumVars),
		IneqDuals: make([]float64, len(p.Ineqs)),
	}, nil
}

func mustSmooth(t *testing.T, mu, l float64) function.SmoothStronglyConvex {
	t.Helper()
	cls, err := function.NewSmoothStronglyConvex(mu, l)
	require.NoError(t, err)
	return cls
}

// buildGradientDescent records n plain gradient steps x_{k+1} = x_k - γ·g_k
// against a fresh problem and returns the final iterate and the function.
func buildGradientDescent(t *testing.T, p *pep.Problem, n int, l float64) (*core.Point, *function.Function) {
	t.Helper()
	f, err := p.DeclareFunction(mustSmooth(t, 0, l))
	require.NoError(t, err)

	xs := f.StationaryPoint()
	x0 := p.SetInitialPoint()
	p.SetInitialCondition(x0.Sub(xs).NormSq().LessEqualConst(1))

	gamma := 1 / l
	x := x0
	for k := 0; k < n; k++ {
		x = x.Sub(f.Gradient(x).Scale(gamma))
	}
	p.SetPerformanceMetric(f.Value(x).Sub(f.Value(xs)))
	return x, f
}

func TestSolve_RequiresMetric(t *testing.T) {
	p := pep.NewProblem(pep.WithSolver(&captureSolver{}))
	_, err := p.Solve()
	require.ErrorIs(t, err, pep.ErrNoMetric)
}

func TestSolve_IsOneShot(t *testing.T) {
	stub := &captureSolver{}
	p := pep.NewProblem(pep.WithSolver(stub))
	buildGradientDescent(t, p, 1, 1)

	_, err := p.Solve()
	require.NoError(t, err)
	require.Equal(t, 1, stub.calls)

	_, err = p.Solve()
	require.ErrorIs(t, err, pep.ErrAlreadySolved)
	require.Equal(t, 1, stub.calls) // no second dispatch
}

func TestSolve_FreezesContext(t *testing.T) {
	p := pep.NewProblem(pep.WithSolver(&captureSolver{}))
	buildGradientDescent(t, p, 1, 1)

	_, err := p.Solve()
	require.NoError(t, err)
	require.True(t, p.Context().Frozen())
	require.Panics(t, func() { p.SetInitialPoint() }) // symbols are sealed
}

func TestSolve_StatusMapping(t *testing.T) {
	cases := []struct {
		status sdp.Status
		want   error
	}{
		{sdp.StatusInfeasible, pep.ErrInfeasible},
		{sdp.StatusUnbounded, pep.ErrUnbounded},
		{sdp.StatusError, pep.ErrSolver},
	}
	for _, tc := range cases {
		p := pep.NewProblem(pep.WithSolver(&captureSolver{status: tc.status}))
		buildGradientDescent(t, p, 1, 1)
		_, err := p.Solve()
		require.ErrorIs(t, err, tc.want, "status %s", tc.status)
	}
}

func TestSolve_WrapsDispatchError(t *testing.T) {
	boom := errors.New("numerical meltdown")
	p := pep.NewProblem(pep.WithSolver(&captureSolver{err: boom}))
	buildGradientDescent(t, p, 1, 1)

	_, err := p.Solve()
	require.ErrorIs(t, err, pep.ErrSolver)
	require.Contains(t, err.Error(), boom.Error())
}

func TestSolve_ProgramShape(t *testing.T) {
	const n, l = 2, 1.0
	stub := &captureSolver{}
	p := pep.NewProblem(pep.WithSolver(stub))
	buildGradientDescent(t, p, n, l)

	// Trajectory symbols: xs, x0 and n step gradients ⇒ d = n+3 generators
	// (the stationary gradient is the zero point, not a generator); scalar
	// unknowns: fs plus one value per oracle query ⇒ m = n+2.
	d, m := n+3, n+2
	require.Equal(t, d, p.GramDimension())
	require.Equal(t, m, p.ScalarCount())

	_, err := p.Solve()
	require.NoError(t, err)

	prog := stub.prog
	require.NotNil(t, prog)
	require.Equal(t, m+d*(d+1)/2+1, prog.NumVars)

	// Objective maximizes the auxiliary variable (last slot).
	require.Equal(t, -1.0, prog.C[prog.NumVars-1])
	for i := 0; i < prog.NumVars-1; i++ {
		require.Zero(t, prog.C[i])
	}

	// Rows: one metric link, one initial condition, and the ordered-pair
	// interpolation sweep over n+2 recorded triples.
	k := n + 2
	require.Len(t, prog.Ineqs, 1+1+k*(k-1))
	require.Empty(t, prog.Eqs)
	require.Equal(t, []int{k * (k - 1)}, p.InterpolationCounts())

	// The Gram PSD block always comes first.
	require.Len(t, prog.Blocks, 1)
	require.Equal(t, d, prog.Blocks[0].Dim)
}

func TestSolve_ForwardsSolverOptions(t *testing.T) {
	stub := &captureSolver{}
	p := pep.NewProblem(
		pep.WithSolver(stub),
		pep.WithSolverMaxIters(17),
		pep.WithFeasTolerance(1e-9),
	)
	buildGradientDescent(t, p, 1, 1)

	_, err := p.Solve()
	require.NoError(t, err)
	require.Equal(t, 17, stub.opts.MaxIters)
	require.InDelta(t, 1e-9, stub.opts.FeasTol, 0)
	require.False(t, stub.opts.Verbose) // verbosity defaults to silent
}

func TestQueries_BeforeSolve(t *testing.T) {
	p := pep.NewProblem(pep.WithSolver(&captureSolver{}))
	x := p.SetInitialPoint()

	_, err := p.WorstCase()
	require.ErrorIs(t, err, pep.ErrNotSolved)
	_, err = p.RealizedValue(x.NormSq())
	require.ErrorIs(t, err, pep.ErrNotSolved)
	_, err = p.RealizedGram()
	require.ErrorIs(t, err, pep.ErrNotSolved)
	_, err = p.RealizedPoint(x)
	require.ErrorIs(t, err, pep.ErrNotSolved)
	_, err = p.DualValues()
	require.ErrorIs(t, err, pep.ErrNotSolved)
	_, err = p.ExportProgram()
	require.ErrorIs(t, err, pep.ErrNotSolved)
	_, err = p.ReduceDimension()
	require.ErrorIs(t, err, pep.ErrNotSolved)
}

func TestDeclareFunction_NilClass(t *testing.T) {
	p := pep.NewProblem()
	_, err := p.DeclareFunction(nil)
	require.ErrorIs(t, err, pep.ErrNilFunction)
}

func TestConstraint_ForeignContextPanics(t *testing.T) {
	p := pep.NewProblem()
	other := pep.NewProblem()
	foreign := other.SetInitialPoint().NormSq().LessEqualConst(1)

	require.PanicsWithValue(t, pep.PanicMixedProblemForTest, func() {
		p.AddConstraint(foreign)
	})
	require.PanicsWithValue(t, pep.PanicMixedProblemForTest, func() {
		p.SetPerformanceMetric(other.SetInitialPoint().NormSq())
	})
}

func TestConstraint_EmptyPanics(t *testing.T) {
	p := pep.NewProblem()
	require.PanicsWithValue(t, pep.PanicEmptyConstraintForTest, func() {
		p.AddConstraint(core.Constraint{})
	})
}

// scriptedSolver replays a fixed sequence of primal vectors, one per call.
type scriptedSolver struct {
	xs    [][]float64
	calls int
}

func (s *scriptedSolver) Solve(p *sdp.Program, _ sdp.Options) (*sdp.Solution, error) {
	x := s.xs[s.calls]
	s.calls++
	return &sdp.Solution{
		Status:    sdp.StatusOptimal,
		X:         x,
		IneqDuals: make([]float64, len(p.Ineqs)),
	}, nil
}

func TestReduceDimension_RejectedResolveNotCounted(t *testing.T) {
	// Three generators, no scalar unknowns: variables are the six Gram
	// entries (row-major upper triangle) plus the auxiliary last slot.
	// The first solve yields Gram diag(1,1,0) (rank 2); the penalty
	// re-solve answers with the identity (rank 3), which must be rejected
	// without counting a step or touching the realized state.
	stub := &scriptedSolver{xs: [][]float64{
		{1, 0, 0, 1, 0, 0, 0},
		{1, 0, 0, 1, 0, 1, 0},
	}}
	p := pep.NewProblem(pep.WithSolver(stub))
	x1 := p.SetInitialPoint()
	p.SetInitialPoint()
	p.SetInitialPoint()
	p.SetPerformanceMetric(x1.NormSq())

	tau, err := p.Solve()
	require.NoError(t, err)

	report, err := p.ReduceDimension(
		pep.WithTargetRank(1),
		pep.WithMaxReductionSteps(1),
	)
	require.NoError(t, err)
	require.Equal(t, 2, stub.calls)

	require.Equal(t, 0, report.Steps) // rejected re-solve is not a step
	require.Equal(t, 2, report.Rank)
	require.InDelta(t, tau, report.Objective, 0)

	gram, err := p.RealizedGram()
	require.NoError(t, err)
	want := [][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 0}}
	for i := range want {
		for j := range want[i] {
			require.InDelta(t, want[i][j], gram[i][j], 1e-12)
		}
	}
}

func TestProblem_SatisfiesStepsRecorder(t *testing.T) {
	p := pep.NewProblem(pep.WithSolver(&captureSolver{}))
	cls, err := function.NewConvexIndicator(1)
	require.NoError(t, err)
	f, err := p.DeclareFunction(cls)
	require.NoError(t, err)

	x0 := p.SetInitialPoint()

	// Compiles only because *Problem implements steps.Recorder.
	x, g, fx, serr := steps.ProximalStep(p, x0, f, 1)
	require.NoError(t, serr)
	require.NotNil(t, x)
	require.NotNil(t, g)
	require.NotNil(t, fx)
}
