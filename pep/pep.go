package pep

import (
	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/function"
)

// Problem is the single entry point for building and solving a performance
// estimation problem. It owns a fresh core.Context; every Point, Expression
// and Function recorded against the Problem must originate from it.
//
// Typical lifecycle:
//
//	p := pep.NewProblem()
//	cls, _ := function.NewSmoothStronglyConvex(0, L)
//	f, _ := p.DeclareFunction(cls)
//	xs := f.StationaryPoint()
//	x0 := p.SetInitialPoint()
//	p.SetInitialCondition(x0.Sub(xs).NormSq().LessEqualConst(1))
//	... algorithm steps ...
//	p.SetPerformanceMetric(metric)
//	tau, err := p.Solve()
type Problem struct {
	ctx  *core.Context
	opts Options

	functions []*function.Function

	initConds   []core.Constraint
	constraints []core.Constraint
	psdCons     []core.PSDConstraint
	metrics     []*core.Expression

	// interpCounts[i] is the number of interpolation constraints emitted for
	// functions[i] during Solve, retained for reporting.
	interpCounts []int

	state *solvedState
}

// solvedState holds the numeric outcome of a successful Solve.
type solvedState struct {
	tau      float64
	scalars  []float64
	gram     [][]float64 // PSD-projected, symmetric, BasisCount sized
	psdShift float64     // Frobenius correction applied by the projection
	duals    []float64
	factor   [][]float64 // lazy G = Rᵀ·R factor for point reconstruction
	program  programLayout
}

// NewProblem creates an empty Problem with a fresh symbolic Context.
func NewProblem(opts ...Option) *Problem {
	return &Problem{
		ctx:  core.NewContext(),
		opts: gatherOptions(opts...),
	}
}

// Context exposes the Problem's symbolic context, mainly so client code can
// build auxiliary expressions (core.Constant, core.NewScalarUnknown) without
// threading the context separately.
func (p *Problem) Context() *core.Context { return p.ctx }

// DeclareFunction registers a fresh leaf function of the given class.
// All oracle queries made on the returned Function (and on combinations
// built from it) contribute interpolation constraints at Solve time.
func (p *Problem) DeclareFunction(cls function.Class) (*function.Function, error) {
	if cls == nil {
		return nil, ErrNilFunction
	}
	f, err := function.New(p.ctx, cls)
	if err != nil {
		return nil, err
	}
	p.functions = append(p.functions, f)
	return f, nil
}

// SetInitialPoint mints a fresh basis generator and returns it as the
// algorithm's starting iterate.
func (p *Problem) SetInitialPoint() *core.Point {
	return core.NewBasisPoint(p.ctx)
}

// SetInitialCondition records a constraint on the starting state, typically
// a bound such as ||x0-xs||^2 <= R^2. Initial conditions participate in the
// SDP identically to AddConstraint; they are tracked separately only for
// reporting.
func (p *Problem) SetInitialCondition(c core.Constraint) {
	p.checkConstraint(c)
	p.initConds = append(p.initConds, c)
}

// AddConstraint records an arbitrary scalar constraint. It satisfies
// steps.Recorder, so a *Problem can be passed directly to primitive steps.
func (p *Problem) AddConstraint(c core.Constraint) {
	p.checkConstraint(c)
	p.constraints = append(p.constraints, c)
}

// AddPSDConstraint requires the matrix of expressions to be positive
// semidefinite at the solution, as an extra semidefinite block.
func (p *Problem) AddPSDConstraint(c core.PSDConstraint) {
	if c.Dim() == 0 {
		panic(panicEmptyCon)
	}
	for i := 0; i < c.Dim(); i++ {
		for j := 0; j < c.Dim(); j++ {
			p.checkExpr(c.At(i, j))
		}
	}
	p.psdCons = append(p.psdCons, c)
}

// SetPerformanceMetric declares the quantity whose worst case is sought.
// Calling it repeatedly accumulates metrics; the solved value is then the
// worst case of the MINIMUM over all declared metrics.
func (p *Problem) SetPerformanceMetric(e *core.Expression) {
	p.checkExpr(e)
	p.metrics = append(p.metrics, e)
}

// GramDimension reports the number of basis generators minted so far, i.e.
// the side of the Gram matrix the SDP will carry.
func (p *Problem) GramDimension() int { return p.ctx.BasisCount() }

// ScalarCount reports the number of scalar unknowns minted so far.
func (p *Problem) ScalarCount() int { return p.ctx.ScalarCount() }

// MetricCount reports how many performance metrics are declared.
func (p *Problem) MetricCount() int { return len(p.metrics) }

// InterpolationCounts returns, after Solve, the number of interpolation
// constraints emitted per declared function, in declaration order.
func (p *Problem) InterpolationCounts() []int {
	out := make([]int, len(p.interpCounts))
	copy(out, p.interpCounts)
	return out
}

func (p *Problem) checkConstraint(c core.Constraint) {
	if c.Expression() == nil {
		panic(panicEmptyCon)
	}
	p.checkExpr(c.Expression())
}

func (p *Problem) checkExpr(e *core.Expression) {
	if e == nil {
		panic(panicNilExpr)
	}
	if e.Context() != p.ctx {
		panic(panicMixedProblem)
	}
}
