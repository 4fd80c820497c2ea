package sdp

import (
	"fmt"

	"github.com/hrautila/cvx"
	"github.com/hrautila/cvx/sets"
	"github.com/hrautila/matrix"
)

// Default dispatch parameters applied when Options fields are zero.
const (
	// DefaultMaxIters bounds interior-point iterations per dispatch.
	DefaultMaxIters = 100
)

// ConeSolver lowers a Program onto the cone linear program solved by
// github.com/hrautila/cvx: scalar inequality rows populate the nonnegative
// "l" cone, each PSD block becomes one "s" cone of squared dimension, and
// equality rows ride through (A, b). The zero value is ready to use.
type ConeSolver struct{}

// Solve implements Solver.
//
// Implementation:
//   - Stage 1: Validate the program (fail fast, ErrBadProgram).
//   - Stage 2: Lower to (c, G, h, A, b, dims) in cvx column conventions.
//   - Stage 3: Dispatch cvx.ConeLp and translate status, primal and duals.
//
// The objective value is recomputed as C·x from the returned primal rather
// than trusted from the solver report, so the round-trip property holds
// independently of solver-internal scaling.
func (ConeSolver) Solve(p *Program, opts Options) (*Solution, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c, g, h, a, b, dims, err := buildConeData(p)
	if err != nil {
		return nil, err
	}

	var solopts cvx.SolverOptions
	solopts.MaxIter = opts.MaxIters
	if solopts.MaxIter <= 0 {
		solopts.MaxIter = DefaultMaxIters
	}
	solopts.ShowProgress = opts.Verbose
	if opts.FeasTol > 0 {
		solopts.FeasTol = opts.FeasTol
	}

	sol, err := cvx.ConeLp(c, g, h, a, b, dims, &solopts, nil, nil)
	if err != nil {
		return &Solution{Status: StatusError}, nil
	}

	out := &Solution{Status: statusOf(sol.Status)}
	if out.Status == StatusOptimal {
		out.X = sol.Result.At("x")[0].FloatArray()
		out.Objective = dot(p.C, out.X)
		z := sol.Result.At("z")[0].FloatArray()
		if len(z) >= len(p.Ineqs) {
			out.IneqDuals = append([]float64(nil), z[:len(p.Ineqs)]...)
		}
		if len(p.Eqs) > 0 {
			out.EqDuals = sol.Result.At("y")[0].FloatArray()
		}
	}

	return out, nil
}

// statusOf maps cvx status codes onto the Solver contract.
func statusOf(s cvx.StatusCode) Status {
	switch s {
	case cvx.Optimal:
		return StatusOptimal
	case cvx.PrimalInfeasible:
		return StatusInfeasible
	case cvx.DualInfeasible:
		return StatusUnbounded
	default:
		return StatusError
	}
}

// buildConeData lowers p onto cvx cone-LP data. Cone row layout: the l-cone
// rows first (one per scalar inequality, coeffs·x ≤ -Const), then one
// s-cone block per PSDBlock with its full dim² entries column-major, where
// s = h - G·x must reproduce the affine block matrix.
func buildConeData(p *Program) (c, g, h, a, b *matrix.FloatMatrix, dims *sets.DimensionSet, err error) {
	coneRows := len(p.Ineqs)
	blockDims := make([]int, 0, len(p.Blocks))
	for _, blk := range p.Blocks {
		coneRows += blk.Dim * blk.Dim
		blockDims = append(blockDims, blk.Dim)
	}
	if coneRows == 0 {
		return nil, nil, nil, nil, nil, nil, fmt.Errorf("%w: no conic rows", ErrBadProgram)
	}

	gRows := make([][]float64, 0, coneRows)
	hData := make([]float64, 0, coneRows)

	// l-cone: coeffs·x + const ≤ 0  ⇔  coeffs·x ≤ -const.
	for _, f := range p.Ineqs {
		gRows = append(gRows, denseRow(f.Coeffs, p.NumVars))
		hData = append(hData, -f.Const)
	}

	// s-cones: s = h - G·x must equal the affine matrix entrywise, so every
	// coefficient flips sign and constants land in h.
	for _, blk := range p.Blocks {
		for j := 0; j < blk.Dim; j++ { // column-major block scan
			for i := 0; i < blk.Dim; i++ {
				f := blk.Entry[minInt(i, j)][maxInt(i, j)] // upper triangle holds the data
				row := denseRow(f.Coeffs, p.NumVars)
				for k := range row {
					row[k] = -row[k]
				}
				gRows = append(gRows, row)
				hData = append(hData, f.Const)
			}
		}
	}

	c = matrix.FloatVector(p.C)
	g = matrix.FloatMatrixFromTable(gRows, matrix.RowOrder)
	h = matrix.FloatVector(hData)

	if len(p.Eqs) > 0 {
		aRows := make([][]float64, 0, len(p.Eqs))
		bData := make([]float64, 0, len(p.Eqs))
		for _, f := range p.Eqs {
			aRows = append(aRows, denseRow(f.Coeffs, p.NumVars))
			bData = append(bData, -f.Const)
		}
		a = matrix.FloatMatrixFromTable(aRows, matrix.RowOrder)
		b = matrix.FloatVector(bData)
	}

	dims = sets.NewDimensionSet("l", "q", "s")
	dims.Set("l", []int{len(p.Ineqs)})
	if len(blockDims) > 0 {
		dims.Set("s", blockDims)
	}

	return c, g, h, a, b, dims, nil
}

// denseRow expands a sparse coefficient map into a dense row of width n.
func denseRow(coeffs map[int]float64, n int) []float64 {
	row := make([]float64, n)
	for i, v := range coeffs {
		row[i] = v
	}

	return row
}

// dot is the plain inner product of equal-length slices.
func dot(a, b []float64) float64 {
	var s float64
	for i := range a {
		s += a[i] * b[i]
	}

	return s
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
