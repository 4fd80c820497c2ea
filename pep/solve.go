package pep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/sdp"
)

// Solve freezes the symbolic trajectory, emits interpolation constraints for
// every declared function, lowers everything into one standard-form SDP,
// dispatches the configured solver and stores the realized numeric state.
//
// Implementation stages:
//  1. Freeze the Context — any later symbol creation is a programming error.
//  2. Per declared function, collect interpolation constraints over its
//     recorded oracle triples.
//  3. Assemble the program (see programLayout) and dispatch the solver.
//  4. Project the returned Gram matrix onto the PSD cone; corrections above
//     the configured tolerance are logged as warnings.
//
// Solve is one-shot: a second call returns ErrAlreadySolved. The returned
// value τ is the worst case of the minimum over all declared metrics.
func (p *Problem) Solve() (float64, error) {
	if p.state != nil {
		return 0, ErrAlreadySolved
	}
	if len(p.metrics) == 0 {
		return 0, ErrNoMetric
	}
	p.ctx.Freeze()

	var interp []core.Constraint
	p.interpCounts = make([]int, len(p.functions))
	for i, f := range p.functions {
		cons := f.Class().Interpolation(f.Triples())
		p.interpCounts[i] = len(cons)
		interp = append(interp, cons...)
		p.logf("interpolation constraints added",
			"class", f.Class().Name(), "points", len(f.Triples()), "constraints", len(cons))
	}

	pl := p.assemble(interp)
	p.logf("problem assembled",
		"gram_dim", pl.gramDim, "scalars", pl.scalars,
		"inequalities", len(pl.prog.Ineqs), "equalities", len(pl.prog.Eqs),
		"initial_conditions", len(p.initConds), "metrics", len(p.metrics))

	sol, err := p.opts.solver.Solve(pl.prog, sdp.Options{
		MaxIters: p.opts.maxIters,
		Verbose:  p.opts.verbosity >= 2,
		FeasTol:  p.opts.feasTol,
	})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSolver, err)
	}
	if sol == nil {
		return 0, fmt.Errorf("%w: solver returned no solution", ErrSolver)
	}
	switch sol.Status {
	case sdp.StatusOptimal:
	case sdp.StatusInfeasible:
		return 0, ErrInfeasible
	case sdp.StatusUnbounded:
		return 0, ErrUnbounded
	default:
		return 0, fmt.Errorf("%w: solver status %s", ErrSolver, sol.Status)
	}

	if len(sol.X) < pl.numVars() {
		return 0, fmt.Errorf("%w: truncated solution vector (%d of %d)", ErrSolver, len(sol.X), pl.numVars())
	}

	st := &solvedState{program: pl}
	st.tau = sol.X[pl.tIndex()]
	st.scalars = append([]float64(nil), sol.X[:pl.scalars]...)
	st.duals = append([]float64(nil), sol.IneqDuals...)

	st.gram = make([][]float64, pl.gramDim)
	if pl.gramDim > 0 {
		raw := mat.NewSymDense(pl.gramDim, nil)
		for i := 0; i < pl.gramDim; i++ {
			for j := i; j < pl.gramDim; j++ {
				raw.SetSym(i, j, sol.X[pl.gramIndex(i, j)])
			}
		}
		proj, shift, perr := sdp.NearestPSD(raw)
		if perr != nil {
			return 0, fmt.Errorf("%w: %v", ErrSolver, perr)
		}
		st.psdShift = shift
		for i := 0; i < pl.gramDim; i++ {
			st.gram[i] = make([]float64, pl.gramDim)
			for j := 0; j < pl.gramDim; j++ {
				st.gram[i][j] = proj.At(i, j)
			}
		}
		if shift > p.opts.psdTolerance {
			p.warnf("gram projection exceeded tolerance",
				"correction", shift, "tolerance", p.opts.psdTolerance)
		} else {
			p.logf("gram matrix projected onto PSD cone", "correction", shift)
		}
	}

	p.state = st
	p.logf("solve finished", "status", sol.Status.String(), "worst_case", st.tau)
	return st.tau, nil
}

func (p *Problem) logf(msg string, args ...any) {
	if p.opts.verbosity >= 1 {
		p.opts.logger.Info(msg, args...)
	}
}

func (p *Problem) warnf(msg string, args ...any) {
	if p.opts.verbosity >= 1 {
		p.opts.logger.Warn(msg, args...)
	}
}
