package pep

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/pepkit/sdp"
)

// Dimension-reduction defaults. The heuristic re-solves the already-solved
// program with a trace-penalty objective on the small-eigenvalue subspace of
// the Gram matrix, while pinning the worst-case value within a slack of the
// accepted bound.
const (
	DefaultTargetRank        = 1
	DefaultMaxReductionSteps = 3
	// DefaultEigenCutoff is relative to the largest eigenvalue: eigenvalues
	// below cutoff·λmax are treated as numerically zero when counting rank.
	DefaultEigenCutoff = 1e-5
	// DefaultObjectiveSlack is how far below the accepted bound the pinned
	// metric may drift during the re-solves.
	DefaultObjectiveSlack = 1e-4
)

type witnessOptions struct {
	targetRank int
	maxSteps   int
	cutoff     float64
	slack      float64
}

// WitnessOption tunes ReduceDimension.
type WitnessOption func(*witnessOptions)

// WithTargetRank stops the search once the Gram rank reaches r.
func WithTargetRank(r int) WitnessOption {
	return func(o *witnessOptions) {
		if r > 0 {
			o.targetRank = r
		}
	}
}

// WithMaxReductionSteps bounds the number of penalty re-solves.
func WithMaxReductionSteps(n int) WitnessOption {
	return func(o *witnessOptions) {
		if n > 0 {
			o.maxSteps = n
		}
	}
}

// WithEigenCutoff overrides DefaultEigenCutoff.
func WithEigenCutoff(c float64) WitnessOption {
	return func(o *witnessOptions) {
		if c > 0 {
			o.cutoff = c
		}
	}
}

// WithObjectiveSlack overrides DefaultObjectiveSlack.
func WithObjectiveSlack(s float64) WitnessOption {
	return func(o *witnessOptions) {
		if s > 0 {
			o.slack = s
		}
	}
}

// WitnessReport describes the outcome of a dimension-reduction search.
type WitnessReport struct {
	// Objective is the metric value realized by the reduced witness. It is
	// at least the accepted bound minus the configured slack.
	Objective float64
	// Rank is the number of Gram eigenvalues above the cutoff.
	Rank int
	// Steps is how many penalty re-solves produced an accepted witness;
	// a rejected or failed re-solve does not count.
	Steps int
	// Eigenvalues is the final Gram spectrum, sorted descending.
	Eigenvalues []float64
}

// ReduceDimension searches for a low-rank worst-case certificate after a
// successful Solve. Each step minimizes the trace of the Gram matrix
// restricted to its current small-eigenvalue subspace, subject to the
// original constraint set plus a floor keeping the metric within slack of
// the accepted bound. When a re-solve lowers the rank, the Problem's
// realized state (Gram matrix, scalar values, reconstructed points) is
// replaced by the reduced witness; the accepted bound itself never changes.
//
// The search stops at the target rank, when a re-solve stops helping, or
// when the step budget runs out — whichever comes first.
func (p *Problem) ReduceDimension(opts ...WitnessOption) (*WitnessReport, error) {
	if p.state == nil {
		return nil, ErrNotSolved
	}
	o := witnessOptions{
		targetRank: DefaultTargetRank,
		maxSteps:   DefaultMaxReductionSteps,
		cutoff:     DefaultEigenCutoff,
		slack:      DefaultObjectiveSlack,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	pl := p.state.program
	d := pl.gramDim
	if d == 0 {
		return &WitnessReport{Objective: p.state.tau}, nil
	}

	// Pin the metric near the accepted bound: τ - slack - t <= 0.
	base := pl.prog.Clone()
	base.Ineqs = append(base.Ineqs, sdp.LinForm{
		Coeffs: map[int]float64{pl.tIndex(): -1},
		Const:  p.state.tau - o.slack,
	})

	rank, spectrum, err := p.gramRank(p.state.gram, o.cutoff)
	if err != nil {
		return nil, err
	}
	report := &WitnessReport{Objective: p.state.tau, Rank: rank, Eigenvalues: spectrum}

	for step := 1; step <= o.maxSteps && report.Rank > o.targetRank; step++ {
		weights, werr := smallSubspaceProjector(p.state.gram, o.cutoff)
		if werr != nil {
			return nil, werr
		}

		prog := base.Clone()
		prog.C = make([]float64, prog.NumVars)
		for i := 0; i < d; i++ {
			prog.C[pl.gramIndex(i, i)] += weights[i][i]
			for j := i + 1; j < d; j++ {
				prog.C[pl.gramIndex(i, j)] += 2 * weights[i][j]
			}
		}

		sol, serr := p.opts.solver.Solve(prog, sdp.Options{
			MaxIters: p.opts.maxIters,
			Verbose:  p.opts.verbosity >= 2,
			FeasTol:  p.opts.feasTol,
		})
		if serr != nil || sol == nil || sol.Status != sdp.StatusOptimal || len(sol.X) < pl.numVars() {
			p.logf("dimension reduction stalled", "step", step)
			break
		}

		raw := mat.NewSymDense(d, nil)
		for i := 0; i < d; i++ {
			for j := i; j < d; j++ {
				raw.SetSym(i, j, sol.X[pl.gramIndex(i, j)])
			}
		}
		proj, _, perr := sdp.NearestPSD(raw)
		if perr != nil {
			return nil, fmt.Errorf("%w: %v", ErrSolver, perr)
		}
		gram := make([][]float64, d)
		for i := 0; i < d; i++ {
			gram[i] = make([]float64, d)
			for j := 0; j < d; j++ {
				gram[i][j] = proj.At(i, j)
			}
		}

		rank, spectrum, err = p.gramRank(gram, o.cutoff)
		if err != nil {
			return nil, err
		}
		if rank > report.Rank {
			p.logf("dimension reduction step rejected", "step", step, "rank", rank)
			break
		}

		// Adopt the reduced witness as the realized state.
		report.Steps++
		p.state.gram = gram
		p.state.scalars = append([]float64(nil), sol.X[:pl.scalars]...)
		p.state.factor = nil
		report.Rank = rank
		report.Eigenvalues = spectrum
		report.Objective = sol.X[pl.tIndex()]
		p.logf("dimension reduction step accepted",
			"step", step, "rank", rank, "metric", report.Objective)
	}
	return report, nil
}

func (p *Problem) gramRank(gram [][]float64, cutoff float64) (int, []float64, error) {
	sym := toSym(gram)
	_, spectrum, err := sdp.CountEigenAbove(sym, 0)
	if err != nil {
		return 0, nil, fmt.Errorf("%w: %v", ErrSolver, err)
	}
	cut := cutoff * scaleOf(spectrum)
	rank := 0
	for _, v := range spectrum {
		if v > cut {
			rank++
		}
	}
	return rank, spectrum, nil
}

// smallSubspaceProjector builds the orthogonal projector onto the span of
// the eigenvectors whose eigenvalues fall at or below the relative cutoff.
func smallSubspaceProjector(gram [][]float64, cutoff float64) ([][]float64, error) {
	d := len(gram)
	var eig mat.EigenSym
	if !eig.Factorize(toSym(gram), true) {
		return nil, fmt.Errorf("%w: %v", ErrSolver, sdp.ErrEigenFailed)
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	cut := cutoff * scaleOf(vals)
	w := make([][]float64, d)
	for i := range w {
		w[i] = make([]float64, d)
	}
	for k := 0; k < d; k++ {
		if vals[k] > cut {
			continue
		}
		for i := 0; i < d; i++ {
			for j := 0; j < d; j++ {
				w[i][j] += vecs.At(i, k) * vecs.At(j, k)
			}
		}
	}
	return w, nil
}

func toSym(gram [][]float64) *mat.SymDense {
	d := len(gram)
	sym := mat.NewSymDense(d, nil)
	for i := 0; i < d; i++ {
		for j := i; j < d; j++ {
			sym.SetSym(i, j, gram[i][j])
		}
	}
	return sym
}

// scaleOf anchors the relative cutoff: the largest eigenvalue, floored at
// one so a near-zero matrix still gets a sane absolute threshold.
func scaleOf(vals []float64) float64 {
	s := 1.0
	for _, v := range vals {
		if v > s {
			s = v
		}
	}
	return s
}
