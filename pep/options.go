package pep

import (
	"log/slog"

	"github.com/katalvlaran/pepkit/sdp"
)

// Tunable defaults. Every knob has a functional option below; zero
// configuration yields a silent solve with the built-in cone solver.
const (
	// DefaultVerbosity emits nothing. Level 1 logs assembly and solve
	// progress, level 2 additionally lets the solver print iterations.
	DefaultVerbosity = 0

	// DefaultPSDTolerance caps the acceptable Frobenius correction when
	// projecting the solved Gram matrix back onto the PSD cone. Larger
	// corrections are logged as warnings, never silently dropped.
	DefaultPSDTolerance = 1e-6

	// DefaultSolverMaxIters bounds interior-point iterations.
	DefaultSolverMaxIters = sdp.DefaultMaxIters
)

// Options carries per-Problem configuration gathered from Option values.
type Options struct {
	solver       sdp.Solver
	logger       *slog.Logger
	verbosity    int
	psdTolerance float64
	feasTol      float64
	maxIters     int
}

// Option mutates Options during NewProblem.
type Option func(*Options)

// WithSolver replaces the default cone solver. Nil is ignored.
func WithSolver(s sdp.Solver) Option {
	return func(o *Options) {
		if s != nil {
			o.solver = s
		}
	}
}

// WithLogger routes progress output to l instead of slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVerbosity sets the progress level: 0 silent, 1 assembly and solve
// summary, 2 additionally solver iteration output.
func WithVerbosity(v int) Option {
	return func(o *Options) {
		if v > 0 {
			o.verbosity = v
		}
	}
}

// WithPSDTolerance overrides DefaultPSDTolerance. Non-positive is ignored.
func WithPSDTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.psdTolerance = tol
		}
	}
}

// WithFeasTolerance tightens or loosens the solver feasibility tolerance.
// Zero keeps the solver's own default.
func WithFeasTolerance(tol float64) Option {
	return func(o *Options) {
		if tol > 0 {
			o.feasTol = tol
		}
	}
}

// WithSolverMaxIters overrides DefaultSolverMaxIters. Non-positive is ignored.
func WithSolverMaxIters(n int) Option {
	return func(o *Options) {
		if n > 0 {
			o.maxIters = n
		}
	}
}

func gatherOptions(opts ...Option) Options {
	o := Options{
		solver:       sdp.ConeSolver{},
		logger:       slog.Default(),
		verbosity:    DefaultVerbosity,
		psdTolerance: DefaultPSDTolerance,
		maxIters:     DefaultSolverMaxIters,
	}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
