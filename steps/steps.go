package steps

import (
	"errors"
	"math"

	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/function"
)

var (
	// ErrNilArgument indicates a nil point, function or recorder argument.
	ErrNilArgument = errors.New("steps: nil argument")

	// ErrStepSize indicates a step size that is not a positive finite number.
	ErrStepSize = errors.New("steps: step size must be positive and finite")
)

// Recorder registers consistency constraints produced by primitive steps.
// pep.Problem satisfies it.
type Recorder interface {
	AddConstraint(c core.Constraint)
}

// ProximalStep records x = prox_{gamma·f}(x0), i.e. the minimizer of
// f(u) + ||u - x0||²/(2·gamma). The optimality condition makes the step
// implicit: x is a fresh basis point, g is f's (sub)gradient recorded at x,
// and one equality constraint pins g to the step formula
//
//	g = (x0 - x)/gamma,
//
// encoded as ||x0 - x - gamma·g||² == 0. Returns the new point, the
// recorded gradient, and the recorded value, so callers can chain steps or
// build performance metrics from them.
// Side effects: one basis generator for x, one for g, one scalar unknown for
// the value, one triple on f, one equality on rec.
func ProximalStep(rec Recorder, x0 *core.Point, f *function.Function, gamma float64) (*core.Point, *core.Point, *core.Expression, error) {
	if rec == nil || x0 == nil || f == nil {
		return nil, nil, nil, ErrNilArgument
	}
	if err := checkStep(gamma); err != nil {
		return nil, nil, nil, err
	}

	ctx := f.Context()
	x := core.NewBasisPoint(ctx)
	g := core.NewBasisPoint(ctx)
	fx := core.NewScalarUnknown(ctx)
	if err := f.AddPoint(x, g, fx); err != nil {
		return nil, nil, nil, err
	}

	residual := x0.Sub(x).Sub(g.Scale(gamma))
	rec.AddConstraint(residual.NormSq().EqualConst(0))

	return x, g, fx, nil
}

// BregmanGradientStep records one mirror-descent step: given the gradient gx
// of the objective and the mirror-map gradient gh at the current point, the
// new point x satisfies
//
//	∇h(x) = gh - gamma·gx.
//
// x is a fresh basis point, ghNew is h's gradient recorded at x, and one
// equality constraint ||ghNew - (gh - gamma·gx)||² == 0 pins it to the
// formula. Returns the new point, the new mirror-map gradient, and the
// recorded mirror-map value.
func BregmanGradientStep(rec Recorder, gx, gh *core.Point, h *function.Function, gamma float64) (*core.Point, *core.Point, *core.Expression, error) {
	if rec == nil || gx == nil || gh == nil || h == nil {
		return nil, nil, nil, ErrNilArgument
	}
	if err := checkStep(gamma); err != nil {
		return nil, nil, nil, err
	}

	ctx := h.Context()
	x := core.NewBasisPoint(ctx)
	ghNew := core.NewBasisPoint(ctx)
	hx := core.NewScalarUnknown(ctx)
	if err := h.AddPoint(x, ghNew, hx); err != nil {
		return nil, nil, nil, err
	}

	residual := ghNew.Sub(gh.Sub(gx.Scale(gamma)))
	rec.AddConstraint(residual.NormSq().EqualConst(0))

	return x, ghNew, hx, nil
}

// checkStep validates a step size.
func checkStep(gamma float64) error {
	if gamma <= 0 || math.IsNaN(gamma) || math.IsInf(gamma, 0) {
		return ErrStepSize
	}

	return nil
}
