// Package steps_test contains unit tests for the primitive composite steps.
package steps_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/function"
	"github.com/katalvlaran/pepkit/steps"
)

// recorder collects registered constraints for inspection.
type recorder struct{ cons []core.Constraint }

func (r *recorder) AddConstraint(c core.Constraint) { r.cons = append(r.cons, c) }

// TestProximalStepSideEffects verifies the documented bookkeeping: one fresh
// point, one recorded triple and exactly one equality constraint.
func TestProximalStepSideEffects(t *testing.T) {
	ctx := core.NewContext()
	cls, err := function.NewConvexIndicator(2)
	require.NoError(t, err)
	ind, err := function.New(ctx, cls)
	require.NoError(t, err)
	rec := &recorder{}

	x0 := core.NewBasisPoint(ctx)
	basisBefore := ctx.BasisCount()

	x, g, fx, err := steps.ProximalStep(rec, x0, ind, 1)
	require.NoError(t, err)
	require.NotNil(t, fx)
	require.Equal(t, basisBefore+2, ctx.BasisCount()) // x and g only
	require.Len(t, ind.Triples(), 1)                  // triple recorded on f
	require.Len(t, rec.cons, 1)                       // exactly one equality
	require.Equal(t, core.RelationEQ, rec.cons[0].Relation())

	// The equality is ||x0 - x - gamma·g||² == 0: purely bilinear.
	e := rec.cons[0].Expression()
	require.Empty(t, e.Linear())
	require.NotEmpty(t, e.Gram())

	// The oracle at x now answers with the recorded pair.
	require.Same(t, g, ind.Gradient(x))
}

// TestBregmanGradientStepSideEffects mirrors the proximal checks for the
// mirror-descent primitive.
func TestBregmanGradientStepSideEffects(t *testing.T) {
	ctx := core.NewContext()
	h, err := function.New(ctx, function.NewConvex())
	require.NoError(t, err)
	obj, err := function.New(ctx, function.NewConvex())
	require.NoError(t, err)
	rec := &recorder{}

	x0 := core.NewBasisPoint(ctx)
	gx := obj.Gradient(x0)
	gh := h.Gradient(x0)

	x, ghNew, hx, err := steps.BregmanGradientStep(rec, gx, gh, h, 0.5)
	require.NoError(t, err)
	require.NotNil(t, hx)
	require.Len(t, rec.cons, 1)
	require.Equal(t, core.RelationEQ, rec.cons[0].Relation())
	require.Len(t, h.Triples(), 2) // x0 and the new point

	require.Same(t, ghNew, h.Gradient(x))
}

// TestStepArgumentValidation covers nil arguments and bad step sizes.
func TestStepArgumentValidation(t *testing.T) {
	ctx := core.NewContext()
	f, err := function.New(ctx, function.NewConvex())
	require.NoError(t, err)
	rec := &recorder{}
	x0 := core.NewBasisPoint(ctx)

	_, _, _, err = steps.ProximalStep(nil, x0, f, 1)
	require.ErrorIs(t, err, steps.ErrNilArgument)
	_, _, _, err = steps.ProximalStep(rec, nil, f, 1)
	require.ErrorIs(t, err, steps.ErrNilArgument)
	_, _, _, err = steps.ProximalStep(rec, x0, f, 0)
	require.ErrorIs(t, err, steps.ErrStepSize)
	_, _, _, err = steps.ProximalStep(rec, x0, f, -3)
	require.ErrorIs(t, err, steps.ErrStepSize)

	_, _, _, err = steps.BregmanGradientStep(rec, x0, nil, f, 1)
	require.ErrorIs(t, err, steps.ErrNilArgument)
}
