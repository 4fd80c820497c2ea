// Package core_test contains unit tests for the symbolic Expression algebra
// and Constraint construction.
package core_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/pepkit/core"
)

// TestScalarUnknownsAreDistinct ensures every NewScalarUnknown consumes a
// fresh index.
func TestScalarUnknownsAreDistinct(t *testing.T) {
	ctx := core.NewContext()
	f := core.NewScalarUnknown(ctx)
	g := core.NewScalarUnknown(ctx)
	require.Equal(t, 2, ctx.ScalarCount()) // two unknowns minted

	sum := f.Add(g)
	require.Len(t, sum.Linear(), 2) // both unknowns present with coeff 1
	for _, v := range sum.Linear() {
		require.InDelta(t, 1.0, v, 0)
	}
}

// TestExpressionArithmetic verifies Add/Sub/Scale/AddConstant compose exactly
// and cancel exactly.
func TestExpressionArithmetic(t *testing.T) {
	ctx := core.NewContext()
	f := core.NewScalarUnknown(ctx)
	g := core.NewScalarUnknown(ctx)

	e := f.Scale(2).Sub(g).AddConstant(1.5) // 2f - g + 1.5
	require.InDelta(t, 1.5, e.ConstantTerm(), 0)

	cancelled := e.Sub(e) // exact zero
	require.Empty(t, cancelled.Linear())
	require.Empty(t, cancelled.Gram())
	require.InDelta(t, 0.0, cancelled.ConstantTerm(), 0)

	// Operand untouched by composition.
	require.InDelta(t, 1.5, e.ConstantTerm(), 0)
	require.Len(t, e.Linear(), 2)
}

// TestMixedTermsCombine checks that linear and bilinear parts ride together
// through arithmetic: value difference plus squared distance.
func TestMixedTermsCombine(t *testing.T) {
	ctx := core.NewContext()
	x := core.NewBasisPoint(ctx)
	y := core.NewBasisPoint(ctx)
	fx := core.NewScalarUnknown(ctx)
	fy := core.NewScalarUnknown(ctx)

	e := fx.Sub(fy).Add(x.Sub(y).NormSq().Scale(0.5)) // fx - fy + ||x-y||²/2
	require.Len(t, e.Linear(), 2)
	require.Len(t, e.Gram(), 3) // G00, G01, G11
	require.InDelta(t, 0.5, e.Gram()[core.GramKey{I: 0, J: 0}], 0)
	require.InDelta(t, -1.0, e.Gram()[core.GramKey{I: 0, J: 1}], 0)
}

// TestComparisonsNormalize ensures ≤/≥/== produce the documented relations
// without registering anything.
func TestComparisonsNormalize(t *testing.T) {
	ctx := core.NewContext()
	f := core.NewScalarUnknown(ctx)

	le := f.LessEqualConst(1)
	require.Equal(t, core.RelationLE, le.Relation())
	require.InDelta(t, -1.0, le.Expression().ConstantTerm(), 0) // f - 1 ≤ 0

	ge := f.GreaterEqualConst(2) // normalized to 2 - f ≤ 0
	require.Equal(t, core.RelationLE, ge.Relation())
	require.InDelta(t, 2.0, ge.Expression().ConstantTerm(), 0)
	for _, v := range ge.Expression().Linear() {
		require.InDelta(t, -1.0, v, 0)
	}

	eq := f.EqualConst(3)
	require.Equal(t, core.RelationEQ, eq.Relation())
}

// TestPSDConstraintValidation covers shape rejection and symmetrization.
func TestPSDConstraintValidation(t *testing.T) {
	ctx := core.NewContext()
	a := core.NewScalarUnknown(ctx)
	b := core.NewScalarUnknown(ctx)

	_, err := core.NewPSDConstraint([][]*core.Expression{{a, b}})
	require.ErrorIs(t, err, core.ErrNotSymmetricPSD) // ragged 1x2 rejected

	_, err = core.NewPSDConstraint([][]*core.Expression{{a, nil}, {nil, b}})
	require.ErrorIs(t, err, core.ErrNilExpression)

	c, err := core.NewPSDConstraint([][]*core.Expression{{a, b}, {core.Constant(ctx, 0), a}})
	require.NoError(t, err)
	require.Equal(t, 2, c.Dim())
	require.Same(t, c.At(0, 1), c.At(1, 0)) // upper triangle wins
}
