package function

import "github.com/katalvlaran/pepkit/core"

// Stable panic messages for programmer errors.
const (
	panicNilPoint     = "function: nil point"
	panicMixedProblem = "function: point belongs to a different Problem"
)

// Function is a polymorphic function/operator entity. A leaf carries a Class
// and records oracle triples; a combination carries a flat leaf→weight
// decomposition and delegates every oracle call to its leaves. Flatness is
// what makes combination associative: (f1+f2)+f3 and f1+(f2+f3) decompose
// into the identical leaf map, so both emit the identical constraint set.
type Function struct {
	ctx   *core.Context
	class Class // non-nil iff leaf

	// combination state (leaves == nil iff leaf)
	leaves map[*Function]float64
	order  []*Function // first-occurrence leaf order, kept for determinism

	triples []Triple       // recorded oracle answers, in call order (leaves)
	cache   map[int]Triple // point identity → answer (idempotent look-up)
}

// New creates a leaf Function of the given class, validating its parameters
// immediately (class-parameter violations are never deferred to solve time).
// Complexity: O(1) beyond Validate.
func New(ctx *core.Context, cls Class) (*Function, error) {
	if cls == nil {
		return nil, ErrNilClass
	}
	if err := cls.Validate(); err != nil {
		return nil, err
	}

	return &Function{ctx: ctx, class: cls, cache: map[int]Triple{}}, nil
}

// IsLeaf reports whether fn carries its own class (true) or is a linear
// combination of leaves (false).
func (fn *Function) IsLeaf() bool { return fn.class != nil }

// Class returns the class policy of a leaf, nil for combinations.
func (fn *Function) Class() Class { return fn.class }

// Context returns the owning registry.
func (fn *Function) Context() *core.Context { return fn.ctx }

// Triples returns a copy of the recorded oracle triples, in call order.
// Only leaves accumulate triples; a combination's recorded answers live on
// its leaves.
// Complexity: O(k).
func (fn *Function) Triples() []Triple {
	out := make([]Triple, len(fn.triples))
	copy(out, fn.triples)

	return out
}

// Oracle returns the (sub)gradient and value of fn at x. The first query at
// a given Point mints a fresh gradient generator and value unknown (leaf) or
// aggregates the leaves' answers (combination); every later query at the
// same Point returns the cached pair. Idempotence is load-bearing:
// re-evaluating a point must not fabricate a second, unconstrained gradient.
// Panics on a nil Point or a Point from a different Problem.
// Complexity: O(1) on cache hit; one fresh generator + unknown on leaf miss.
func (fn *Function) Oracle(x *core.Point) (*core.Point, *core.Expression) {
	fn.guard(x)
	if t, ok := fn.cache[x.ID()]; ok {
		return t.G, t.F
	}
	if fn.IsLeaf() {
		g := core.NewBasisPoint(fn.ctx)
		f := core.NewScalarUnknown(fn.ctx)
		fn.record(x, g, f)

		return g, f
	}

	// Combination: delegate to every leaf at the same point (cached per leaf,
	// so shared leaves are never re-queried) and aggregate with weights.
	g := core.Zero(fn.ctx)
	f := core.Constant(fn.ctx, 0)
	for _, leaf := range fn.order {
		lg, lf := leaf.Oracle(x)
		w := fn.leaves[leaf]
		g = g.Add(lg.Scale(w))
		f = f.Add(lf.Scale(w))
	}
	fn.cache[x.ID()] = Triple{X: x, G: g, F: f}

	return g, f
}

// Gradient is the gradient component of Oracle.
func (fn *Function) Gradient(x *core.Point) *core.Point {
	g, _ := fn.Oracle(x)

	return g
}

// Value is the value component of Oracle.
func (fn *Function) Value(x *core.Point) *core.Expression {
	_, f := fn.Oracle(x)

	return f
}

// StationaryPoint declares a fresh Point at which fn's (sub)gradient or
// operator value is zero — the canonical reference solution x⋆ of bound
// statements. The zero gradient is recorded as a regular oracle triple, so
// interpolation constraints tie the rest of the trajectory to it.
func (fn *Function) StationaryPoint() *core.Point {
	x := core.NewBasisPoint(fn.ctx)
	// x is fresh, so AddPoint cannot collide.
	_ = fn.AddPoint(x, core.Zero(fn.ctx), core.NewScalarUnknown(fn.ctx))

	return x
}

// AddPoint forces the oracle answer of fn at x to be exactly (g, f), as if
// the oracle had been called and returned them. Primitive steps use this to
// record implicitly defined gradients (e.g. the proximal subgradient).
//
// On a combination the answer is distributed onto the leaves: every leaf
// still undetermined at x receives a fresh gradient/value, except the last,
// which receives the remainder — so the weighted sum over leaves equals
// (g, f) exactly and no leaf oracle call is duplicated. Returns
// ErrPointAlreadyRecorded when x is already determined (re-recording would
// discard the earlier answer) and ErrNilOperand on nil g or f.
// Complexity: O(#leaves).
func (fn *Function) AddPoint(x *core.Point, g *core.Point, f *core.Expression) error {
	fn.guard(x)
	if g == nil || f == nil {
		return ErrNilOperand
	}
	if _, ok := fn.cache[x.ID()]; ok {
		return ErrPointAlreadyRecorded
	}
	if fn.IsLeaf() {
		fn.record(x, g, f)

		return nil
	}

	// Leaves whose answer at x is still free.
	var free []*Function
	for _, leaf := range fn.order {
		if _, ok := leaf.cache[x.ID()]; !ok {
			free = append(free, leaf)
		}
	}
	if len(free) == 0 {
		// Every leaf already answered at x; the total is determined and
		// cannot be forced to something else.
		return ErrPointAlreadyRecorded
	}

	// Mint fresh answers for all free leaves but the last.
	for _, leaf := range free[:len(free)-1] {
		leaf.record(x, core.NewBasisPoint(fn.ctx), core.NewScalarUnknown(fn.ctx))
	}

	// The last free leaf absorbs the remainder.
	last := free[len(free)-1]
	gRem := g
	fRem := f
	for _, leaf := range fn.order {
		if leaf == last {
			continue
		}
		t := leaf.cache[x.ID()]
		w := fn.leaves[leaf]
		gRem = gRem.Sub(t.G.Scale(w))
		fRem = fRem.Sub(t.F.Scale(w))
	}
	wLast := fn.leaves[last]
	last.record(x, gRem.Scale(1/wLast), fRem.Scale(1/wLast))

	fn.cache[x.ID()] = Triple{X: x, G: g, F: f}

	return nil
}

// Add returns the derived Function fn + other. Leaf decompositions are
// merged flat; leaves appearing in both keep one entry with summed weight,
// and exactly cancelled leaves drop out.
func (fn *Function) Add(other *Function) (*Function, error) {
	if other == nil {
		return nil, ErrNilOperand
	}

	return combine(fn, other, 1, 1), nil
}

// Sub returns the derived Function fn - other.
func (fn *Function) Sub(other *Function) (*Function, error) {
	if other == nil {
		return nil, ErrNilOperand
	}

	return combine(fn, other, 1, -1), nil
}

// Scale returns the derived Function a·fn. Returns ErrZeroScale for a == 0:
// the zero-weighted combination would silently drop the operand.
func (fn *Function) Scale(a float64) (*Function, error) {
	if a == 0 {
		return nil, ErrZeroScale
	}

	return combine(fn, nil, a, 0), nil
}

// record appends a triple on a leaf and indexes it by point identity.
func (fn *Function) record(x *core.Point, g *core.Point, f *core.Expression) {
	t := Triple{X: x, G: g, F: f}
	fn.triples = append(fn.triples, t)
	fn.cache[x.ID()] = t
}

// guard rejects nil and foreign points before any cache access.
func (fn *Function) guard(x *core.Point) {
	if x == nil {
		panic(panicNilPoint)
	}
	if x.Context() != fn.ctx {
		panic(panicMixedProblem)
	}
}

// decomposition returns fn's flat leaf map and stable leaf order.
func (fn *Function) decomposition() (map[*Function]float64, []*Function) {
	if fn.IsLeaf() {
		return map[*Function]float64{fn: 1}, []*Function{fn}
	}

	return fn.leaves, fn.order
}

// combine builds wa·a + wb·b with a flat decomposition. b may be nil
// (pure scaling). Zero-weight leaves are removed so cancelled operands
// never resurface in oracle aggregation.
func combine(a, b *Function, wa, wb float64) *Function {
	leaves := make(map[*Function]float64)
	var order []*Function

	merge := func(f *Function, w float64) {
		if f == nil || w == 0 {
			return
		}
		dec, ord := f.decomposition()
		for _, leaf := range ord {
			if _, seen := leaves[leaf]; !seen {
				order = append(order, leaf)
			}
			leaves[leaf] += w * dec[leaf]
		}
	}
	merge(a, wa)
	merge(b, wb)

	// Drop exact cancellations, preserving first-occurrence order.
	kept := order[:0]
	for _, leaf := range order {
		if leaves[leaf] == 0 {
			delete(leaves, leaf)
			continue
		}
		kept = append(kept, leaf)
	}

	return &Function{ctx: a.ctx, leaves: leaves, order: kept, cache: map[int]Triple{}}
}
