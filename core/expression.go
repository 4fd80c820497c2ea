package core

// GramKey addresses one entry of the (symmetric) Gram matrix of all basis
// generators, as an unordered index pair normalized to I ≤ J. A bilinear
// coefficient c on key {i,j} means c·<eᵢ,eⱼ>; both orders of a cross term
// accumulate onto the same key.
type GramKey struct {
	I, J int
}

// newGramKey normalizes (i, j) into the canonical I ≤ J form.
func newGramKey(i, j int) GramKey {
	if i > j {
		i, j = j, i
	}

	return GramKey{I: i, J: j}
}

// Expression is an abstract scalar: an affine combination of scalar unknowns
// (function values) plus bilinear terms over basis-generator pairs, plus a
// constant. Immutable; all operations return new Expressions.
type Expression struct {
	ctx      *Context
	linear   map[int]float64     // scalar-unknown index → coefficient
	gram     map[GramKey]float64 // Gram entry → coefficient
	constant float64
}

// NewScalarUnknown mints a fresh free scalar (a function value not yet tied
// to anything) and returns it as an Expression with coefficient 1.
// Panics when ctx is nil or frozen.
// Complexity: O(1).
func NewScalarUnknown(ctx *Context) *Expression {
	if ctx == nil {
		panic(panicNilContext)
	}

	return &Expression{
		ctx:    ctx,
		linear: map[int]float64{ctx.nextScalar(): 1},
		gram:   map[GramKey]float64{},
	}
}

// Constant returns the constant Expression c. Constants are context-bound so
// that later composition can verify ownership.
// Complexity: O(1).
func Constant(ctx *Context, c float64) *Expression {
	if ctx == nil {
		panic(panicNilContext)
	}

	return &Expression{ctx: ctx, linear: map[int]float64{}, gram: map[GramKey]float64{}, constant: c}
}

// Context returns the owning registry.
func (e *Expression) Context() *Context { return e.ctx }

// Linear returns a copy of the scalar-unknown coefficient mapping.
func (e *Expression) Linear() map[int]float64 {
	out := make(map[int]float64, len(e.linear))
	for s, v := range e.linear {
		out[s] = v
	}

	return out
}

// Gram returns a copy of the Gram-entry coefficient mapping.
func (e *Expression) Gram() map[GramKey]float64 {
	out := make(map[GramKey]float64, len(e.gram))
	for k, v := range e.gram {
		out[k] = v
	}

	return out
}

// ConstantTerm returns the additive constant of e.
func (e *Expression) ConstantTerm() float64 { return e.constant }

// Add returns e + f as a new Expression. Operands are not mutated.
// Panics when e and f belong to different Contexts.
// Complexity: O(k) in the total number of terms.
func (e *Expression) Add(f *Expression) *Expression {
	e.ctx.same(f.ctx)
	out := e.clone()
	for s, v := range f.linear {
		out.linear[s] += v
		if out.linear[s] == 0 {
			delete(out.linear, s)
		}
	}
	for k, v := range f.gram {
		out.gram[k] += v
		if out.gram[k] == 0 {
			delete(out.gram, k)
		}
	}
	out.constant += f.constant

	return out
}

// Sub returns e - f as a new Expression.
// Complexity: O(k).
func (e *Expression) Sub(f *Expression) *Expression { return e.Add(f.Scale(-1)) }

// Scale returns a*e as a new Expression.
// Complexity: O(k).
func (e *Expression) Scale(a float64) *Expression {
	out := &Expression{
		ctx:      e.ctx,
		linear:   make(map[int]float64, len(e.linear)),
		gram:     make(map[GramKey]float64, len(e.gram)),
		constant: a * e.constant,
	}
	if a != 0 {
		for s, v := range e.linear {
			out.linear[s] = a * v
		}
		for k, v := range e.gram {
			out.gram[k] = a * v
		}
	}

	return out
}

// AddConstant returns e + c as a new Expression.
// Complexity: O(k).
func (e *Expression) AddConstant(c float64) *Expression {
	out := e.clone()
	out.constant += c

	return out
}

// LessEqual builds the Constraint e ≤ f. Building a Constraint does NOT
// register it anywhere — registration is the owning Problem's explicit act —
// so Expressions compose freely before being asserted.
func (e *Expression) LessEqual(f *Expression) Constraint {
	return Constraint{expr: e.Sub(f), rel: RelationLE}
}

// GreaterEqual builds the Constraint e ≥ f (normalized to f - e ≤ 0).
func (e *Expression) GreaterEqual(f *Expression) Constraint {
	return Constraint{expr: f.Sub(e), rel: RelationLE}
}

// Equal builds the Constraint e == f.
func (e *Expression) Equal(f *Expression) Constraint {
	return Constraint{expr: e.Sub(f), rel: RelationEQ}
}

// LessEqualConst, GreaterEqualConst and EqualConst are shorthands against a
// numeric bound, the common case for initial conditions.
func (e *Expression) LessEqualConst(c float64) Constraint {
	return e.LessEqual(Constant(e.ctx, c))
}

func (e *Expression) GreaterEqualConst(c float64) Constraint {
	return e.GreaterEqual(Constant(e.ctx, c))
}

func (e *Expression) EqualConst(c float64) Constraint {
	return e.Equal(Constant(e.ctx, c))
}

// clone deep-copies e (maps included) keeping the same Context.
func (e *Expression) clone() *Expression {
	out := &Expression{
		ctx:      e.ctx,
		linear:   make(map[int]float64, len(e.linear)),
		gram:     make(map[GramKey]float64, len(e.gram)),
		constant: e.constant,
	}
	for s, v := range e.linear {
		out.linear[s] = v
	}
	for k, v := range e.gram {
		out.gram[k] = v
	}

	return out
}
