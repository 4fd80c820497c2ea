package core

// Point is an abstract vector: an exact, finite linear combination of basis
// generators that exist at the moment of its creation. Points never carry
// coordinates; they are immutable, and every algebraic operation returns a
// fresh Point with a fresh identity.
type Point struct {
	ctx    *Context
	id     int             // creation-order identity; see Context doc
	coeffs map[int]float64 // basis-generator index → coefficient
}

// NewBasisPoint mints a fresh basis generator and returns the Point equal to
// that generator alone (coefficient 1). This is the only way new directions
// enter a problem: explicit initial points and oracle gradients.
// Panics when ctx is nil or frozen.
// Complexity: O(1).
func NewBasisPoint(ctx *Context) *Point {
	if ctx == nil {
		panic(panicNilContext)
	}
	gen := ctx.nextBasis()

	return &Point{ctx: ctx, id: ctx.nextPointID(), coeffs: map[int]float64{gen: 1}}
}

// Zero returns the zero vector of ctx (empty combination). Used for the
// null gradient recorded at stationary points.
// Complexity: O(1).
func Zero(ctx *Context) *Point {
	if ctx == nil {
		panic(panicNilContext)
	}

	return &Point{ctx: ctx, id: ctx.nextPointID(), coeffs: map[int]float64{}}
}

// ID returns the creation-order identity of p. Oracle caches key on this
// value: algebraic equality of coefficients deliberately does NOT imply
// identity.
func (p *Point) ID() int { return p.id }

// Context returns the owning registry.
func (p *Point) Context() *Context { return p.ctx }

// Coefficients returns a copy of the generator→coefficient mapping.
// Complexity: O(k) for k nonzero coefficients.
func (p *Point) Coefficients() map[int]float64 {
	out := make(map[int]float64, len(p.coeffs))
	for g, v := range p.coeffs {
		out[g] = v
	}

	return out
}

// Add returns p + q as a new Point. Operands are not mutated.
// Panics when q is nil or p and q belong to different Contexts.
// Complexity: O(k).
func (p *Point) Add(q *Point) *Point {
	if q == nil {
		panic(panicNilOperand)
	}
	p.ctx.same(q.ctx)
	coeffs := make(map[int]float64, len(p.coeffs)+len(q.coeffs))
	for g, v := range p.coeffs {
		coeffs[g] = v
	}
	for g, v := range q.coeffs {
		coeffs[g] += v
		if coeffs[g] == 0 {
			delete(coeffs, g) // keep combinations minimal
		}
	}

	return &Point{ctx: p.ctx, id: p.ctx.nextPointID(), coeffs: coeffs}
}

// Sub returns p - q as a new Point.
// Panics when q is nil.
// Complexity: O(k).
func (p *Point) Sub(q *Point) *Point {
	if q == nil {
		panic(panicNilOperand)
	}

	return p.Add(q.Neg())
}

// Scale returns a*p as a new Point. Scaling by zero yields the zero vector.
// Complexity: O(k).
func (p *Point) Scale(a float64) *Point {
	coeffs := make(map[int]float64, len(p.coeffs))
	if a != 0 {
		for g, v := range p.coeffs {
			coeffs[g] = a * v
		}
	}

	return &Point{ctx: p.ctx, id: p.ctx.nextPointID(), coeffs: coeffs}
}

// Neg returns -p as a new Point.
// Complexity: O(k).
func (p *Point) Neg() *Point { return p.Scale(-1) }

// Inner returns the symbolic inner product <p, q> as an Expression whose
// bilinear part is the exact expansion onto Gram entries: for p = Σ aᵢ eᵢ
// and q = Σ bⱼ eⱼ, <p,q> = Σᵢⱼ aᵢbⱼ Gᵢⱼ with unordered (i,j) keys.
// Panics when q is nil or p and q belong to different Contexts.
// Complexity: O(k·m) for k, m nonzero coefficients.
func (p *Point) Inner(q *Point) *Expression {
	if q == nil {
		panic(panicNilOperand)
	}
	p.ctx.same(q.ctx)
	gram := make(map[GramKey]float64, len(p.coeffs)*len(q.coeffs))
	for gi, a := range p.coeffs {
		for gj, b := range q.coeffs {
			k := newGramKey(gi, gj)
			gram[k] += a * b
			if gram[k] == 0 {
				delete(gram, k)
			}
		}
	}

	return &Expression{ctx: p.ctx, gram: gram, linear: map[int]float64{}}
}

// NormSq is sugar for Inner(p, p): the squared norm ||p||².
func (p *Point) NormSq() *Expression { return p.Inner(p) }
