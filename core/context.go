package core

// Context is the per-problem symbol registry. Every basis generator, scalar
// unknown and point identity is minted by exactly one Context; identity is
// the creation-order index (arena + index), never structural equality of
// coefficients. Two algebraically equal but independently built Points are
// therefore distinct — matching the oracle-caching semantics, where only
// re-querying exactly the same returned Point reuses a recorded triple.
//
// A Context is not safe for concurrent use: symbolic construction is
// single-writer by contract (the one long-running call is the external
// solver dispatch, which happens after Freeze).
type Context struct {
	basisCount  int  // number of basis generators minted so far
	scalarCount int  // number of scalar unknowns minted so far
	pointCount  int  // number of Point identities minted so far
	frozen      bool // set once by Freeze; no symbol creation afterwards
}

// NewContext returns an empty, unfrozen symbol registry.
func NewContext() *Context { return &Context{} }

// BasisCount reports how many basis generators exist — the dimension of the
// Gram matrix the eventual SDP will carry. Surfacing this before the solve
// is part of the resource contract: Gram size is the dominant cost driver.
// Complexity: O(1).
func (c *Context) BasisCount() int { return c.basisCount }

// ScalarCount reports how many scalar unknowns (function values) exist.
// Complexity: O(1).
func (c *Context) ScalarCount() int { return c.scalarCount }

// Frozen reports whether symbol creation has been sealed for solving.
// Complexity: O(1).
func (c *Context) Frozen() bool { return c.frozen }

// Freeze seals the Context: any further basis-generator or scalar-unknown
// creation panics. Called once by the owning Problem at the start of Solve;
// idempotent.
func (c *Context) Freeze() { c.frozen = true }

// nextBasis mints a new basis-generator index.
// Panics when the Context is frozen (oracle call after solve).
func (c *Context) nextBasis() int {
	if c.frozen {
		panic(panicFrozenContext)
	}
	idx := c.basisCount
	c.basisCount++

	return idx
}

// nextScalar mints a new scalar-unknown index.
// Panics when the Context is frozen.
func (c *Context) nextScalar() int {
	if c.frozen {
		panic(panicFrozenContext)
	}
	idx := c.scalarCount
	c.scalarCount++

	return idx
}

// nextPointID mints a new point identity. Point identities are cheap and
// allowed post-freeze: building new linear combinations of already existing
// generators introduces no new SDP unknowns.
func (c *Context) nextPointID() int {
	id := c.pointCount
	c.pointCount++

	return id
}

// same panics unless both contexts are the identical registry.
// nil Contexts are always a programmer error.
func (c *Context) same(other *Context) {
	if c == nil || other == nil {
		panic(panicNilContext)
	}
	if c != other {
		panic(panicMixedContext)
	}
}
