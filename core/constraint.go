package core

// Relation tags how a Constraint's expression compares against zero.
// GreaterEqual comparisons are normalized into RelationLE at construction,
// so downstream assembly only ever sees two relations.
type Relation uint8

const (
	// RelationLE means expr ≤ 0.
	RelationLE Relation = iota

	// RelationEQ means expr == 0.
	RelationEQ
)

// String implements fmt.Stringer for diagnostics.
func (r Relation) String() string {
	if r == RelationEQ {
		return "=="
	}

	return "<="
}

// Constraint is an Expression compared against zero. Constraints are built
// by the comparison methods on Expression and accumulate in the owning
// Problem once explicitly registered; they are never retracted.
type Constraint struct {
	expr *Expression
	rel  Relation
}

// Expression returns the left-hand side (compared against zero).
func (c Constraint) Expression() *Expression { return c.expr }

// Relation returns the comparison tag.
func (c Constraint) Relation() Relation { return c.rel }

// PSDConstraint requires a square symmetric matrix of Expressions to be
// positive semidefinite. It is lowered to an extra semidefinite block in
// the assembled program, alongside the main Gram block.
type PSDConstraint struct {
	cells [][]*Expression
}

// NewPSDConstraint validates shape and symmetry of cells (entry (i,j) and
// (j,i) must be the same *Expression or both provided; the upper triangle
// wins) and returns the constraint. Returns ErrNotSymmetricPSD on a
// non-square matrix and ErrNilExpression on a nil entry.
// Complexity: O(n²).
func NewPSDConstraint(cells [][]*Expression) (PSDConstraint, error) {
	n := len(cells)
	for i := 0; i < n; i++ {
		if len(cells[i]) != n {
			return PSDConstraint{}, ErrNotSymmetricPSD
		}
		for j := 0; j < n; j++ {
			if cells[i][j] == nil {
				return PSDConstraint{}, ErrNilExpression
			}
		}
	}
	// Normalize: mirror the upper triangle so (i,j) and (j,i) agree.
	out := make([][]*Expression, n)
	for i := range out {
		out[i] = make([]*Expression, n)
		for j := range out[i] {
			if i <= j {
				out[i][j] = cells[i][j]
			} else {
				out[i][j] = cells[j][i]
			}
		}
	}

	return PSDConstraint{cells: out}, nil
}

// Dim returns the block dimension.
func (p PSDConstraint) Dim() int { return len(p.cells) }

// At returns the Expression at (i, j) after symmetrization.
func (p PSDConstraint) At(i, j int) *Expression { return p.cells[i][j] }
