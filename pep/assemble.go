package pep

import (
	"github.com/katalvlaran/pepkit/core"
	"github.com/katalvlaran/pepkit/sdp"
)

// programLayout pins the variable ordering used when lowering the symbolic
// graph into a standard-form program:
//
//	x = [ scalar unknowns (m) | Gram entries G[i][j], i<=j, row-major (d(d+1)/2) | t ]
//
// where t is the auxiliary objective variable: the program minimizes -t
// subject to t <= metric_k for every declared metric, so the optimum is the
// worst case of the minimum over metrics.
type programLayout struct {
	scalars int // m
	gramDim int // d
	prog    *sdp.Program
}

func (pl programLayout) gramIndex(i, j int) int {
	if i > j {
		i, j = j, i
	}
	return pl.scalars + i*pl.gramDim - i*(i-1)/2 + (j - i)
}

func (pl programLayout) tIndex() int {
	return pl.scalars + pl.gramDim*(pl.gramDim+1)/2
}

func (pl programLayout) numVars() int {
	return pl.tIndex() + 1
}

// lower translates a symbolic Expression into a linear form over the
// program's variable vector. Gram coefficients are stored on unordered
// key pairs, so each maps to exactly one program variable.
func (pl programLayout) lower(e *core.Expression) sdp.LinForm {
	lf := sdp.LinForm{Coeffs: make(map[int]float64), Const: e.ConstantTerm()}
	for id, c := range e.Linear() {
		lf.Coeffs[id] += c
	}
	for key, c := range e.Gram() {
		lf.Coeffs[pl.gramIndex(key.I, key.J)] += c
	}
	return lf
}

// assemble builds the full standard-form program from the Problem's
// recorded state plus the given pre-collected interpolation constraints.
// The Gram PSD requirement is always the first semidefinite block.
func (p *Problem) assemble(interp []core.Constraint) programLayout {
	pl := programLayout{
		scalars: p.ctx.ScalarCount(),
		gramDim: p.ctx.BasisCount(),
	}
	prog := &sdp.Program{NumVars: pl.numVars()}
	pl.prog = prog

	// Objective: maximize t.
	prog.C = make([]float64, prog.NumVars)
	prog.C[pl.tIndex()] = -1

	// t <= metric_k for every metric.
	for _, m := range p.metrics {
		lf := pl.lower(m.Scale(-1))
		lf.Coeffs[pl.tIndex()] += 1
		prog.Ineqs = append(prog.Ineqs, lf)
	}

	appendCon := func(c core.Constraint) {
		lf := pl.lower(c.Expression())
		if c.Relation() == core.RelationEQ {
			prog.Eqs = append(prog.Eqs, lf)
			return
		}
		prog.Ineqs = append(prog.Ineqs, lf)
	}
	for _, c := range p.initConds {
		appendCon(c)
	}
	for _, c := range interp {
		appendCon(c)
	}
	for _, c := range p.constraints {
		appendCon(c)
	}

	// Gram PSD block: the matrix of Gram variables themselves.
	gram := sdp.PSDBlock{Dim: pl.gramDim, Entry: make([][]sdp.LinForm, pl.gramDim)}
	for i := 0; i < pl.gramDim; i++ {
		gram.Entry[i] = make([]sdp.LinForm, pl.gramDim)
		for j := 0; j < pl.gramDim; j++ {
			gram.Entry[i][j] = sdp.LinForm{
				Coeffs: map[int]float64{pl.gramIndex(i, j): 1},
			}
		}
	}
	prog.Blocks = append(prog.Blocks, gram)

	// Client-declared semidefinite blocks follow.
	for _, c := range p.psdCons {
		blk := sdp.PSDBlock{Dim: c.Dim(), Entry: make([][]sdp.LinForm, c.Dim())}
		for i := 0; i < c.Dim(); i++ {
			blk.Entry[i] = make([]sdp.LinForm, c.Dim())
			for j := 0; j < c.Dim(); j++ {
				blk.Entry[i][j] = pl.lower(c.At(i, j))
			}
		}
		prog.Blocks = append(prog.Blocks, blk)
	}

	return pl
}
