package sdp

import "fmt"

// LinForm is a sparse affine form over the program's free vector:
// Σ Coeffs[i]·x[i] + Const. Context (≤ 0, == 0, or a matrix entry) is given
// by where the form sits in the Program.
type LinForm struct {
	Coeffs map[int]float64
	Const  float64
}

// Eval computes the form at x. No bounds checking beyond the slice itself;
// call Program.Validate first on untrusted programs.
// Complexity: O(nnz).
func (f LinForm) Eval(x []float64) float64 {
	v := f.Const
	for i, c := range f.Coeffs {
		v += c * x[i]
	}

	return v
}

// clone deep-copies the form.
func (f LinForm) clone() LinForm {
	out := LinForm{Coeffs: make(map[int]float64, len(f.Coeffs)), Const: f.Const}
	for i, c := range f.Coeffs {
		out.Coeffs[i] = c
	}

	return out
}

// PSDBlock is a Dim×Dim symmetric matrix of affine forms required to be
// positive semidefinite. Only the upper triangle (i ≤ j) of Entry is read;
// the lower triangle mirrors it by construction.
type PSDBlock struct {
	Dim   int
	Entry [][]LinForm
}

// Program is the standard-form problem consumed by a Solver:
//
//	minimize   C·x
//	subject to Ineqs[k](x) ≤ 0,  Eqs[k](x) == 0,
//	           each PSDBlock, evaluated at x, is PSD.
//
// Programs are plain data so a solved Problem can export its program for an
// independent re-solve (round-trip verification).
type Program struct {
	NumVars int
	C       []float64
	Ineqs   []LinForm
	Eqs     []LinForm
	Blocks  []PSDBlock
}

// Validate checks structural well-formedness: objective length, coefficient
// index ranges, and PSD block shapes. Returns ErrBadProgram (wrapped with
// detail) on the first violation.
// Complexity: O(total nonzeros).
func (p *Program) Validate() error {
	if p == nil {
		return ErrNilProgram
	}
	if p.NumVars < 0 || len(p.C) != p.NumVars {
		return fmt.Errorf("%w: objective length %d for %d variables", ErrBadProgram, len(p.C), p.NumVars)
	}
	check := func(f LinForm, where string) error {
		for i := range f.Coeffs {
			if i < 0 || i >= p.NumVars {
				return fmt.Errorf("%w: coefficient index %d out of range in %s", ErrBadProgram, i, where)
			}
		}

		return nil
	}
	for k, f := range p.Ineqs {
		if err := check(f, fmt.Sprintf("inequality %d", k)); err != nil {
			return err
		}
	}
	for k, f := range p.Eqs {
		if err := check(f, fmt.Sprintf("equality %d", k)); err != nil {
			return err
		}
	}
	for b, blk := range p.Blocks {
		if blk.Dim <= 0 || len(blk.Entry) != blk.Dim {
			return fmt.Errorf("%w: PSD block %d is not %dx%d", ErrBadProgram, b, blk.Dim, blk.Dim)
		}
		for i := 0; i < blk.Dim; i++ {
			if len(blk.Entry[i]) != blk.Dim {
				return fmt.Errorf("%w: PSD block %d row %d has %d entries", ErrBadProgram, b, i, len(blk.Entry[i]))
			}
			for j := i; j < blk.Dim; j++ {
				if err := check(blk.Entry[i][j], fmt.Sprintf("PSD block %d entry (%d,%d)", b, i, j)); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// Clone deep-copies the program, so a caller can re-solve or mutate the
// export without touching the original.
func (p *Program) Clone() *Program {
	out := &Program{NumVars: p.NumVars, C: append([]float64(nil), p.C...)}
	for _, f := range p.Ineqs {
		out.Ineqs = append(out.Ineqs, f.clone())
	}
	for _, f := range p.Eqs {
		out.Eqs = append(out.Eqs, f.clone())
	}
	for _, blk := range p.Blocks {
		nb := PSDBlock{Dim: blk.Dim, Entry: make([][]LinForm, blk.Dim)}
		for i := range blk.Entry {
			nb.Entry[i] = make([]LinForm, blk.Dim)
			for j := range blk.Entry[i] {
				nb.Entry[i][j] = blk.Entry[i][j].clone()
			}
		}
		out.Blocks = append(out.Blocks, nb)
	}

	return out
}
