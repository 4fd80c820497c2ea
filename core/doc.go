// Package core implements the symbolic algebra underlying performance
// estimation problems: abstract vectors (Point), abstract scalars
// (Expression), and the Constraint objects comparing them.
//
// Nothing in this package ever holds a numeric coordinate. A Point is an
// exact linear combination of opaque basis generators (initial points and
// oracle gradients); an Expression is an affine combination of scalar
// unknowns (function values) plus bilinear terms, stored as exact linear
// functionals of the entries of the Gram matrix of all basis generators.
// Numeric values exist only after the owning Problem has been solved.
//
// All symbol creation goes through a Context — the per-problem registry that
// replaces any ambient global state, so independent Problems coexist safely.
// Algebraic operations are pure: they never mutate operands and always
// return new immutable values.
//
// Mixing symbols from two different Contexts, or minting symbols after the
// Context has been frozen for solving, is a programmer error and panics with
// a stable message. Recoverable conditions are reported as sentinel errors.
package core
