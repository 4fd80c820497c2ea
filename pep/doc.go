// Package pep assembles and solves performance estimation problems.
//
// A Problem owns one symbolic Context and everything recorded against it:
// declared functions, initial points and conditions, extra constraints, and
// the performance metric(s). Client code specifies an algorithm abstractly —
// oracle calls on declared functions, Point/Expression arithmetic, primitive
// steps — then calls Solve exactly once. Solve freezes the trajectory, emits
// every function's interpolation constraints, lowers the whole symbolic
// graph into one standard-form SDP (the Gram matrix of all basis generators
// plus the vector of scalar unknowns), dispatches the external solver, and
// populates realized numeric values back onto the symbolic objects.
//
// The worst-case value τ returned by Solve is the tight bound on the
// performance metric over every function in the declared classes and every
// admissible starting condition. ReduceDimension optionally post-processes
// the solved Gram matrix into a low-rank certificate, yielding a concrete
// low-dimensional worst-case example near the bound.
//
// Problems are single-writer: symbolic construction has no internal locking,
// and the one long-running blocking call is the solver dispatch. A caller
// needing timeouts must wrap Solve externally.
package pep
