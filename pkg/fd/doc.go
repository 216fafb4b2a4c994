// Package fd implements a finite-domain constraint propagation engine.
//
// The engine follows the classic model/solver split:
//
//	Model (mutable while building, immutable during solving):
//	  - Variables with initial domains (integer intervals with removed
//	    values, booleans as 0..1 integers, floats as closed intervals)
//	  - Propagators posted against those variables
//	  - Derived-variable builders (Sum, Mul, Abs, Min, Max, ...) that
//	    allocate an auxiliary variable and the propagator defining it
//
//	Solver (owns the mutable search state):
//	  - Runs every propagator to a fixed point at each search node
//	  - Backtracking depth-first search over integer variables with
//	    smallest-domain-first selection and ascending value order
//	  - Branch-and-bound optimization by iterative bound tightening
//	  - Cancellation and timeouts via context.Context
//
// Domains are immutable values: every narrowing operation returns a new
// domain, so saving a search node is a flat copy of the domain slice and
// backtracking is a slice restore. Propagators communicate exclusively
// through the store's domains; there is no other shared state.
//
// Variables are addressed by opaque VarID handles. Callers hold handles,
// never domains, which keeps the engine free to re-represent domains
// without breaking the constraint-posting surface.
package fd
