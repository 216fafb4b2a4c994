// Package flatzinc compiles FlatZinc models into the finite-domain
// engine of pkg/fd and drives the solve loop.
//
// The pipeline is lexer -> parser -> translator -> backend model. The
// translator owns a mapping context for the duration of one call: the
// symbol tables (scalar variables, variable arrays, parameter arrays
// and sets) and the inferred bound range used for formally unbounded
// integer declarations. Constraints dispatch by predicate through a
// closed enum into four lowering strategies: direct relations, reified
// relations, linear arithmetic and structural decomposition of global
// constraints (sort, lex ordering, table, nvalue, global cardinality,
// cumulative).
//
// Known approximations, kept deliberately rather than papered over:
// explicit set domains allocate their interval hull; sort channeling
// stops at 10 elements and falls back to ordering only; cumulative is
// enforced at sampled time points; nvalue refuses domains wider than
// 1000 values.
//
// Solution text follows the FlatZinc output protocol: assignment
// lines, "----------" per solution, "==========" when the search is
// known complete, "=====UNSATISFIABLE=====" when no solution exists.
package flatzinc
