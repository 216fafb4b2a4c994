package flatzinc

import (
	"context"
	"errors"
	"testing"

	"github.com/gitrdm/gofzn/pkg/fd"
)

func mustTranslate(t *testing.T, src string) (*fd.Model, *ModelInfo) {
	t.Helper()
	ast, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	model, info, err := Translate(ast, nil)
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	return model, info
}

func solveModel(t *testing.T, model *fd.Model, max int) []fd.Solution {
	t.Helper()
	sols, err := fd.NewSolver(model).Solve(context.Background(), max)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return sols
}

func translateErr(t *testing.T, src string) *Error {
	t.Helper()
	ast, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	_, _, terr := Translate(ast, nil)
	if terr == nil {
		t.Fatalf("expected a translation error")
	}
	var fe *Error
	if !errors.As(terr, &fe) {
		t.Fatalf("error is %T, want *Error", terr)
	}
	return fe
}

func TestInferredBoundsContainComparedLiterals(t *testing.T) {
	// x has no declared domain; the inferred range derives from the
	// only finite domain (1..10) widened by at least 100 per side, so
	// it must still contain the literal 50 compared against x.
	model, info := mustTranslate(t, `
var 1..10: a;
var int: x;
constraint int_eq(x, 50);
solve satisfy;
`)
	x := info.Vars["x"]
	d := model.Domain(x)
	if !d.Has(50) {
		t.Fatalf("inferred domain %v does not contain 50", d)
	}
	sols := solveModel(t, model, 1)
	if len(sols) != 1 || sols[0].Int(x) != 50 {
		t.Fatalf("x not forced to 50: %v", sols)
	}
}

func TestDefaultBoundsWithoutFiniteDomains(t *testing.T) {
	model, info := mustTranslate(t, `
var int: x;
constraint int_eq(x, 123456);
solve satisfy;
`)
	if !model.Domain(info.Vars["x"]).Has(123456) {
		t.Fatalf("default inferred domain too small: %v", model.Domain(info.Vars["x"]))
	}
}

func TestArrayIndexConvention(t *testing.T) {
	// Source index 2 addresses the second element, vector index 1.
	model, info := mustTranslate(t, `
array [1..3] of var 1..9: xs;
constraint int_eq(xs[2], 7);
solve satisfy;
`)
	sols := solveModel(t, model, 1)
	if len(sols) != 1 {
		t.Fatalf("no solution")
	}
	if got := sols[0].Int(info.Arrays["xs"][1]); got != 7 {
		t.Fatalf("xs[2] lowered to vector index %d value %d, want 7", 1, got)
	}
}

func TestArrayIndexOutOfRange(t *testing.T) {
	fe := translateErr(t, `
array [1..3] of var 1..9: xs;
constraint int_eq(xs[4], 7);
solve satisfy;
`)
	if fe.Kind != ErrMap {
		t.Fatalf("kind = %v, want map error", fe.Kind)
	}
}

func TestSortDecomposition(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..3] of var 1..3: x;
array [1..3] of var 1..3: y;
constraint int_eq(x[1], 3);
constraint int_eq(x[2], 1);
constraint int_eq(x[3], 2);
constraint sort(x, y);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) == 0 {
		t.Fatalf("sort model unsatisfiable")
	}
	ys := info.Arrays["y"]
	for _, s := range sols {
		got := [3]int{s.Int(ys[0]), s.Int(ys[1]), s.Int(ys[2])}
		if got != [3]int{1, 2, 3} {
			t.Fatalf("y = %v, want [1 2 3]", got)
		}
	}
}

func TestTableExactness(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..2] of var 1..4: x;
constraint table_int(x, [1, 2, 3, 4]);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	xs := info.Arrays["x"]
	seen := map[[2]int]bool{}
	for _, s := range sols {
		seen[[2]int{s.Int(xs[0]), s.Int(xs[1])}] = true
	}
	if len(seen) != 2 || !seen[[2]int{1, 2}] || !seen[[2]int{3, 4}] {
		t.Fatalf("satisfying tuples = %v, want exactly (1,2) and (3,4)", seen)
	}
}

func TestEmptyTableInfeasible(t *testing.T) {
	model, _ := mustTranslate(t, `
array [1..2] of var 1..4: x;
constraint table_int(x, []);
solve satisfy;
`)
	if sols := solveModel(t, model, 0); len(sols) != 0 {
		t.Fatalf("empty table produced %d solutions", len(sols))
	}
}

func TestLinearArityMismatch(t *testing.T) {
	fe := translateErr(t, `
var 0..9: x;
var 0..9: y;
constraint int_lin_eq([1, 2, 3], [x, y], 6);
solve satisfy;
`)
	if fe.Kind != ErrMap {
		t.Fatalf("kind = %v, want map error", fe.Kind)
	}
}

func TestCumulativeSampledSoundness(t *testing.T) {
	// Two unit-resource tasks of duration 2 on a capacity-1 resource:
	// the horizon is small enough for exhaustive sampling, so the
	// tasks can never overlap.
	model, info := mustTranslate(t, `
array [1..2] of var 0..3: s;
constraint cumulative(s, [2, 2], [1, 1], 1);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) == 0 {
		t.Fatalf("cumulative model unsatisfiable")
	}
	ss := info.Arrays["s"]
	for _, sol := range sols {
		a, b := sol.Int(ss[0]), sol.Int(ss[1])
		diff := a - b
		if diff < 0 {
			diff = -diff
		}
		if diff < 2 {
			t.Fatalf("overlapping schedule: starts %d and %d", a, b)
		}
	}
}

func TestParameterShortCircuit(t *testing.T) {
	// A constant integer array never enters the handle table; its
	// elements fold to singleton constants wherever referenced.
	model, info := mustTranslate(t, `
array [1..3] of int: a = [2, 4, 6];
var 1..9: x;
constraint all_different(a);
constraint int_eq(x, a[3]);
solve satisfy;
`)
	if _, ok := info.Arrays["a"]; ok {
		t.Fatalf("parameter array leaked into the handle table")
	}
	sols := solveModel(t, model, 1)
	if len(sols) != 1 || sols[0].Int(info.Vars["x"]) != 6 {
		t.Fatalf("a[3] did not fold to 6")
	}
}

func TestSetDomainHull(t *testing.T) {
	// Explicit set domains allocate the interval hull: excluded
	// values survive unless another constraint removes them.
	model, _ := mustTranslate(t, `
var {1, 3, 5}: x;
solve satisfy;
`)
	if sols := solveModel(t, model, 0); len(sols) != 5 {
		t.Fatalf("hull of {1,3,5} admits %d values, want 5", len(sols))
	}
}

func TestSetInConstraintIsExact(t *testing.T) {
	model, _ := mustTranslate(t, `
var 0..9: x;
constraint set_in(x, {1, 3, 5});
solve satisfy;
`)
	if sols := solveModel(t, model, 0); len(sols) != 3 {
		t.Fatalf("set_in admits %d values, want 3", len(sols))
	}
}

func TestNvalueGuard(t *testing.T) {
	fe := translateErr(t, `
var 0..2000: x;
var 0..2000: y;
var 1..2: n;
constraint nvalue(n, [x, y]);
solve satisfy;
`)
	if fe.Kind != ErrUnsupported {
		t.Fatalf("kind = %v, want unsupported feature", fe.Kind)
	}
}

func TestNvalueCountsDistinct(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..3] of var 1..3: xs;
var 1..3: n;
constraint int_eq(xs[1], 1);
constraint int_eq(xs[2], 1);
constraint int_eq(xs[3], 2);
constraint nvalue(n, xs);
solve satisfy;
`)
	sols := solveModel(t, model, 1)
	if len(sols) != 1 || sols[0].Int(info.Vars["n"]) != 2 {
		t.Fatalf("nvalue of [1,1,2] != 2")
	}
}

func TestLexOrdering(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..2] of var 1..2: x;
array [1..2] of var 1..2: y;
constraint int_eq(y[1], 1);
constraint int_eq(y[2], 2);
constraint lex_less(x, y);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	xs := info.Arrays["x"]
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1 (only [1,1] < [1,2])", len(sols))
	}
	if sols[0].Int(xs[0]) != 1 || sols[0].Int(xs[1]) != 1 {
		t.Fatalf("x = [%d %d], want [1 1]", sols[0].Int(xs[0]), sols[0].Int(xs[1]))
	}
}

func TestGlobalCardinality(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..3] of var 1..2: xs;
var 0..3: c1;
var 0..3: c2;
constraint global_cardinality(xs, [1, 2], [c1, c2]);
constraint int_eq(c1, 2);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) == 0 {
		t.Fatalf("unsatisfiable")
	}
	for _, s := range sols {
		ones := 0
		for _, x := range info.Arrays["xs"] {
			if s.Int(x) == 1 {
				ones++
			}
		}
		if ones != 2 || s.Int(info.Vars["c2"]) != 1 {
			t.Fatalf("cardinality violated: ones=%d c2=%d", ones, s.Int(info.Vars["c2"]))
		}
	}
}

func TestGlobalCardinalityLowUpClosed(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..3] of var 0..9: xs;
constraint global_cardinality_low_up_closed(xs, [1, 2], [1, 1], [2, 2]);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) == 0 {
		t.Fatalf("unsatisfiable")
	}
	for _, s := range sols {
		for _, x := range info.Arrays["xs"] {
			v := s.Int(x)
			if v != 1 && v != 2 {
				t.Fatalf("closed variant admitted value %d outside the cover", v)
			}
		}
	}
}

func TestBoolChannels(t *testing.T) {
	model, info := mustTranslate(t, `
var bool: p;
var bool: q;
var 0..1: i;
constraint bool2int(p, i);
constraint bool_xor(p, q);
constraint int_eq(i, 1);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	if !sols[0].Bool(info.Vars["p"]) || sols[0].Bool(info.Vars["q"]) {
		t.Fatalf("channeling broken: p=%v q=%v", sols[0].Bool(info.Vars["p"]), sols[0].Bool(info.Vars["q"]))
	}
}

func TestElementVariants(t *testing.T) {
	model, info := mustTranslate(t, `
array [1..3] of var 1..9: xs;
var 1..3: i;
var 1..9: v;
constraint int_eq(xs[1], 4);
constraint int_eq(xs[2], 5);
constraint int_eq(xs[3], 6);
constraint array_var_int_element(i, xs, v);
constraint int_eq(v, 5);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) != 1 || sols[0].Int(info.Vars["i"]) != 2 {
		t.Fatalf("element did not pin i=2: %v", sols)
	}
}

func TestUnknownPredicate(t *testing.T) {
	fe := translateErr(t, `
var 0..9: x;
constraint totally_made_up(x);
solve satisfy;
`)
	if fe.Kind != ErrUnsupported {
		t.Fatalf("kind = %v, want unsupported feature", fe.Kind)
	}
}

func TestUndefinedIdentifier(t *testing.T) {
	fe := translateErr(t, `
var 0..9: x;
constraint int_eq(x, nosuch);
solve satisfy;
`)
	if fe.Kind != ErrMap {
		t.Fatalf("kind = %v, want map error", fe.Kind)
	}
}

func TestMissingParameterInitializer(t *testing.T) {
	fe := translateErr(t, "int: n;\nsolve satisfy;")
	if fe.Kind != ErrMap {
		t.Fatalf("kind = %v, want map error", fe.Kind)
	}
}

func TestVarAliasInitializer(t *testing.T) {
	model, info := mustTranslate(t, `
var 1..9: x;
var 3..5: y = x;
solve satisfy;
`)
	if info.Vars["x"] != info.Vars["y"] {
		t.Fatalf("y should alias x")
	}
	// The alias keeps y's declared domain as a constraint on x.
	sols := solveModel(t, model, 0)
	for _, s := range sols {
		if v := s.Int(info.Vars["x"]); v < 3 || v > 5 {
			t.Fatalf("alias domain not enforced: %d", v)
		}
	}
	if len(solveModel(t, model, 0)) != 3 {
		t.Fatalf("want 3 solutions")
	}
}

func TestMinimizeGoal(t *testing.T) {
	model, info := mustTranslate(t, `
var 3..9: x;
solve minimize x;
`)
	best, err := fd.NewSolver(model).Minimize(context.Background(), info.Objective)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if best == nil || best.Int(info.Vars["x"]) != 3 {
		t.Fatalf("minimum of 3..9 not 3")
	}
}

func TestFloatConstraints(t *testing.T) {
	model, info := mustTranslate(t, `
var 1..5: n;
var 0.0..10.0: f;
constraint int2float(n, f);
constraint float_lin_le([2.0], [f], 5.0);
solve satisfy;
`)
	sols := solveModel(t, model, 0)
	if len(sols) != 2 {
		t.Fatalf("got %d solutions, want 2 (n in {1,2})", len(sols))
	}
	for _, s := range sols {
		if s.Int(info.Vars["n"]) > 2 {
			t.Fatalf("float bound ignored: n=%d", s.Int(info.Vars["n"]))
		}
	}
}
