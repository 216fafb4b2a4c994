package fd

import (
	"context"
	"testing"
)

func solveAll(t *testing.T, m *Model) []Solution {
	t.Helper()
	sols, err := NewSolver(m).Solve(context.Background(), 0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	return sols
}

func solveOne(t *testing.T, m *Model) Solution {
	t.Helper()
	sols, err := NewSolver(m).Solve(context.Background(), 1)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 1 {
		t.Fatalf("got %d solutions, want 1", len(sols))
	}
	return sols[0]
}

func TestEqNe(t *testing.T) {
	m := NewModel()
	x := m.NewInt(1, 3)
	y := m.NewInt(2, 5)
	m.Eq(x, y)
	sols := solveAll(t, m)
	if len(sols) != 2 {
		t.Fatalf("x=y over [1,3]x[2,5]: got %d solutions, want 2", len(sols))
	}
	for _, s := range sols {
		if s.Int(x) != s.Int(y) {
			t.Fatalf("x=%d y=%d violates equality", s.Int(x), s.Int(y))
		}
	}

	m = NewModel()
	x = m.NewInt(1, 2)
	y = m.NewInt(1, 2)
	m.Ne(x, y)
	if got := len(solveAll(t, m)); got != 2 {
		t.Fatalf("x!=y over [1,2]^2: got %d solutions, want 2", got)
	}
}

func TestOrderRelations(t *testing.T) {
	m := NewModel()
	x := m.NewInt(1, 3)
	y := m.NewInt(1, 3)
	m.Lt(x, y)
	sols := solveAll(t, m)
	if len(sols) != 3 {
		t.Fatalf("x<y over [1,3]^2: got %d solutions, want 3", len(sols))
	}
	for _, s := range sols {
		if s.Int(x) >= s.Int(y) {
			t.Fatalf("x=%d y=%d violates x<y", s.Int(x), s.Int(y))
		}
	}
}

func TestReifiedRelation(t *testing.T) {
	m := NewModel()
	x := m.NewInt(1, 2)
	y := m.NewInt(1, 2)
	b := m.NewBool()
	m.EqReif(x, y, b)
	sols := solveAll(t, m)
	if len(sols) != 4 {
		t.Fatalf("got %d solutions, want 4", len(sols))
	}
	for _, s := range sols {
		want := s.Int(x) == s.Int(y)
		if s.Bool(b) != want {
			t.Fatalf("x=%d y=%d b=%v: channeling broken", s.Int(x), s.Int(y), s.Bool(b))
		}
	}
}

func TestLinearEq(t *testing.T) {
	// 2x + 3y = 12 over [0,6]^2 has (0,4), (3,2), (6,0).
	m := NewModel()
	x := m.NewInt(0, 6)
	y := m.NewInt(0, 6)
	if err := m.LinEq([]int{2, 3}, []VarID{x, y}, 12); err != nil {
		t.Fatalf("LinEq: %v", err)
	}
	sols := solveAll(t, m)
	if len(sols) != 3 {
		t.Fatalf("got %d solutions, want 3", len(sols))
	}
	for _, s := range sols {
		if 2*s.Int(x)+3*s.Int(y) != 12 {
			t.Fatalf("2*%d+3*%d != 12", s.Int(x), s.Int(y))
		}
	}
}

func TestLinearArityMismatch(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 1)
	if err := m.LinEq([]int{1, 2}, []VarID{x}, 0); err == nil {
		t.Fatalf("mismatched coefficient count accepted")
	}
}

func TestLinearReified(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 2)
	b := m.NewBool()
	if err := m.LinEqReif([]int{1}, []VarID{x}, 1, b); err != nil {
		t.Fatalf("LinEqReif: %v", err)
	}
	for _, s := range solveAll(t, m) {
		if s.Bool(b) != (s.Int(x) == 1) {
			t.Fatalf("x=%d b=%v: channeling broken", s.Int(x), s.Bool(b))
		}
	}
}

func TestMulDivMod(t *testing.T) {
	m := NewModel()
	x := m.NewInt(2, 4)
	y := m.NewInt(3, 3)
	z, err := m.Mul(x, y)
	if err != nil {
		t.Fatalf("Mul: %v", err)
	}
	m.Eq(z, m.IntConst(9))
	s := solveOne(t, m)
	if s.Int(x) != 3 {
		t.Fatalf("x = %d, want 3", s.Int(x))
	}

	// Truncating division: -7 div 2 = -3.
	m = NewModel()
	q, err := m.Div(m.IntConst(-7), m.IntConst(2))
	if err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got := solveOne(t, m).Int(q); got != -3 {
		t.Fatalf("-7 div 2 = %d, want -3", got)
	}

	// Remainder follows the dividend: -7 mod 2 = -1.
	m = NewModel()
	r, err := m.Mod(m.IntConst(-7), m.IntConst(2))
	if err != nil {
		t.Fatalf("Mod: %v", err)
	}
	if got := solveOne(t, m).Int(r); got != -1 {
		t.Fatalf("-7 mod 2 = %d, want -1", got)
	}
}

func TestDivisorNonzero(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 5)
	y := m.NewInt(0, 0)
	if _, err := m.Div(x, y); err != nil {
		t.Fatalf("Div: %v", err)
	}
	if got := len(solveAll(t, m)); got != 0 {
		t.Fatalf("division by a zero-fixed divisor: got %d solutions, want 0", got)
	}
}

func TestAbsMinMax(t *testing.T) {
	m := NewModel()
	x := m.NewInt(-3, -3)
	z, err := m.Abs(x)
	if err != nil {
		t.Fatalf("Abs: %v", err)
	}
	if got := solveOne(t, m).Int(z); got != 3 {
		t.Fatalf("|-3| = %d, want 3", got)
	}

	m = NewModel()
	a := m.NewInt(2, 2)
	b := m.NewInt(5, 5)
	c := m.NewInt(4, 4)
	lo, err := m.Min([]VarID{a, b, c})
	if err != nil {
		t.Fatalf("Min: %v", err)
	}
	hi, err := m.Max([]VarID{a, b, c})
	if err != nil {
		t.Fatalf("Max: %v", err)
	}
	s := solveOne(t, m)
	if s.Int(lo) != 2 || s.Int(hi) != 5 {
		t.Fatalf("min=%d max=%d, want 2 and 5", s.Int(lo), s.Int(hi))
	}
}

func TestAllDifferent(t *testing.T) {
	m := NewModel()
	xs := []VarID{m.NewInt(1, 3), m.NewInt(1, 3), m.NewInt(1, 3)}
	if err := m.AllDifferent(xs); err != nil {
		t.Fatalf("AllDifferent: %v", err)
	}
	sols := solveAll(t, m)
	if len(sols) != 6 {
		t.Fatalf("got %d permutations, want 6", len(sols))
	}
	for _, s := range sols {
		seen := map[int]bool{}
		for _, x := range xs {
			if seen[s.Int(x)] {
				t.Fatalf("duplicate value in %v", s)
			}
			seen[s.Int(x)] = true
		}
	}
}

func TestElement(t *testing.T) {
	m := NewModel()
	xs := []VarID{m.IntConst(10), m.IntConst(20), m.IntConst(30)}
	idx := m.NewInt(0, 2)
	val := m.NewInt(0, 100)
	if err := m.Element(idx, xs, val); err != nil {
		t.Fatalf("Element: %v", err)
	}
	m.Eq(val, m.IntConst(20))
	s := solveOne(t, m)
	if s.Int(idx) != 1 {
		t.Fatalf("idx = %d, want 1", s.Int(idx))
	}
}

func TestCount(t *testing.T) {
	m := NewModel()
	xs := []VarID{m.NewInt(1, 2), m.NewInt(1, 2), m.IntConst(1)}
	c, err := m.Count(xs, m.IntConst(1))
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	m.Eq(c, m.IntConst(3))
	s := solveOne(t, m)
	for _, x := range xs {
		if s.Int(x) != 1 {
			t.Fatalf("count forcing failed: %v", s.Int(x))
		}
	}
}

func TestExactlyInfeasible(t *testing.T) {
	m := NewModel()
	xs := []VarID{m.IntConst(1), m.IntConst(1)}
	if err := m.Exactly(1, xs, 1); err != nil {
		t.Fatalf("Exactly: %v", err)
	}
	if got := len(solveAll(t, m)); got != 0 {
		t.Fatalf("got %d solutions, want 0", got)
	}
}

func TestBoolConnectives(t *testing.T) {
	m := NewModel()
	a := m.NewBool()
	b := m.NewBool()
	r, err := m.BoolAnd(a, b)
	if err != nil {
		t.Fatalf("BoolAnd: %v", err)
	}
	o, err := m.BoolOr(a, b)
	if err != nil {
		t.Fatalf("BoolOr: %v", err)
	}
	n, err := m.BoolNot(a)
	if err != nil {
		t.Fatalf("BoolNot: %v", err)
	}
	for _, s := range solveAll(t, m) {
		if s.Bool(r) != (s.Bool(a) && s.Bool(b)) {
			t.Fatalf("and broken at a=%v b=%v", s.Bool(a), s.Bool(b))
		}
		if s.Bool(o) != (s.Bool(a) || s.Bool(b)) {
			t.Fatalf("or broken at a=%v b=%v", s.Bool(a), s.Bool(b))
		}
		if s.Bool(n) == s.Bool(a) {
			t.Fatalf("not broken at a=%v", s.Bool(a))
		}
	}
}

func TestBoolClause(t *testing.T) {
	// (a or not b) with a=0 forces b=0.
	m := NewModel()
	a := m.NewBool()
	b := m.NewBool()
	m.Eq(a, m.IntConst(0))
	if err := m.BoolClause([]VarID{a}, []VarID{b}); err != nil {
		t.Fatalf("BoolClause: %v", err)
	}
	s := solveOne(t, m)
	if s.Bool(b) {
		t.Fatalf("unit propagation failed, b = true")
	}
}

func TestMember(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 10)
	m.Member(x, DomainFromValues([]int{2, 5, 9}))
	sols := solveAll(t, m)
	if len(sols) != 3 {
		t.Fatalf("got %d solutions, want 3", len(sols))
	}
}

func TestFailShortCircuits(t *testing.T) {
	m := NewModel()
	m.NewInt(1, 10)
	m.Fail()
	if got := len(solveAll(t, m)); got != 0 {
		t.Fatalf("failed model produced %d solutions", got)
	}
}

func TestMinimizeMaximize(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 9)
	y := m.NewInt(0, 9)
	if err := m.LinEq([]int{1, 1}, []VarID{x, y}, 9); err != nil {
		t.Fatalf("LinEq: %v", err)
	}
	obj, err := m.WeightedSum([]int{3, 1}, []VarID{x, y})
	if err != nil {
		t.Fatalf("WeightedSum: %v", err)
	}

	sol, err := NewSolver(m).Minimize(context.Background(), obj)
	if err != nil {
		t.Fatalf("Minimize: %v", err)
	}
	if sol == nil || sol.Int(x) != 0 || sol.Int(y) != 9 {
		t.Fatalf("minimum not at x=0 y=9: %+v", sol)
	}

	sol, err = NewSolver(m).Maximize(context.Background(), obj)
	if err != nil {
		t.Fatalf("Maximize: %v", err)
	}
	if sol == nil || sol.Int(x) != 9 || sol.Int(y) != 0 {
		t.Fatalf("maximum not at x=9 y=0: %+v", sol)
	}
}

func TestMaxSolutionsLimit(t *testing.T) {
	m := NewModel()
	m.NewInt(1, 100)
	sols, err := NewSolver(m).Solve(context.Background(), 5)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	if len(sols) != 5 {
		t.Fatalf("got %d solutions, want 5", len(sols))
	}
}

func TestContextCancellation(t *testing.T) {
	m := NewModel()
	for i := 0; i < 10; i++ {
		m.NewInt(1, 10)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewSolver(m).Solve(ctx, 0); err == nil {
		t.Fatalf("expected error from cancelled context")
	}
}

func TestFloatChannel(t *testing.T) {
	m := NewModel()
	x := m.NewInt(3, 7)
	f, err := m.Int2Float(x)
	if err != nil {
		t.Fatalf("Int2Float: %v", err)
	}
	g := m.NewFloat(0, 100)
	m.FEq(f, g)
	if err := m.FLinLe([]float64{1}, []VarID{g}, 4.5); err != nil {
		t.Fatalf("FLinLe: %v", err)
	}
	sols := solveAll(t, m)
	if len(sols) != 2 {
		t.Fatalf("got %d solutions, want 2 (x in {3,4})", len(sols))
	}
	for _, s := range sols {
		if s.Int(x) > 4 {
			t.Fatalf("x = %d exceeds the float bound", s.Int(x))
		}
	}
}

func TestFloatLinear(t *testing.T) {
	m := NewModel()
	a := m.NewFloat(0, 10)
	if err := m.FLinEq([]float64{2}, []VarID{a}, 5); err != nil {
		t.Fatalf("FLinEq: %v", err)
	}
	s := solveOne(t, m)
	if got := s.Float(a); got < 2.5-1e-6 || got > 2.5+1e-6 {
		t.Fatalf("a = %g, want 2.5", got)
	}
}
