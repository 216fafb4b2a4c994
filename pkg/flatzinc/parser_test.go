package flatzinc

import (
	"errors"
	"testing"
)

func TestLexBasics(t *testing.T) {
	toks, err := lexAll("var 1..9: x :: output_var; % trailing comment\n")
	if err != nil {
		t.Fatalf("lexAll: %v", err)
	}
	want := []tokenType{tokIdent, tokInt, tokDotDot, tokInt, tokColon,
		tokIdent, tokDoubleColon, tokIdent, tokSemi, tokEOF}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(toks), len(want))
	}
	for i, w := range want {
		if toks[i].typ != w {
			t.Fatalf("token %d: got %s, want %s", i, toks[i].typ, w)
		}
	}
}

func TestLexNegativeAndFloat(t *testing.T) {
	toks, err := lexAll("-42 3.25 -1.5e3")
	if err != nil {
		t.Fatalf("lexAll: %v", err)
	}
	if toks[0].typ != tokInt || toks[0].intVal != -42 {
		t.Fatalf("got %v, want int -42", toks[0])
	}
	if toks[1].typ != tokFloat || toks[1].floatVal != 3.25 {
		t.Fatalf("got %v, want float 3.25", toks[1])
	}
	if toks[2].typ != tokFloat || toks[2].floatVal != -1500 {
		t.Fatalf("got %v, want float -1500", toks[2])
	}
}

func TestLexPositions(t *testing.T) {
	toks, err := lexAll("var\n  int: x;")
	if err != nil {
		t.Fatalf("lexAll: %v", err)
	}
	if toks[0].at != (Loc{Line: 1, Column: 1}) {
		t.Fatalf("var at %v", toks[0].at)
	}
	if toks[1].at != (Loc{Line: 2, Column: 3}) {
		t.Fatalf("int at %v", toks[1].at)
	}
}

func TestLexError(t *testing.T) {
	_, err := lexAll("var int: x ? ;")
	if err == nil {
		t.Fatalf("expected a lex error")
	}
	if err.Kind != ErrLex {
		t.Fatalf("kind = %v, want lex error", err.Kind)
	}
}

func TestParseModel(t *testing.T) {
	src := `
predicate my_custom(var int: a);
int: n = 3;
var 1..9: x :: output_var;
array [1..3] of var 1..9: xs :: output_array([1..3]);
constraint int_lt(x, 5);
constraint all_different(xs);
solve satisfy;
`
	m, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(m.Predicates) != 1 || m.Predicates[0] != "my_custom" {
		t.Fatalf("predicates = %v", m.Predicates)
	}
	if len(m.Decls) != 3 {
		t.Fatalf("got %d declarations, want 3", len(m.Decls))
	}
	if m.Decls[0].Type.IsVar || m.Decls[0].Init == nil {
		t.Fatalf("n should be an initialized parameter")
	}
	x := m.Decls[1]
	if !x.Type.IsVar || x.Type.Kind != TypeIntRange || x.Type.Lo != 1 || x.Type.Hi != 9 {
		t.Fatalf("x type = %+v", x.Type)
	}
	if !x.HasAnnotation("output_var") {
		t.Fatalf("x annotations = %v", x.Annotations)
	}
	xs := m.Decls[2]
	if !xs.IsArray || xs.ArrayLen != 3 || !xs.HasAnnotation("output_array") {
		t.Fatalf("xs = %+v", xs)
	}
	if len(m.Constraints) != 2 || m.Constraints[0].Predicate != "int_lt" {
		t.Fatalf("constraints = %v", m.Constraints)
	}
	if m.Solve.Kind != SolveSatisfy {
		t.Fatalf("solve kind = %v", m.Solve.Kind)
	}
}

func TestParseSolveObjective(t *testing.T) {
	m, err := Parse("var 0..9: x;\nsolve minimize x;")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if m.Solve.Kind != SolveMinimize {
		t.Fatalf("kind = %v", m.Solve.Kind)
	}
	id, ok := m.Solve.Objective.(*Ident)
	if !ok || id.Name != "x" {
		t.Fatalf("objective = %#v", m.Solve.Objective)
	}
}

func TestParseExpressions(t *testing.T) {
	m, err := Parse(`
array [1..2] of var 1..3: xs;
constraint table_int(xs, [1, 2, 3, 4]);
constraint set_in(xs[1], {1, 3});
constraint int_le(xs[2], 2);
solve satisfy;
`)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	tbl := m.Constraints[0]
	if _, ok := tbl.Args[1].(*ArrayLit); !ok {
		t.Fatalf("table arg = %#v", tbl.Args[1])
	}
	sin := m.Constraints[1]
	acc, ok := sin.Args[0].(*ArrayAccess)
	if !ok || acc.Array != "xs" {
		t.Fatalf("set_in arg = %#v", sin.Args[0])
	}
	if _, ok := sin.Args[1].(*SetLit); !ok {
		t.Fatalf("set arg = %#v", sin.Args[1])
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"missing solve", "var int: x;"},
		{"missing semicolon", "var int: x\nsolve satisfy;"},
		{"multidim array", "array [1..2, 1..2] of var int: m;\nsolve satisfy;"},
		{"bad index base", "array [0..2] of var int: m;\nsolve satisfy;"},
	}
	for _, tc := range cases {
		if _, err := Parse(tc.src); err == nil {
			t.Fatalf("%s: expected a parse error", tc.name)
		}
	}
}

func TestParseErrorKind(t *testing.T) {
	_, err := Parse("constraint int_eq(;\nsolve satisfy;")
	var fe *Error
	if !errors.As(err, &fe) {
		t.Fatalf("error is %T, want *Error", err)
	}
	if fe.Kind != ErrParse {
		t.Fatalf("kind = %v, want parse error", fe.Kind)
	}
	if !fe.At.known() {
		t.Fatalf("parse error carries no location")
	}
}
