package flatzinc

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func runSolver(t *testing.T, opts Options, src string) string {
	t.Helper()
	s := NewSolver(opts, nil)
	if err := s.LoadString(src); err != nil {
		t.Fatalf("LoadString: %v", err)
	}
	var buf bytes.Buffer
	if err := s.Run(context.Background(), &buf); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return buf.String()
}

func TestRunSingleSolution(t *testing.T) {
	out := runSolver(t, Options{}, `
var 1..5: x :: output_var;
constraint int_eq(x, 3);
solve satisfy;
`)
	want := "x = 3;\n----------\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunAllSolutions(t *testing.T) {
	out := runSolver(t, Options{AllSolutions: true}, `
var 1..2: x :: output_var;
solve satisfy;
`)
	want := "x = 1;\n----------\nx = 2;\n----------\n==========\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunUnsatisfiable(t *testing.T) {
	out := runSolver(t, Options{}, `
var 1..5: x;
constraint int_lt(x, x);
solve satisfy;
`)
	if out != unsatisfiableMarker+"\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestRunArrayOutput(t *testing.T) {
	out := runSolver(t, Options{}, `
array [1..2] of var 1..4: xs :: output_array([1..2]);
constraint int_eq(xs[1], 2);
constraint int_eq(xs[2], 4);
solve satisfy;
`)
	want := "xs = array1d(1..2, [2, 4]);\n----------\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunBoolOutput(t *testing.T) {
	out := runSolver(t, Options{}, `
var bool: p :: output_var;
constraint bool_eq(p, true);
solve satisfy;
`)
	want := "p = true;\n----------\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunMinimize(t *testing.T) {
	out := runSolver(t, Options{}, `
var 2..9: x :: output_var;
var 2..9: y :: output_var;
constraint int_lin_eq([1, 1], [x, y], 10);
solve minimize x;
`)
	if !strings.HasPrefix(out, "x = 2;\ny = 8;\n"+solutionSeparator+"\n") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, searchCompleteMarker) {
		t.Fatalf("optimization did not report completion: %q", out)
	}
}

func TestRunStatistics(t *testing.T) {
	out := runSolver(t, Options{Statistics: true}, `
var 1..3: x :: output_var;
solve satisfy;
`)
	for _, line := range []string{
		"%%%mzn-stat: nodes=",
		"%%%mzn-stat: solutions=1",
		"%%%mzn-stat-end",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("statistics output missing %q:\n%s", line, out)
		}
	}
}

func TestRunMaxSolutions(t *testing.T) {
	out := runSolver(t, Options{MaxSolutions: 2}, `
var 1..5: x :: output_var;
solve satisfy;
`)
	if got := strings.Count(out, solutionSeparator); got != 2 {
		t.Fatalf("got %d solutions, want 2:\n%s", got, out)
	}
	if strings.Contains(out, searchCompleteMarker) {
		t.Fatalf("capped enumeration must not claim completeness:\n%s", out)
	}
}

func TestRunOutputFallback(t *testing.T) {
	// Without output annotations every declared variable is printed.
	out := runSolver(t, Options{}, `
var 1..1: a;
var 2..2: b;
solve satisfy;
`)
	want := "a = 1;\nb = 2;\n----------\n"
	if out != want {
		t.Fatalf("output = %q, want %q", out, want)
	}
}

func TestRunNoModelLoaded(t *testing.T) {
	s := NewSolver(Options{}, nil)
	var buf bytes.Buffer
	if err := s.Run(context.Background(), &buf); err == nil {
		t.Fatalf("expected an error before any load")
	}
}
