package fd

import (
	"context"
	"testing"
)

func permutationModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	xs := []VarID{m.NewInt(1, 4), m.NewInt(1, 4), m.NewInt(1, 4), m.NewInt(1, 4)}
	if err := m.AllDifferent(xs); err != nil {
		t.Fatalf("AllDifferent: %v", err)
	}
	return m
}

func TestSolveParallelMatchesSequential(t *testing.T) {
	seq, err := NewSolver(permutationModel(t)).Solve(context.Background(), 0)
	if err != nil {
		t.Fatalf("Solve: %v", err)
	}
	par, err := NewSolver(permutationModel(t)).SolveParallel(context.Background(), 4, 0)
	if err != nil {
		t.Fatalf("SolveParallel: %v", err)
	}
	if len(par) != len(seq) {
		t.Fatalf("parallel found %d solutions, sequential %d", len(par), len(seq))
	}
	m := permutationModel(t)
	for i := range seq {
		for v := 0; v < m.NumVars(); v++ {
			if seq[i].Int(VarID(v)) != par[i].Int(VarID(v)) {
				t.Fatalf("solution %d differs at variable %d", i, v)
			}
		}
	}
}

func TestSolveParallelMaxSolutions(t *testing.T) {
	sols, err := NewSolver(permutationModel(t)).SolveParallel(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("SolveParallel: %v", err)
	}
	if len(sols) != 5 {
		t.Fatalf("got %d solutions, want 5", len(sols))
	}
}

func TestSolveParallelUnsatisfiable(t *testing.T) {
	m := NewModel()
	x := m.NewInt(1, 3)
	m.Lt(x, x)
	sols, err := NewSolver(m).SolveParallel(context.Background(), 2, 0)
	if err != nil {
		t.Fatalf("SolveParallel: %v", err)
	}
	if sols != nil {
		t.Fatalf("got %d solutions, want none", len(sols))
	}
}

func TestSolveParallelCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewSolver(permutationModel(t)).SolveParallel(ctx, 2, 0)
	if err == nil {
		t.Fatalf("expected a context error")
	}
}
