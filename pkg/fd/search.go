package fd

import (
	"context"
	"errors"
)

// SolveStats reports search effort counters.
type SolveStats struct {
	Nodes     int64
	Failures  int64
	Solutions int64
}

// Solver runs backtracking search over a finished model. The model
// must not be modified while the solver is in use.
type Solver struct {
	model *Model
	stats SolveStats
}

// NewSolver returns a solver for m.
func NewSolver(m *Model) *Solver { return &Solver{model: m} }

// Stats returns the counters accumulated so far.
func (s *Solver) Stats() SolveStats { return s.stats }

// Solve enumerates solutions. maxSolutions <= 0 means all of them.
// A nil error with an empty result means the model is unsatisfiable.
// Cancellation through ctx returns the solutions found so far together
// with the context's error.
func (s *Solver) Solve(ctx context.Context, maxSolutions int) ([]Solution, error) {
	st := newStore(s.model)
	if err := st.runToFixpoint(); err != nil {
		if errors.Is(err, errInconsistent) {
			s.stats.Failures++
			return nil, nil
		}
		return nil, err
	}
	var sols []Solution
	_, err := s.search(ctx, st, func(sol Solution) bool {
		sols = append(sols, sol)
		return maxSolutions > 0 && len(sols) >= maxSolutions
	})
	return sols, err
}

// Minimize finds a solution with the smallest value of obj, by solving
// repeatedly with a tightening upper bound. A nil solution with a nil
// error means unsatisfiable.
func (s *Solver) Minimize(ctx context.Context, obj VarID) (*Solution, error) {
	return s.optimize(ctx, obj, true)
}

// Maximize finds a solution with the largest value of obj.
func (s *Solver) Maximize(ctx context.Context, obj VarID) (*Solution, error) {
	return s.optimize(ctx, obj, false)
}

func (s *Solver) optimize(ctx context.Context, obj VarID, minimize bool) (*Solution, error) {
	var best *Solution
	haveBound := false
	bound := 0
	for {
		st := newStore(s.model)
		if haveBound {
			d := st.intDom(obj)
			if minimize {
				d = d.AtMost(bound)
			} else {
				d = d.AtLeast(bound)
			}
			if d.IsEmpty() {
				return best, nil
			}
			st.ints[obj] = d
		}
		if err := st.runToFixpoint(); err != nil {
			if errors.Is(err, errInconsistent) {
				s.stats.Failures++
				return best, nil
			}
			return best, err
		}
		var found *Solution
		_, err := s.search(ctx, st, func(sol Solution) bool {
			found = &sol
			return true
		})
		if err != nil {
			return best, err
		}
		if found == nil {
			return best, nil
		}
		best = found
		v := found.Int(obj)
		if minimize {
			bound = v - 1
		} else {
			bound = v + 1
		}
		haveBound = true
	}
}

// search explores the store depth first. emit returns true to stop the
// enumeration. The returned bool reports whether emit stopped us.
func (s *Solver) search(ctx context.Context, st *store, emit func(Solution) bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return true, err
	}
	s.stats.Nodes++
	v := pickVar(st)
	if v < 0 {
		s.stats.Solutions++
		return emit(extractSolution(st)), nil
	}
	d := st.intDom(VarID(v))
	ints, floats := st.snapshot()
	var stop bool
	var serr error
	d.IterateValues(func(val int) bool {
		st.restore(ints, floats)
		st.ints[v] = SingletonDomain(val)
		if err := st.runToFixpoint(); err != nil {
			if errors.Is(err, errInconsistent) {
				s.stats.Failures++
				return true
			}
			serr = err
			return false
		}
		stop, serr = s.search(ctx, st, emit)
		return !stop && serr == nil
	})
	if serr != nil {
		return true, serr
	}
	return stop, nil
}

// pickVar chooses the unfixed integer or boolean variable with the
// smallest domain, or -1 when every such variable is fixed.
func pickVar(st *store) int {
	best := -1
	bestSize := 0
	for i, k := range st.model.kinds {
		if k == KindFloat {
			continue
		}
		d := st.ints[i]
		if d.IsFixed() {
			continue
		}
		sz := d.Size()
		if best < 0 || sz < bestSize {
			best, bestSize = i, sz
		}
	}
	return best
}
