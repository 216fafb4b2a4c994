package fd

import (
	"context"
	"errors"

	"github.com/gitrdm/gofzn/internal/parallel"
)

// SolveParallel enumerates solutions like Solve, splitting the search
// at the root: each value of the first branching variable becomes an
// independent subproblem with its own store, run on a bounded worker
// pool. Propagators and the model are read-only during search, so the
// subproblems share them safely. Solutions come back in the order
// Solve would produce them.
func (s *Solver) SolveParallel(ctx context.Context, workers, maxSolutions int) ([]Solution, error) {
	st := newStore(s.model)
	if err := st.runToFixpoint(); err != nil {
		if errors.Is(err, errInconsistent) {
			s.stats.Failures++
			return nil, nil
		}
		return nil, err
	}
	s.stats.Nodes++
	v := pickVar(st)
	if v < 0 {
		s.stats.Solutions++
		return []Solution{extractSolution(st)}, nil
	}

	rootInts, rootFloats := st.snapshot()
	var vals []int
	st.intDom(VarID(v)).IterateValues(func(val int) bool {
		vals = append(vals, val)
		return true
	})

	type shard struct {
		sols  []Solution
		stats SolveStats
		err   error
	}
	shards := make([]shard, len(vals))

	pool := parallel.NewPool(workers)
	defer pool.Close()
	var submitErr error
	for i, val := range vals {
		i, val := i, val
		submitErr = pool.Submit(ctx, func() {
			sub := &Solver{model: s.model}
			sst := newStore(s.model)
			sst.restore(rootInts, rootFloats)
			sst.ints[v] = SingletonDomain(val)
			if err := sst.runToFixpoint(); err != nil {
				if errors.Is(err, errInconsistent) {
					sub.stats.Failures++
					shards[i].stats = sub.stats
					return
				}
				shards[i].err = err
				return
			}
			_, err := sub.search(ctx, sst, func(sol Solution) bool {
				shards[i].sols = append(shards[i].sols, sol)
				return maxSolutions > 0 && len(shards[i].sols) >= maxSolutions
			})
			shards[i].err = err
			shards[i].stats = sub.stats
		})
		if submitErr != nil {
			break
		}
	}
	pool.Wait()

	var sols []Solution
	var firstErr error
	for i := range shards {
		s.stats.Nodes += shards[i].stats.Nodes
		s.stats.Failures += shards[i].stats.Failures
		s.stats.Solutions += shards[i].stats.Solutions
		sols = append(sols, shards[i].sols...)
		if shards[i].err != nil && firstErr == nil {
			firstErr = shards[i].err
		}
	}
	if firstErr == nil {
		firstErr = submitErr
	}
	if maxSolutions > 0 && len(sols) > maxSolutions {
		sols = sols[:maxSolutions]
	}
	return sols, firstErr
}
