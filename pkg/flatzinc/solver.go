package flatzinc

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gitrdm/gofzn/pkg/fd"
)

// Options controls one solve run.
type Options struct {
	// AllSolutions enumerates every solution of a satisfy model.
	AllSolutions bool `yaml:"all_solutions"`
	// MaxSolutions caps enumeration; 0 means one solution.
	MaxSolutions int `yaml:"max_solutions"`
	// Statistics appends mzn-stat lines after the search.
	Statistics bool `yaml:"statistics"`
	// TimeoutMS bounds the whole search in milliseconds; 0 disables.
	TimeoutMS int `yaml:"timeout_ms"`
}

// Solver loads one FlatZinc model and runs it against the backend,
// writing output in the standard FlatZinc form.
type Solver struct {
	opts   Options
	logger *slog.Logger
	model  *fd.Model
	info   *ModelInfo
}

// NewSolver returns an empty solver. logger may be nil.
func NewSolver(opts Options, logger *slog.Logger) *Solver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Solver{opts: opts, logger: logger}
}

// LoadString parses and translates FlatZinc source text.
func (s *Solver) LoadString(src string) error {
	ast, err := Parse(src)
	if err != nil {
		return err
	}
	model, info, err := Translate(ast, s.logger)
	if err != nil {
		return err
	}
	s.model = model
	s.info = info
	return nil
}

// LoadFile reads and loads a .fzn file.
func (s *Solver) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return ioError(err, "reading model")
	}
	return s.LoadString(string(data))
}

// Info returns the lookup bundle of the loaded model, or nil before a
// successful load.
func (s *Solver) Info() *ModelInfo { return s.info }

// Run searches the loaded model and writes results to w. Satisfy
// models enumerate up to the configured solution count; optimization
// models report the best solution found. A timeout is a normal
// outcome: solutions found before it are kept.
func (s *Solver) Run(ctx context.Context, w io.Writer) error {
	if s.model == nil {
		return mapErrorf(Loc{}, "no model loaded")
	}
	if s.opts.TimeoutMS > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(s.opts.TimeoutMS)*time.Millisecond)
		defer cancel()
	}

	start := time.Now()
	solver := fd.NewSolver(s.model)
	var err error
	var printed int
	var complete bool

	if s.info.Goal == SolveSatisfy {
		limit := 1
		if s.opts.AllSolutions {
			limit = 0
		} else if s.opts.MaxSolutions > 0 {
			limit = s.opts.MaxSolutions
		}
		var sols []fd.Solution
		sols, err = solver.Solve(ctx, limit)
		for _, sol := range sols {
			if werr := writeSolution(w, s.model, s.info, sol); werr != nil {
				return werr
			}
			printed++
		}
		// Enumeration that ran out of solutions on its own proved the
		// search space exhausted.
		complete = err == nil && (limit == 0 || len(sols) < limit)
	} else {
		var best *fd.Solution
		if s.info.Goal == SolveMinimize {
			best, err = solver.Minimize(ctx, s.info.Objective)
		} else {
			best, err = solver.Maximize(ctx, s.info.Objective)
		}
		if best != nil {
			if werr := writeSolution(w, s.model, s.info, *best); werr != nil {
				return werr
			}
			printed++
		}
		complete = err == nil
	}

	interrupted := errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
	if err != nil && !interrupted {
		return err
	}

	switch {
	case printed == 0 && complete:
		io.WriteString(w, unsatisfiableMarker+"\n")
	case printed == 0:
		io.WriteString(w, unknownMarker+"\n")
	case complete:
		io.WriteString(w, searchCompleteMarker+"\n")
	}

	if s.opts.Statistics {
		writeStats(w, solver.Stats(), printed, time.Since(start))
	}
	if interrupted {
		s.logger.Warn("search interrupted", "solutions", printed, "elapsed", time.Since(start))
	}
	return nil
}
