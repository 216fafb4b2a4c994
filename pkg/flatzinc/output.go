package flatzinc

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gitrdm/gofzn/pkg/fd"
)

// FlatZinc output protocol markers.
const (
	solutionSeparator    = "----------"
	searchCompleteMarker = "=========="
	unsatisfiableMarker  = "=====UNSATISFIABLE====="
	unknownMarker        = "=====UNKNOWN====="
)

func formatValue(model *fd.Model, sol fd.Solution, v fd.VarID) string {
	switch model.Kind(v) {
	case fd.KindBool:
		if sol.Bool(v) {
			return "true"
		}
		return "false"
	case fd.KindFloat:
		return strconv.FormatFloat(sol.Float(v), 'g', -1, 64)
	default:
		return strconv.Itoa(sol.Int(v))
	}
}

// writeSolution prints one solution in the standard FlatZinc form: one
// assignment line per output item, then the solution separator.
func writeSolution(w io.Writer, model *fd.Model, info *ModelInfo, sol fd.Solution) error {
	for _, item := range info.Output {
		if item.IsArray {
			hs := info.Arrays[item.Name]
			if _, err := fmt.Fprintf(w, "%s = array1d(1..%d, [", item.Name, len(hs)); err != nil {
				return err
			}
			for i, h := range hs {
				sep := ", "
				if i == 0 {
					sep = ""
				}
				if _, err := fmt.Fprintf(w, "%s%s", sep, formatValue(model, sol, h)); err != nil {
					return err
				}
			}
			if _, err := fmt.Fprintln(w, "]);"); err != nil {
				return err
			}
			continue
		}
		h, ok := info.Vars[item.Name]
		if !ok {
			continue
		}
		if _, err := fmt.Fprintf(w, "%s = %s;\n", item.Name, formatValue(model, sol, h)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w, solutionSeparator)
	return err
}

// writeStats prints search statistics in mzn-stat form.
func writeStats(w io.Writer, st fd.SolveStats, solutions int, elapsed time.Duration) {
	fmt.Fprintf(w, "%%%%%%mzn-stat: nodes=%d\n", st.Nodes)
	fmt.Fprintf(w, "%%%%%%mzn-stat: failures=%d\n", st.Failures)
	fmt.Fprintf(w, "%%%%%%mzn-stat: solutions=%d\n", solutions)
	fmt.Fprintf(w, "%%%%%%mzn-stat: solveTime=%.3f\n", elapsed.Seconds())
	fmt.Fprintln(w, "%%%mzn-stat-end")
}
