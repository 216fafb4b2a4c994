package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Structural decompositions for globals the backend has no primitive
// for. Auxiliary booleans wired here never enter any symbol table.
//
// Each decomposition carries an explicit combinatorial guard:
// sort channeling stops at sortChannelingLimit elements, nvalue
// refuses domains wider than nvalueSpanLimit, and cumulative samples
// at most cumulativeSampleLimit time points.
const (
	sortChannelingLimit   = 10
	nvalueSpanLimit       = 1000
	cumulativeSampleLimit = 200
)

// lowerSort handles sort(x, y): y is x in non-decreasing order.
// Ordering constraints always; for small arrays an O(n^2) reified
// channeling additionally forces the permutation relationship. Above
// the threshold only ordering is emitted, which is incomplete.
func (ctx *mappingContext) lowerSort(c *Constraint) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	ys, err := ctx.resolveVarArray(c.Args[1])
	if err != nil {
		return err
	}
	if len(xs) != len(ys) {
		return mapErrorf(c.At, "%s: arrays have lengths %d and %d", c.Predicate, len(xs), len(ys))
	}
	n := len(xs)
	for i := 0; i+1 < n; i++ {
		ctx.model.Le(ys[i], ys[i+1])
	}
	if n > sortChannelingLimit {
		return nil
	}
	channel := func(from, to []fd.VarID) error {
		for _, f := range from {
			hits := make([]fd.VarID, len(to))
			for j, t := range to {
				b := ctx.model.NewBool()
				ctx.model.EqReif(f, t, b)
				hits[j] = b
			}
			if err := ctx.model.ArrayBoolOr(hits, ctx.model.BoolConst(true)); err != nil {
				return err
			}
		}
		return nil
	}
	if err := channel(ys, xs); err != nil {
		return err
	}
	return channel(xs, ys)
}

// lowerLex handles lex_less and lex_lesseq: x precedes y in
// lexicographic order. Per position i, "strictly less starting at i"
// is the conjunction of equality at every earlier position with
// strict inequality at i; the constraint is the disjunction over all
// positions, plus the all-equal case for lesseq.
func (ctx *mappingContext) lowerLex(c *Constraint, orEqual bool) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	ys, err := ctx.resolveVarArray(c.Args[1])
	if err != nil {
		return err
	}
	if len(xs) != len(ys) {
		return mapErrorf(c.At, "%s: arrays have lengths %d and %d", c.Predicate, len(xs), len(ys))
	}
	n := len(xs)
	if n == 0 {
		if !orEqual {
			// Empty strictly-less is unsatisfiable.
			ctx.model.Fail()
		}
		return nil
	}
	eqs := make([]fd.VarID, n)
	for i := 0; i < n; i++ {
		b := ctx.model.NewBool()
		ctx.model.EqReif(xs[i], ys[i], b)
		eqs[i] = b
	}
	var disjuncts []fd.VarID
	for i := 0; i < n; i++ {
		lt := ctx.model.NewBool()
		ctx.model.LtReif(xs[i], ys[i], lt)
		parts := make([]fd.VarID, 0, i+1)
		parts = append(parts, eqs[:i]...)
		parts = append(parts, lt)
		strictAt := ctx.model.NewBool()
		if err := ctx.model.ArrayBoolAnd(parts, strictAt); err != nil {
			return err
		}
		disjuncts = append(disjuncts, strictAt)
	}
	if orEqual {
		allEq := ctx.model.NewBool()
		if err := ctx.model.ArrayBoolAnd(eqs, allEq); err != nil {
			return err
		}
		disjuncts = append(disjuncts, allEq)
	}
	return ctx.model.ArrayBoolOr(disjuncts, ctx.model.BoolConst(true))
}

// lowerTable handles table_int and table_bool: the variable tuple must
// equal one row of a flattened row-major constant matrix. An empty
// table makes the model infeasible.
func (ctx *mappingContext) lowerTable(c *Constraint, boolTable bool) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	arity := len(xs)
	if arity == 0 {
		return mapErrorf(c.At, "%s: empty variable tuple", c.Predicate)
	}
	var flat []int
	if boolTable {
		bvals, err := ctx.extractBoolArray(c.Args[1])
		if err != nil {
			return err
		}
		flat = make([]int, len(bvals))
		for i, b := range bvals {
			if b {
				flat[i] = 1
			}
		}
	} else {
		flat, err = ctx.extractIntArray(c.Args[1])
		if err != nil {
			return err
		}
	}
	if len(flat)%arity != 0 {
		return mapErrorf(c.At, "%s: %d table entries do not divide into rows of %d",
			c.Predicate, len(flat), arity)
	}
	rows := len(flat) / arity
	if rows == 0 {
		ctx.model.Fail()
		return nil
	}
	rowMatch := make([]fd.VarID, rows)
	for r := 0; r < rows; r++ {
		cells := make([]fd.VarID, arity)
		for j := 0; j < arity; j++ {
			b := ctx.model.NewBool()
			ctx.model.EqReif(xs[j], ctx.model.IntConst(flat[r*arity+j]), b)
			cells[j] = b
		}
		match := ctx.model.NewBool()
		if err := ctx.model.ArrayBoolAnd(cells, match); err != nil {
			return err
		}
		rowMatch[r] = match
	}
	return ctx.model.ArrayBoolOr(rowMatch, ctx.model.BoolConst(true))
}

// lowerNvalue handles nvalue(n, x): n is the number of distinct values
// taken by x. Per candidate value, a presence boolean ORs the reified
// equalities over x; their sum is n. Domains wider than the guard are
// rejected rather than silently exploded.
func (ctx *mappingContext) lowerNvalue(c *Constraint) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	n, err := ctx.resolveVar(c.Args[0])
	if err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[1])
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		ctx.model.Eq(n, ctx.model.IntConst(0))
		return nil
	}
	lo := ctx.model.Domain(xs[0]).Min()
	hi := ctx.model.Domain(xs[0]).Max()
	for _, x := range xs[1:] {
		d := ctx.model.Domain(x)
		if d.Min() < lo {
			lo = d.Min()
		}
		if d.Max() > hi {
			hi = d.Max()
		}
	}
	span := hi - lo + 1
	if span > nvalueSpanLimit {
		return unsupportedf(c.At, "%s over a domain of %d values (limit %d)",
			c.Predicate, span, nvalueSpanLimit)
	}
	var presence []fd.VarID
	for v := lo; v <= hi; v++ {
		hits := make([]fd.VarID, len(xs))
		for i, x := range xs {
			b := ctx.model.NewBool()
			ctx.model.EqReif(x, ctx.model.IntConst(v), b)
			hits[i] = b
		}
		pres := ctx.model.NewBool()
		if err := ctx.model.ArrayBoolOr(hits, pres); err != nil {
			return err
		}
		presence = append(presence, pres)
	}
	coeffs := make([]int, len(presence)+1)
	vars := make([]fd.VarID, len(presence)+1)
	for i, p := range presence {
		coeffs[i] = 1
		vars[i] = p
	}
	coeffs[len(presence)] = -1
	vars[len(presence)] = n
	return ctx.model.LinEq(coeffs, vars, 0)
}

// lowerCumulative handles cumulative(s, d, r, capacity) with fixed
// durations and requirements; the capacity may be a variable. Tasks
// with no duration or no requirement are dropped. Usage is enforced at
// sampled time points: every integer in the horizon when it fits the
// guard, otherwise evenly spaced samples. The discretization is exact
// only at sampled points.
func (ctx *mappingContext) lowerCumulative(c *Constraint) error {
	if err := wantArgs(c, 4); err != nil {
		return err
	}
	starts, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	durations, err := ctx.extractIntArray(c.Args[1])
	if err != nil {
		return err
	}
	resources, err := ctx.extractIntArray(c.Args[2])
	if err != nil {
		return err
	}
	if len(starts) != len(durations) || len(starts) != len(resources) {
		return mapErrorf(c.At, "%s: starts, durations and resources must have equal length (%d, %d, %d)",
			c.Predicate, len(starts), len(durations), len(resources))
	}
	capacity, err := ctx.resolveVar(c.Args[3])
	if err != nil {
		return err
	}

	type task struct {
		start    fd.VarID
		dur, res int
	}
	var tasks []task
	for i, s := range starts {
		if durations[i] <= 0 || resources[i] <= 0 {
			continue
		}
		tasks = append(tasks, task{start: s, dur: durations[i], res: resources[i]})
	}
	if len(tasks) == 0 {
		return nil
	}

	minStart := ctx.model.Domain(tasks[0].start).Min()
	maxEnd := ctx.model.Domain(tasks[0].start).Max() + tasks[0].dur
	for _, t := range tasks[1:] {
		d := ctx.model.Domain(t.start)
		if d.Min() < minStart {
			minStart = d.Min()
		}
		if end := d.Max() + t.dur; end > maxEnd {
			maxEnd = end
		}
	}
	horizon := maxEnd - minStart
	if horizon <= 0 {
		return nil
	}

	var samples []int
	if horizon <= cumulativeSampleLimit {
		for t := minStart; t < maxEnd; t++ {
			samples = append(samples, t)
		}
	} else {
		step := horizon / cumulativeSampleLimit
		for i := 0; i < cumulativeSampleLimit; i++ {
			samples = append(samples, minStart+i*step)
		}
	}

	for _, t := range samples {
		coeffs := make([]int, 0, len(tasks)+1)
		vars := make([]fd.VarID, 0, len(tasks)+1)
		for _, tk := range tasks {
			// Task is active at t iff start <= t < start+dur.
			b1 := ctx.model.NewBool()
			ctx.model.LeReif(tk.start, ctx.model.IntConst(t), b1)
			b2 := ctx.model.NewBool()
			ctx.model.GeReif(tk.start, ctx.model.IntConst(t-tk.dur+1), b2)
			active, err := ctx.model.BoolAnd(b1, b2)
			if err != nil {
				return err
			}
			coeffs = append(coeffs, tk.res)
			vars = append(vars, active)
		}
		coeffs = append(coeffs, -1)
		vars = append(vars, capacity)
		if err := ctx.model.LinLe(coeffs, vars, 0); err != nil {
			return err
		}
	}
	return nil
}
