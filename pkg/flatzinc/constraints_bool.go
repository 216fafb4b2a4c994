package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Boolean connectives and channeling. bool2int is a plain equality:
// the backend represents booleans as 0..1 integers.

func (ctx *mappingContext) lowerBool(c *Constraint, p predicate) error {
	switch p {
	case predBool2Int:
		if err := wantArgs(c, 2); err != nil {
			return err
		}
		b, err := ctx.resolveVar(c.Args[0])
		if err != nil {
			return err
		}
		x, err := ctx.resolveVar(c.Args[1])
		if err != nil {
			return err
		}
		ctx.model.Eq(b, x)
		return nil

	case predBoolNot:
		if err := wantArgs(c, 2); err != nil {
			return err
		}
		a, err := ctx.resolveVar(c.Args[0])
		if err != nil {
			return err
		}
		b, err := ctx.resolveVar(c.Args[1])
		if err != nil {
			return err
		}
		return ctx.model.LinEq([]int{1, 1}, []fd.VarID{a, b}, 1)

	case predBoolXor:
		// Two-argument xor asserts a != b; the three-argument form
		// reifies it.
		if len(c.Args) == 2 {
			a, err := ctx.resolveVar(c.Args[0])
			if err != nil {
				return err
			}
			b, err := ctx.resolveVar(c.Args[1])
			if err != nil {
				return err
			}
			ctx.model.Ne(a, b)
			return nil
		}
		if err := wantArgs(c, 3); err != nil {
			return err
		}
		a, err := ctx.resolveVar(c.Args[0])
		if err != nil {
			return err
		}
		b, err := ctx.resolveVar(c.Args[1])
		if err != nil {
			return err
		}
		r, err := ctx.resolveVar(c.Args[2])
		if err != nil {
			return err
		}
		return ctx.model.BoolXor(a, b, r)

	case predBoolClause:
		if err := wantArgs(c, 2); err != nil {
			return err
		}
		pos, err := ctx.resolveVarArray(c.Args[0])
		if err != nil {
			return err
		}
		neg, err := ctx.resolveVarArray(c.Args[1])
		if err != nil {
			return err
		}
		if len(pos) == 0 && len(neg) == 0 {
			ctx.model.Fail()
			return nil
		}
		return ctx.model.BoolClause(pos, neg)

	case predArrayBoolAnd, predArrayBoolOr:
		if err := wantArgs(c, 2); err != nil {
			return err
		}
		xs, err := ctx.resolveVarArray(c.Args[0])
		if err != nil {
			return err
		}
		r, err := ctx.resolveVar(c.Args[1])
		if err != nil {
			return err
		}
		if p == predArrayBoolAnd {
			return ctx.model.ArrayBoolAnd(xs, r)
		}
		return ctx.model.ArrayBoolOr(xs, r)
	}
	return unsupportedf(c.At, "constraint predicate %q", c.Predicate)
}
