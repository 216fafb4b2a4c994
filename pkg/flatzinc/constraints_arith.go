package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Integer arithmetic predicates. Each builds the derived value through
// a backend builder and equates it with the result operand.

func (ctx *mappingContext) lowerIntArith(c *Constraint, p predicate) error {
	if p == predIntAbs {
		if err := wantArgs(c, 2); err != nil {
			return err
		}
		a, err := ctx.resolveVar(c.Args[0])
		if err != nil {
			return err
		}
		r, err := ctx.resolveVar(c.Args[1])
		if err != nil {
			return err
		}
		z, err := ctx.model.Abs(a)
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.Eq(z, r)
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
	switch p {
	case predIntPlus:
		return ctx.model.LinEq([]int{1, 1, -1}, []fd.VarID{a, b, r}, 0)
	case predIntMinus:
		return ctx.model.LinEq([]int{1, -1, -1}, []fd.VarID{a, b, r}, 0)
	case predIntTimes:
		z, err := ctx.model.Mul(a, b)
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.Eq(z, r)
	case predIntDiv:
		z, err := ctx.model.Div(a, b)
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.Eq(z, r)
	case predIntMod:
		z, err := ctx.model.Mod(a, b)
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.Eq(z, r)
	case predIntMin:
		z, err := ctx.model.Min([]fd.VarID{a, b})
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.Eq(z, r)
	case predIntMax:
		z, err := ctx.model.Max([]fd.VarID{a, b})
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.Eq(z, r)
	}
	return nil
}

// lowerArrayExtremum handles array_int_minimum and array_int_maximum:
// the result operand comes first, the array second.
func (ctx *mappingContext) lowerArrayExtremum(c *Constraint, p predicate) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	r, err := ctx.resolveVar(c.Args[0])
	if err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[1])
	if err != nil {
		return err
	}
	if len(xs) == 0 {
		return mapErrorf(c.At, "%s: empty array", c.Predicate)
	}
	var z fd.VarID
	if p == predArrayIntMinimum {
		z, err = ctx.model.Min(xs)
	} else {
		z, err = ctx.model.Max(xs)
	}
	if err != nil {
		return mapErrorf(c.At, "%s: %v", c.Predicate, err)
	}
	ctx.model.Eq(z, r)
	return nil
}
