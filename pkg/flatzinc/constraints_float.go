package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Float relations, linear forms and arithmetic. The backend reasons on
// float bounds only, so strict inequalities prune like their
// non-strict forms and are checked exactly on fixed operands.

func (ctx *mappingContext) lowerFloatRel(c *Constraint, p predicate) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	a, err := ctx.resolveFloatVar(c.Args[0])
	if err != nil {
		return err
	}
	b, err := ctx.resolveFloatVar(c.Args[1])
	if err != nil {
		return err
	}
	switch p {
	case predFloatEq:
		ctx.model.FEq(a, b)
	case predFloatNe:
		ctx.model.FNe(a, b)
	case predFloatLt:
		ctx.model.FLt(a, b)
	case predFloatLe:
		ctx.model.FLe(a, b)
	}
	return nil
}

func (ctx *mappingContext) lowerFloatRelReif(c *Constraint, p predicate) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	a, err := ctx.resolveFloatVar(c.Args[0])
	if err != nil {
		return err
	}
	b, err := ctx.resolveFloatVar(c.Args[1])
	if err != nil {
		return err
	}
	r, err := ctx.resolveVar(c.Args[2])
	if err != nil {
		return err
	}
	switch p {
	case predFloatEqReif:
		ctx.model.FEqReif(a, b, r)
	case predFloatNeReif:
		ctx.model.FNeReif(a, b, r)
	case predFloatLtReif:
		ctx.model.FLtReif(a, b, r)
	case predFloatLeReif:
		ctx.model.FLeReif(a, b, r)
	case predFloatGtReif:
		ctx.model.FGtReif(a, b, r)
	case predFloatGeReif:
		ctx.model.FGeReif(a, b, r)
	}
	return nil
}

func (ctx *mappingContext) floatLinearOperands(c *Constraint) ([]float64, []fd.VarID, float64, error) {
	coeffs, err := ctx.extractFloatArray(c.Args[0])
	if err != nil {
		return nil, nil, 0, err
	}
	xs, err := ctx.resolveFloatArray(c.Args[1])
	if err != nil {
		return nil, nil, 0, err
	}
	if len(coeffs) != len(xs) {
		return nil, nil, 0, mapErrorf(c.At, "%s: %d coefficients for %d variables",
			c.Predicate, len(coeffs), len(xs))
	}
	k, err := ctx.extractFloat(c.Args[2])
	if err != nil {
		return nil, nil, 0, err
	}
	return coeffs, xs, k, nil
}

func (ctx *mappingContext) lowerFloatLinear(c *Constraint, p predicate) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	coeffs, xs, k, err := ctx.floatLinearOperands(c)
	if err != nil {
		return err
	}
	switch p {
	case predFloatLinEq:
		return ctx.model.FLinEq(coeffs, xs, k)
	case predFloatLinLe:
		return ctx.model.FLinLe(coeffs, xs, k)
	default: // predFloatLinNe
		return ctx.model.FLinNe(coeffs, xs, k)
	}
}

func (ctx *mappingContext) lowerFloatLinearReif(c *Constraint, p predicate) error {
	if err := wantArgs(c, 4); err != nil {
		return err
	}
	coeffs, xs, k, err := ctx.floatLinearOperands(c)
	if err != nil {
		return err
	}
	r, err := ctx.resolveVar(c.Args[3])
	if err != nil {
		return err
	}
	switch p {
	case predFloatLinEqReif:
		return ctx.model.FLinEqReif(coeffs, xs, k, r)
	case predFloatLinLeReif:
		return ctx.model.FLinLeReif(coeffs, xs, k, r)
	default: // predFloatLinNeReif
		return ctx.model.FLinNeReif(coeffs, xs, k, r)
	}
}

func (ctx *mappingContext) lowerFloatArith(c *Constraint, p predicate) error {
	if p == predFloatAbs {
		if err := wantArgs(c, 2); err != nil {
			return err
		}
		a, err := ctx.resolveFloatVar(c.Args[0])
		if err != nil {
			return err
		}
		r, err := ctx.resolveFloatVar(c.Args[1])
		if err != nil {
			return err
		}
		z, err := ctx.model.FAbs(a)
		if err != nil {
			return mapErrorf(c.At, "%s: %v", c.Predicate, err)
		}
		ctx.model.FEq(z, r)
		return nil
	}

	if err := wantArgs(c, 3); err != nil {
		return err
	}
	a, err := ctx.resolveFloatVar(c.Args[0])
	if err != nil {
		return err
	}
	b, err := ctx.resolveFloatVar(c.Args[1])
	if err != nil {
		return err
	}
	r, err := ctx.resolveFloatVar(c.Args[2])
	if err != nil {
		return err
	}
	var z fd.VarID
	switch p {
	case predFloatPlus:
		z, err = ctx.model.FAdd(a, b)
	case predFloatMinus:
		z, err = ctx.model.FSub(a, b)
	case predFloatTimes:
		z, err = ctx.model.FMul(a, b)
	case predFloatDiv:
		z, err = ctx.model.FDiv(a, b)
	case predFloatMin:
		z, err = ctx.model.FMin(a, b)
	case predFloatMax:
		z, err = ctx.model.FMax(a, b)
	}
	if err != nil {
		return mapErrorf(c.At, "%s: %v", c.Predicate, err)
	}
	ctx.model.FEq(z, r)
	return nil
}

func (ctx *mappingContext) lowerInt2Float(c *Constraint) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	x, err := ctx.resolveVar(c.Args[0])
	if err != nil {
		return err
	}
	f, err := ctx.resolveFloatVar(c.Args[1])
	if err != nil {
		return err
	}
	z, err := ctx.model.Int2Float(x)
	if err != nil {
		return mapErrorf(c.At, "%s: %v", c.Predicate, err)
	}
	ctx.model.FEq(z, f)
	return nil
}
