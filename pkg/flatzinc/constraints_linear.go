package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Linear constraints: sum(coeffs[i]*xs[i]) rel k. The coefficient
// vector must be constant; the length check runs before any backend
// call. Boolean linear forms reuse the integer path since booleans are
// 0..1 integers.

// linearOperands resolves and validates the common argument triple.
func (ctx *mappingContext) linearOperands(c *Constraint) ([]int, []fd.VarID, int, error) {
	coeffs, err := ctx.extractIntArray(c.Args[0])
	if err != nil {
		return nil, nil, 0, err
	}
	xs, err := ctx.resolveVarArray(c.Args[1])
	if err != nil {
		return nil, nil, 0, err
	}
	if len(coeffs) != len(xs) {
		return nil, nil, 0, mapErrorf(c.At, "%s: %d coefficients for %d variables",
			c.Predicate, len(coeffs), len(xs))
	}
	k, err := ctx.extractInt(c.Args[2])
	if err != nil {
		return nil, nil, 0, err
	}
	return coeffs, xs, k, nil
}

func (ctx *mappingContext) lowerLinear(c *Constraint, p predicate) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	coeffs, xs, k, err := ctx.linearOperands(c)
	if err != nil {
		return err
	}
	switch p {
	case predIntLinEq, predBoolLinEq:
		return ctx.model.LinEq(coeffs, xs, k)
	case predIntLinLe, predBoolLinLe:
		return ctx.model.LinLe(coeffs, xs, k)
	default: // predIntLinNe
		return ctx.model.LinNe(coeffs, xs, k)
	}
}

func (ctx *mappingContext) lowerLinearReif(c *Constraint, p predicate) error {
	if err := wantArgs(c, 4); err != nil {
		return err
	}
	coeffs, xs, k, err := ctx.linearOperands(c)
	if err != nil {
		return err
	}
	r, err := ctx.resolveVar(c.Args[3])
	if err != nil {
		return err
	}
	switch p {
	case predIntLinEqReif:
		return ctx.model.LinEqReif(coeffs, xs, k, r)
	case predIntLinLeReif:
		return ctx.model.LinLeReif(coeffs, xs, k, r)
	default: // predIntLinNeReif
		return ctx.model.LinNeReif(coeffs, xs, k, r)
	}
}
