package flatzinc

// Direct and reified binary relations. Both operands may be variables
// or literals; the evaluator folds literals into constants.

func (ctx *mappingContext) lowerIntRel(c *Constraint, p predicate) error {
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
	switch p {
	case predIntEq, predBoolEq:
		ctx.model.Eq(a, b)
	case predIntNe:
		ctx.model.Ne(a, b)
	case predIntLt:
		ctx.model.Lt(a, b)
	case predIntLe, predBoolLe:
		ctx.model.Le(a, b)
	case predIntGt:
		ctx.model.Gt(a, b)
	case predIntGe:
		ctx.model.Ge(a, b)
	}
	return nil
}

func (ctx *mappingContext) lowerIntRelReif(c *Constraint, p predicate) error {
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
	case predIntEqReif, predBoolEqReif:
		ctx.model.EqReif(a, b, r)
	case predIntNeReif:
		ctx.model.NeReif(a, b, r)
	case predIntLtReif:
		ctx.model.LtReif(a, b, r)
	case predIntLeReif, predBoolLeReif:
		ctx.model.LeReif(a, b, r)
	case predIntGtReif:
		ctx.model.GtReif(a, b, r)
	case predIntGeReif:
		ctx.model.GeReif(a, b, r)
	}
	return nil
}
