package flatzinc

// Set membership over explicit value sets and ranges. Variable sets do
// not exist at this layer; the second argument is always constant.

func (ctx *mappingContext) lowerSetIn(c *Constraint) error {
	if err := wantArgs(c, 2); err != nil {
		return err
	}
	x, err := ctx.resolveVar(c.Args[0])
	if err != nil {
		return err
	}
	dom, err := ctx.extractSetDomain(c.Args[1])
	if err != nil {
		return err
	}
	if dom.IsEmpty() {
		ctx.model.Fail()
		return nil
	}
	ctx.model.Member(x, dom)
	return nil
}

func (ctx *mappingContext) lowerSetInReif(c *Constraint) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	x, err := ctx.resolveVar(c.Args[0])
	if err != nil {
		return err
	}
	dom, err := ctx.extractSetDomain(c.Args[1])
	if err != nil {
		return err
	}
	b, err := ctx.resolveVar(c.Args[2])
	if err != nil {
		return err
	}
	if dom.IsEmpty() {
		ctx.model.Eq(b, ctx.model.BoolConst(false))
		return nil
	}
	ctx.model.MemberReif(x, dom, b)
	return nil
}
