package flatzinc

// Counting constraints and all_different. all_different forwards to
// the backend's native primitive unchanged.

// lowerCount handles count(xs, y, c): c = |{i : xs[i] = y}|.
func (ctx *mappingContext) lowerCount(c *Constraint) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	y, err := ctx.resolveVar(c.Args[1])
	if err != nil {
		return err
	}
	cnt, err := ctx.resolveVar(c.Args[2])
	if err != nil {
		return err
	}
	return ctx.model.CountConstrain(xs, y, cnt)
}

func (ctx *mappingContext) lowerAllDifferent(c *Constraint) error {
	if err := wantArgs(c, 1); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	return ctx.model.AllDifferent(xs)
}
