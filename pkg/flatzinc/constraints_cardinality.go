package flatzinc

import "github.com/gitrdm/gofzn/pkg/fd"

// Global cardinality: per cover value, one counting constraint. The
// low/up variant decomposes into an at-least/at-most pair by giving
// the count variable the bounded domain directly; the closed form also
// restricts every variable to the cover.

func (ctx *mappingContext) lowerGlobalCardinality(c *Constraint) error {
	if err := wantArgs(c, 3); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	cover, err := ctx.extractIntArray(c.Args[1])
	if err != nil {
		return err
	}
	counts, err := ctx.resolveVarArray(c.Args[2])
	if err != nil {
		return err
	}
	if len(cover) != len(counts) {
		return mapErrorf(c.At, "%s: %d cover values for %d counts",
			c.Predicate, len(cover), len(counts))
	}
	for i, v := range cover {
		if err := ctx.model.CountConstrain(xs, ctx.model.IntConst(v), counts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (ctx *mappingContext) lowerGlobalCardinalityLowUp(c *Constraint, closed bool) error {
	if err := wantArgs(c, 4); err != nil {
		return err
	}
	xs, err := ctx.resolveVarArray(c.Args[0])
	if err != nil {
		return err
	}
	cover, err := ctx.extractIntArray(c.Args[1])
	if err != nil {
		return err
	}
	low, err := ctx.extractIntArray(c.Args[2])
	if err != nil {
		return err
	}
	up, err := ctx.extractIntArray(c.Args[3])
	if err != nil {
		return err
	}
	if len(cover) != len(low) || len(cover) != len(up) {
		return mapErrorf(c.At, "%s: cover, low and up must have equal length (%d, %d, %d)",
			c.Predicate, len(cover), len(low), len(up))
	}
	for i, v := range cover {
		if low[i] > up[i] {
			return mapErrorf(c.At, "%s: low %d exceeds up %d for value %d",
				c.Predicate, low[i], up[i], v)
		}
		cnt := ctx.model.NewInt(low[i], up[i])
		if err := ctx.model.CountConstrain(xs, ctx.model.IntConst(v), cnt); err != nil {
			return err
		}
	}
	if closed {
		// Closed semantics: every variable must take a cover value.
		dom := fd.DomainFromValues(cover)
		for _, x := range xs {
			ctx.model.Member(x, dom)
		}
	}
	return nil
}
